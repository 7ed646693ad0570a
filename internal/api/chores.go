package api

import (
	"net/http"

	"lifehub/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"
)

// CreateFamilyMemberHandler adds a household member
func CreateFamilyMemberHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateFamilyMemberInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateFamilyMember(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/family-members/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetFamilyMemberHandler returns a single member with their points balance
func GetFamilyMemberHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetFamilyMember(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListFamilyMembersHandler returns the household's members by name
func ListFamilyMembersHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		dtos, err := svc.ListFamilyMembers(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"family_members": dtos})
	}
}

// UpdateFamilyMemberHandler renames a member
func UpdateFamilyMemberHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateFamilyMemberInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateFamilyMember(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteFamilyMemberHandler removes a member and their assignments
func DeleteFamilyMemberHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteFamilyMember(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateChoreHandler adds a chore worth a number of points
func CreateChoreHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateChoreInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateChore(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/chores/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetChoreHandler returns a single chore
func GetChoreHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetChore(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListChoresHandler returns the owner's chores by name
func ListChoresHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		dtos, err := svc.ListChores(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"chores": dtos})
	}
}

// UpdateChoreHandler replaces a chore's mutable fields
func UpdateChoreHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateChoreInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateChore(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteChoreHandler removes a chore and its assignments
func DeleteChoreHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteChore(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateAssignmentHandler assigns a chore to a member
func CreateAssignmentHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateAssignmentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateAssignment(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/assignments/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// ListAssignmentsHandler returns assignments by due date, with optional
// family_member_id, completed and overdue filters (AND-combined; the
// overdue predicate is derived and filters in memory after the scan)
func ListAssignmentsHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		completed, ok := boolQuery(c, "completed")
		if !ok {
			return
		}
		overdue, ok := boolQuery(c, "overdue")
		if !ok {
			return
		}
		filter := service.AssignmentFilter{Completed: completed}
		if overdue != nil {
			filter.OverdueOnly = *overdue
		}
		if raw := c.Query("family_member_id"); raw != "" {
			memberID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid family_member_id"})
				return
			}
			filter.FamilyMemberID = memberID
		}
		dtos, err := svc.ListAssignments(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assignments": dtos})
	}
}

// CompleteAssignmentHandler marks an assignment done and credits the
// member's points in the same commit
func CompleteAssignmentHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.CompleteAssignment(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteAssignmentHandler hard-deletes an assignment
func DeleteAssignmentHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteAssignment(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateRewardHandler adds a redeemable reward
func CreateRewardHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateRewardInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateReward(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/rewards/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetRewardHandler returns a single reward
func GetRewardHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetReward(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListRewardsHandler returns the owner's rewards by name
func ListRewardsHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		dtos, err := svc.ListRewards(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rewards": dtos})
	}
}

// UpdateRewardHandler replaces an unredeemed reward's mutable fields
func UpdateRewardHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateRewardInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateReward(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// RedeemRewardHandler spends a member's points on a reward
func RedeemRewardHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.RedeemRewardInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.RedeemReward(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteRewardHandler hard-deletes a reward
func DeleteRewardHandler(svc *service.ChoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteReward(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
