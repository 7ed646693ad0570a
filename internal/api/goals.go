package api

import (
	"net/http"

	"lifehub/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateGoalHandler creates a savings goal
func CreateGoalHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateGoalInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if in.TargetAmount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount must not be negative"})
			return
		}
		dto, err := svc.CreateGoal(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/goals/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetGoalHandler returns a single goal with its derived progress
func GetGoalHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetGoal(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListGoalsHandler returns the owner's goals, newest first
func ListGoalsHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		dtos, err := svc.ListGoals(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"goals": dtos})
	}
}

// UpdateGoalHandler replaces a goal's mutable fields
func UpdateGoalHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateGoalInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateGoal(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteGoalHandler hard-deletes a goal and its contributions
func DeleteGoalHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteGoal(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateContributionHandler records a contribution toward a goal and bumps
// the goal's running total in the same commit
func CreateContributionHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.CreateContributionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !in.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		dto, err := svc.CreateContribution(c.Request.Context(), goalID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/contributions/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// ListContributionsHandler returns a goal's contributions, most recent first
func ListContributionsHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, ok := pathID(c, "id")
		if !ok {
			return
		}
		dtos, err := svc.ListContributions(c.Request.Context(), goalID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"contributions": dtos})
	}
}

// DeleteContributionHandler removes a contribution and rolls its amount out
// of the goal's running total
func DeleteContributionHandler(svc *service.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteContribution(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
