package api

import (
	"net/http"

	"lifehub/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// progressRequest carries a new completion percentage. Out-of-range values
// are clamped by the entity rather than rejected here.
type progressRequest struct {
	Progress int `json:"progress"`
}

// CreateBucketListItemHandler creates a bucket list item
func CreateBucketListItemHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateBucketListItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/bucket-list/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetBucketListItemHandler returns a single bucket list item
func GetBucketListItemHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListBucketListItemsHandler returns the owner's items, filtered by the
// optional category/completed/favorite query parameters (AND-combined).
func ListBucketListItemsHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		completed, ok := boolQuery(c, "completed")
		if !ok {
			return
		}
		favorite, ok := boolQuery(c, "favorite")
		if !ok {
			return
		}
		filter := service.BucketListFilter{
			UserID:    userID,
			Category:  c.Query("category"),
			Completed: completed,
			Favorite:  favorite,
		}
		dtos, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": dtos})
	}
}

// UpdateBucketListItemHandler replaces an item's mutable fields
func UpdateBucketListItemHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateBucketListItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// UpdateBucketListProgressHandler sets an item's progress percentage
func UpdateBucketListProgressHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req progressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.UpdateProgress(c.Request.Context(), id, req.Progress)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ToggleBucketListFavoriteHandler flips an item's favorite flag
func ToggleBucketListFavoriteHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.ToggleFavorite(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteBucketListItemHandler hard-deletes an item
func DeleteBucketListItemHandler(svc *service.BucketListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
