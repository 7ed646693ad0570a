package api

import (
	"net/http"

	"lifehub/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreatePropertyHandler registers a rental property
func CreatePropertyHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreatePropertyInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if in.PurchasePrice.IsNegative() || in.MonthlyExpenses.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amounts must not be negative"})
			return
		}
		dto, err := svc.CreateProperty(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/properties/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetPropertyHandler returns a single property with its derived cash flow
func GetPropertyHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetProperty(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListPropertiesHandler returns the owner's properties, newest first
func ListPropertiesHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		dtos, err := svc.ListProperties(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": dtos})
	}
}

// UpdatePropertyHandler replaces a property's mutable fields
func UpdatePropertyHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdatePropertyInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateProperty(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeletePropertyHandler hard-deletes a property and its leases
func DeletePropertyHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteProperty(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateLeaseHandler opens an active lease on a property
func CreateLeaseHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.CreateLeaseInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !in.MonthlyRent.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "monthly_rent must be positive"})
			return
		}
		dto, err := svc.CreateLease(c.Request.Context(), propertyID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/leases/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetLeaseHandler returns a single lease
func GetLeaseHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetLease(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListLeasesHandler returns a property's leases, most recent start first
func ListLeasesHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		propertyID, ok := pathID(c, "id")
		if !ok {
			return
		}
		dtos, err := svc.ListLeases(c.Request.Context(), propertyID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"leases": dtos})
	}
}

// UpdateLeaseHandler replaces an active lease's tenant and rent
func UpdateLeaseHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateLeaseInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		if !in.MonthlyRent.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "monthly_rent must be positive"})
			return
		}
		dto, err := svc.UpdateLease(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// TerminateLeaseHandler ends an active lease
func TerminateLeaseHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.TerminateLease(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteLeaseHandler hard-deletes a lease
func DeleteLeaseHandler(svc *service.LeaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteLease(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
