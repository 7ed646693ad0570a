package api

import (
	"context"
	"net/http"

	"lifehub/internal/domain"
	"lifehub/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"
)

// CreateAccountHandler registers an audited account
func CreateAccountHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.CreateAccountInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateAccount(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/accounts/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetAccountHandler returns a single account with its derived password age
func GetAccountHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetAccount(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListAccountsHandler returns the owner's accounts ordered by service name.
// With stale=true only accounts past the password rotation window are kept;
// that predicate is derived, so the filter runs in memory after the scan.
func ListAccountsHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := ownerID(c)
		if !ok {
			return
		}
		stale, ok := boolQuery(c, "stale")
		if !ok {
			return
		}
		filter := service.AccountFilter{UserID: userID}
		if stale != nil {
			filter.StaleOnly = *stale
		}
		dtos, err := svc.ListAccounts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": dtos})
	}
}

// UpdateAccountHandler replaces an account's mutable fields
func UpdateAccountHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.UpdateAccountInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		if !matchBodyID(c, id, in.ID) {
			return
		}
		dto, err := svc.UpdateAccount(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// DeleteAccountHandler hard-deletes an account and its alerts
func DeleteAccountHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteAccount(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateBreachAlertHandler opens a new alert for an account
func CreateBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in service.CreateBreachAlertInput
		if err := c.ShouldBindJSON(&in); err != nil {
			bindError(c, err)
			return
		}
		dto, err := svc.CreateAlert(c.Request.Context(), accountID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Location", "/api/breach-alerts/"+dto.ID.String())
		c.JSON(http.StatusCreated, dto)
	}
}

// GetBreachAlertHandler returns a single alert
func GetBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := svc.GetAlert(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

// ListBreachAlertsHandler returns alerts filtered by the optional
// account_id and status query parameters, most recently detected first
func ListBreachAlertsHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.AlertFilter{
			Status: domain.AlertStatus(c.Query("status")),
		}
		if raw := c.Query("account_id"); raw != "" {
			accountID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account_id"})
				return
			}
			filter.AccountID = accountID
		}
		dtos, err := svc.ListAlerts(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": dtos})
	}
}

// AcknowledgeBreachAlertHandler moves an alert from new to acknowledged
func AcknowledgeBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return alertTransitionHandler(svc.AcknowledgeAlert)
}

// ResolveBreachAlertHandler moves an alert from acknowledged to resolved
func ResolveBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return alertTransitionHandler(svc.ResolveAlert)
}

// DismissBreachAlertHandler moves an alert from new to dismissed
func DismissBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return alertTransitionHandler(svc.DismissAlert)
}

// DeleteBreachAlertHandler hard-deletes an alert
func DeleteBreachAlertHandler(svc *service.SecurityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteAlert(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func alertTransitionHandler(transition func(ctx context.Context, id uuid.UUID) (service.BreachAlertDTO, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		dto, err := transition(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}
