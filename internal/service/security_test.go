package service

import (
	"context"
	"testing"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSecurityFixture(t *testing.T) (*SecurityService, uuid.UUID) {
	t.Helper()
	return NewSecurityService(newTestDB(t)), uuid.New()
}

func createAccount(t *testing.T, svc *SecurityService, userID uuid.UUID, serviceName string, passwordAge time.Duration) AccountDTO {
	t.Helper()
	dto, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID:              userID,
		ServiceName:         serviceName,
		Username:            "user@" + serviceName,
		PasswordLastChanged: time.Now().UTC().Add(-passwordAge),
		PasswordStrength:    domain.StrengthStrong,
	})
	require.NoError(t, err)
	return dto
}

func TestSecurityCreateThenGetAccount(t *testing.T) {
	svc, userID := newSecurityFixture(t)

	created := createAccount(t, svc, userID, "github", 30*24*time.Hour)
	require.Equal(t, 30, created.PasswordAgeDays)

	got, err := svc.GetAccount(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "github", got.ServiceName)
}

func TestSecurityListAccountsStaleFilter(t *testing.T) {
	svc, userID := newSecurityFixture(t)
	ctx := context.Background()

	createAccount(t, svc, userID, "bank", 120*24*time.Hour)
	createAccount(t, svc, userID, "email", 10*24*time.Hour)

	all, err := svc.ListAccounts(ctx, AccountFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "bank", all[0].ServiceName)
	require.Equal(t, "email", all[1].ServiceName)

	stale, err := svc.ListAccounts(ctx, AccountFilter{UserID: userID, StaleOnly: true})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, "bank", stale[0].ServiceName)
}

func TestSecurityUpdateAccountMissing(t *testing.T) {
	svc, _ := newSecurityFixture(t)
	_, err := svc.UpdateAccount(context.Background(), uuid.New(), UpdateAccountInput{
		ServiceName:         "ghost",
		Username:            "nobody",
		PasswordLastChanged: time.Now().UTC(),
		PasswordStrength:    domain.StrengthFair,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSecurityAlertLifecycle(t *testing.T) {
	svc, userID := newSecurityFixture(t)
	ctx := context.Background()
	account := createAccount(t, svc, userID, "forum", 24*time.Hour)

	alert, err := svc.CreateAlert(ctx, account.ID, CreateBreachAlertInput{
		Severity:    domain.SeverityHigh,
		Source:      "haveibeenpwned",
		Description: "credential dump",
	})
	require.NoError(t, err)
	require.Equal(t, domain.AlertStatusNew, alert.Status)

	acked, err := svc.AcknowledgeAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AlertStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedAt)

	resolved, err := svc.ResolveAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AlertStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestSecurityAlertInvalidTransitions(t *testing.T) {
	svc, userID := newSecurityFixture(t)
	ctx := context.Background()
	account := createAccount(t, svc, userID, "shop", 24*time.Hour)

	alert, err := svc.CreateAlert(ctx, account.ID, CreateBreachAlertInput{
		Severity:    domain.SeverityLow,
		Description: "email exposed",
	})
	require.NoError(t, err)

	// Resolve requires acknowledged first.
	_, err = svc.ResolveAlert(ctx, alert.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	acked, err := svc.AcknowledgeAlert(ctx, alert.ID)
	require.NoError(t, err)
	stamp := *acked.AcknowledgedAt

	// A second acknowledge is rejected and the stamp stays put.
	_, err = svc.AcknowledgeAlert(ctx, alert.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	got, err := svc.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.True(t, stamp.Equal(*got.AcknowledgedAt))

	// Dismiss only applies to new alerts.
	_, err = svc.DismissAlert(ctx, alert.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSecurityListAlertsFilters(t *testing.T) {
	svc, userID := newSecurityFixture(t)
	ctx := context.Background()
	first := createAccount(t, svc, userID, "one", 24*time.Hour)
	second := createAccount(t, svc, userID, "two", 24*time.Hour)

	older := time.Now().UTC().Add(-72 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)
	a1, err := svc.CreateAlert(ctx, first.ID, CreateBreachAlertInput{
		Severity:    domain.SeverityMedium,
		Description: "older breach",
		DetectedAt:  &older,
	})
	require.NoError(t, err)
	_, err = svc.CreateAlert(ctx, second.ID, CreateBreachAlertInput{
		Severity:    domain.SeverityCritical,
		Description: "newer breach",
		DetectedAt:  &newer,
	})
	require.NoError(t, err)
	_, err = svc.DismissAlert(ctx, a1.ID)
	require.NoError(t, err)

	all, err := svc.ListAlerts(ctx, AlertFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "newer breach", all[0].Description)
	require.Equal(t, "older breach", all[1].Description)

	byAccount, err := svc.ListAlerts(ctx, AlertFilter{AccountID: first.ID})
	require.NoError(t, err)
	require.Len(t, byAccount, 1)

	dismissed, err := svc.ListAlerts(ctx, AlertFilter{Status: domain.AlertStatusDismissed})
	require.NoError(t, err)
	require.Len(t, dismissed, 1)
	require.Equal(t, a1.ID, dismissed[0].ID)
}

func TestSecurityDeleteAccountCascadesAlerts(t *testing.T) {
	svc, userID := newSecurityFixture(t)
	ctx := context.Background()
	account := createAccount(t, svc, userID, "cloud", 24*time.Hour)

	alert, err := svc.CreateAlert(ctx, account.ID, CreateBreachAlertInput{
		Severity:    domain.SeverityHigh,
		Description: "token leak",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, account.ID))
	_, err = svc.GetAccount(ctx, account.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetAlert(ctx, alert.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.DeleteAccount(ctx, account.ID), domain.ErrNotFound)
}

func TestSecurityCreateAlertMissingAccount(t *testing.T) {
	svc, _ := newSecurityFixture(t)
	_, err := svc.CreateAlert(context.Background(), uuid.New(), CreateBreachAlertInput{
		Severity:    domain.SeverityLow,
		Description: "orphan",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
