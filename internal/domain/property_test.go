package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMonthlyCashFlowCountsActiveLeasesOnly(t *testing.T) {
	p := Property{MonthlyExpenses: decimal.NewFromInt(400)}
	leases := []Lease{
		{MonthlyRent: decimal.NewFromInt(1200), Status: LeaseStatusActive},
		{MonthlyRent: decimal.NewFromInt(900), Status: LeaseStatusTerminated},
		{MonthlyRent: decimal.NewFromInt(800), Status: LeaseStatusActive},
	}

	// 1200 + 800 - 400; the terminated lease contributes nothing.
	require.True(t, p.MonthlyCashFlow(leases).Equal(decimal.NewFromInt(1600)))
}

func TestMonthlyCashFlowNoLeases(t *testing.T) {
	p := Property{MonthlyExpenses: decimal.NewFromInt(400)}
	require.True(t, p.MonthlyCashFlow(nil).Equal(decimal.NewFromInt(-400)))
}

func TestLeaseTerminateIsOneWay(t *testing.T) {
	first := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	lease := Lease{Status: LeaseStatusActive}

	require.True(t, lease.IsActive())
	require.NoError(t, lease.Terminate(first))
	require.Equal(t, LeaseStatusTerminated, lease.Status)
	require.Equal(t, first, *lease.EndDate)

	require.ErrorIs(t, lease.Terminate(first.Add(24*time.Hour)), ErrInvalidTransition)
	require.Equal(t, first, *lease.EndDate)
}
