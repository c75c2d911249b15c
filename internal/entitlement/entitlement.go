// Package entitlement enforces plan-based monthly usage quotas.
package entitlement

import (
	"context"
	"fmt"
	"time"

	"creatorlens/internal/core"
	"creatorlens/internal/persistence"
)

// FeatureAnalyze is the metered feature name for full video analyses.
const FeatureAnalyze = "analyze"

// ErrQuotaExceeded is returned when the user's plan allowance for the
// current calendar month is exhausted.
var ErrQuotaExceeded = fmt.Errorf("monthly quota exceeded")

// Quotas maps plans to their monthly analysis allowance.
type Quotas struct {
	FreePerMonth int
	ProPerMonth  int
}

// Checker answers whether a user may run another analysis this month.
type Checker struct {
	usage  persistence.UsageRepository
	quotas Quotas
}

// NewChecker creates an entitlement checker backed by the usage repository.
func NewChecker(usage persistence.UsageRepository, quotas Quotas) *Checker {
	return &Checker{usage: usage, quotas: quotas}
}

// Check returns ErrQuotaExceeded when the user has used up the current
// month's allowance. Unknown plans get the free allowance.
func (c *Checker) Check(ctx context.Context, user *core.User, now time.Time) error {
	limit := c.quotas.FreePerMonth
	if user.Plan == "pro" {
		limit = c.quotas.ProPerMonth
	}

	used, err := c.usage.CountSince(ctx, user.ID, FeatureAnalyze, monthStart(now))
	if err != nil {
		return fmt.Errorf("failed to check quota: %w", err)
	}
	if used >= limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Consume records one analysis against the user's monthly allowance.
func (c *Checker) Consume(ctx context.Context, user *core.User, now time.Time) error {
	return c.usage.Record(ctx, user.ID, FeatureAnalyze, now)
}

// monthStart truncates to the first instant of the month, UTC. Quota windows
// reset at a fixed boundary rather than rolling 30 days.
func monthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
