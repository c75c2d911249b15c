package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"creatorlens/internal/core"
)

type fakeUsageRepo struct {
	count    int
	countErr error
	recorded []string
}

func (f *fakeUsageRepo) Record(ctx context.Context, userID, feature string, at time.Time) error {
	f.recorded = append(f.recorded, feature)
	return nil
}

func (f *fakeUsageRepo) CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error) {
	return f.count, f.countErr
}

func TestCheck_FreePlanWithinQuota(t *testing.T) {
	repo := &fakeUsageRepo{count: 24}
	c := NewChecker(repo, Quotas{FreePerMonth: 25, ProPerMonth: 500})

	err := c.Check(context.Background(), &core.User{ID: "u1", Plan: "free"}, time.Now())
	if err != nil {
		t.Errorf("24 of 25 used should pass, got %v", err)
	}
}

func TestCheck_FreePlanExhausted(t *testing.T) {
	repo := &fakeUsageRepo{count: 25}
	c := NewChecker(repo, Quotas{FreePerMonth: 25, ProPerMonth: 500})

	err := c.Check(context.Background(), &core.User{ID: "u1", Plan: "free"}, time.Now())
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestCheck_ProPlanGetsHigherAllowance(t *testing.T) {
	repo := &fakeUsageRepo{count: 100}
	c := NewChecker(repo, Quotas{FreePerMonth: 25, ProPerMonth: 500})

	err := c.Check(context.Background(), &core.User{ID: "u1", Plan: "pro"}, time.Now())
	if err != nil {
		t.Errorf("pro plan at 100 of 500 should pass, got %v", err)
	}
}

func TestCheck_UnknownPlanTreatedAsFree(t *testing.T) {
	repo := &fakeUsageRepo{count: 30}
	c := NewChecker(repo, Quotas{FreePerMonth: 25, ProPerMonth: 500})

	err := c.Check(context.Background(), &core.User{ID: "u1", Plan: "enterprise"}, time.Now())
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("unknown plan should use free allowance, got %v", err)
	}
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2025, 6, 17, 15, 4, 5, 0, time.UTC)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := monthStart(now); !got.Equal(want) {
		t.Errorf("monthStart = %v, want %v", got, want)
	}
}
