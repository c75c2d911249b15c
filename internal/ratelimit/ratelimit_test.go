package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter()
	l.SetFeature("analyze", 6)

	for i := 0; i < 6; i++ {
		if d := l.Check("user-1", "analyze"); !d.Allowed {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
}

func TestLimiter_DeniesOverBurstWithResetAt(t *testing.T) {
	l := NewLimiter()
	l.SetFeature("analyze", 2)

	l.Check("user-1", "analyze")
	l.Check("user-1", "analyze")

	d := l.Check("user-1", "analyze")
	if d.Allowed {
		t.Fatal("third request should be denied")
	}
	if d.ResetAt.IsZero() || !d.ResetAt.After(time.Now()) {
		t.Errorf("denied decision should carry a future ResetAt, got %v", d.ResetAt)
	}
}

func TestLimiter_UsersAreIndependent(t *testing.T) {
	l := NewLimiter()
	l.SetFeature("analyze", 1)

	l.Check("user-1", "analyze")
	if d := l.Check("user-1", "analyze"); d.Allowed {
		t.Fatal("user-1 should be throttled")
	}
	if d := l.Check("user-2", "analyze"); !d.Allowed {
		t.Fatal("user-2 should not share user-1's bucket")
	}
}

func TestLimiter_UnregisteredFeaturePasses(t *testing.T) {
	l := NewLimiter()
	for i := 0; i < 100; i++ {
		if d := l.Check("user-1", "unknown"); !d.Allowed {
			t.Fatal("unregistered features should not be throttled")
		}
	}
}
