package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("first request refused")
	}
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("second request refused within burst")
	}
	allowed, retryAfter := limiter.Allow("k", rule)
	if allowed {
		t.Fatal("third request allowed beyond burst")
	}
	if retryAfter <= 0 {
		t.Errorf("retryAfter = %v, want positive", retryAfter)
	}

	now = now.Add(1500 * time.Millisecond)
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("request refused after refill")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatal("key a refused")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatal("key b refused after key a consumed its budget")
	}
}

func TestRateLimiterZeroRuleAllows(t *testing.T) {
	limiter := NewRateLimiter(nil)
	if ok, _ := limiter.Allow("k", RateLimitRule{}); !ok {
		t.Fatal("empty rule must not limit")
	}
}
