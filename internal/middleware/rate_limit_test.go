package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		ok, _ := rl.allow("10.0.0.1", now)
		if !ok {
			t.Fatalf("request %d denied under the limit", i+1)
		}
	}
	if ok, current := rl.allow("10.0.0.1", now); ok || current != 3 {
		t.Errorf("allow() = %v, %d; want denied at the limit", ok, current)
	}

	// Other clients have their own window.
	if ok, _ := rl.allow("10.0.0.2", now); !ok {
		t.Error("different IP denied")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond)
	now := time.Now()

	if ok, _ := rl.allow("10.0.0.1", now); !ok {
		t.Fatal("first request denied")
	}
	if ok, _ := rl.allow("10.0.0.1", now); ok {
		t.Fatal("second request allowed inside the window")
	}
	if ok, _ := rl.allow("10.0.0.1", now.Add(60*time.Millisecond)); !ok {
		t.Error("request denied after the window expired")
	}
}
