package circuit

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Threshold:        3,
		Timeout:          50 * time.Millisecond,
		SuccessThreshold: 2,
		MaxHalfOpen:      2,
	}
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := NewBreaker("test", testConfig(), nil)
	failing := errors.New("boom")

	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return failing })
	}

	if b.State() != StateOpen {
		t.Fatalf("expected OPEN after %d failures, got %s", 3, b.State())
	}
	if err := b.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker("test", testConfig(), nil)
	failing := errors.New("boom")

	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return failing })
	}
	time.Sleep(60 * time.Millisecond)

	// First success moves to half-open, second closes the circuit.
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("half-open call failed: %v", err)
	}
	if b.State() != StateHalfOpen {
		t.Fatalf("expected HALF_OPEN, got %s", b.State())
	}
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("second half-open call failed: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("expected CLOSED after recovery, got %s", b.State())
	}
}

func TestBreakerReopensOnHalfOpenFailure(t *testing.T) {
	b := NewBreaker("test", testConfig(), nil)
	failing := errors.New("boom")

	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return failing })
	}
	time.Sleep(60 * time.Millisecond)

	_ = b.Execute(func() error { return failing })
	if b.State() != StateOpen {
		t.Fatalf("expected OPEN after half-open failure, got %s", b.State())
	}
}

func TestBreakerReset(t *testing.T) {
	b := NewBreaker("test", testConfig(), nil)
	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return errors.New("boom") })
	}

	b.Reset()
	if b.State() != StateClosed {
		t.Fatalf("expected CLOSED after reset, got %s", b.State())
	}
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("call after reset failed: %v", err)
	}
}
