package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMonitorCheckAll(t *testing.T) {
	m := NewMonitor(time.Minute, nil)
	m.Register("ok", func(ctx context.Context) error { return nil })
	m.Register("down", func(ctx context.Context) error { return errors.New("refused") })

	m.CheckAll()

	if !m.IsHealthy("ok") {
		t.Error("ok dependency reported unhealthy")
	}
	if m.IsHealthy("down") {
		t.Error("down dependency reported healthy")
	}

	result, exists := m.GetResult("down")
	if !exists {
		t.Fatal("no result for down dependency")
	}
	if result.Status != StatusUnhealthy || result.FailureCount != 1 || result.CheckCount != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestMonitorCountsAccumulate(t *testing.T) {
	m := NewMonitor(time.Minute, nil)
	calls := 0
	m.Register("flaky", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("refused")
		}
		return nil
	})

	m.CheckAll()
	m.CheckAll()

	result, _ := m.GetResult("flaky")
	if result.CheckCount != 2 || result.FailureCount != 1 {
		t.Errorf("checks=%d failures=%d, want 2/1", result.CheckCount, result.FailureCount)
	}
	if result.Status != StatusHealthy {
		t.Errorf("status = %s, want HEALTHY", result.Status)
	}
}

func TestMonitorUnknownDependencyAssumedHealthy(t *testing.T) {
	m := NewMonitor(time.Minute, nil)
	if !m.IsHealthy("never-registered") {
		t.Error("unprobed dependency should be assumed healthy")
	}
}
