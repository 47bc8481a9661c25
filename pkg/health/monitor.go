package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the outcome of a dependency probe.
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "HEALTHY"
	case StatusUnhealthy:
		return "UNHEALTHY"
	default:
		return "UNKNOWN"
	}
}

// CheckFunc probes a single dependency.
type CheckFunc func(ctx context.Context) error

// CheckResult represents the last probe of a dependency.
type CheckResult struct {
	Name         string
	Status       Status
	Latency      time.Duration
	LastCheck    time.Time
	LastError    error
	CheckCount   int
	FailureCount int
}

// Monitor probes registered dependencies on an interval and keeps the
// latest result for each, so the health endpoint answers from memory
// instead of hitting every dependency per request.
type Monitor struct {
	mu       sync.RWMutex
	checks   map[string]CheckFunc
	results  map[string]*CheckResult
	interval time.Duration
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	running  bool
}

// NewMonitor creates a new health monitor
func NewMonitor(interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Monitor{
		checks:   make(map[string]CheckFunc),
		results:  make(map[string]*CheckResult),
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register adds a named dependency probe.
func (m *Monitor) Register(name string, check CheckFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checks[name] = check

	m.logger.Info("Registered health check",
		zap.String("name", name),
	)
}

// Start starts the health monitor
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	go m.runChecks()
}

// Stop stops the health monitor
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.running = false
	m.cancel()
}

// runChecks runs probes periodically
func (m *Monitor) runChecks() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Run initial checks
	m.CheckAll()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll()
		}
	}
}

// CheckAll probes every registered dependency once.
func (m *Monitor) CheckAll() {
	m.mu.RLock()
	checks := make(map[string]CheckFunc, len(m.checks))
	for name, check := range m.checks {
		checks[name] = check
	}
	m.mu.RUnlock()

	for name, check := range checks {
		ctx, cancel := context.WithTimeout(m.ctx, 5*time.Second)
		start := time.Now()
		err := check(ctx)
		cancel()

		result := CheckResult{
			Name:      name,
			Latency:   time.Since(start),
			LastCheck: start,
			LastError: err,
			Status:    StatusHealthy,
		}
		if err != nil {
			result.Status = StatusUnhealthy
		}

		m.mu.Lock()
		if existing, ok := m.results[name]; ok {
			result.CheckCount = existing.CheckCount + 1
			result.FailureCount = existing.FailureCount
		} else {
			result.CheckCount = 1
		}
		if result.Status == StatusUnhealthy {
			result.FailureCount++
		}
		m.results[name] = &result
		m.mu.Unlock()

		if result.Status != StatusHealthy {
			m.logger.Warn("Health check failed",
				zap.String("name", name),
				zap.Duration("latency", result.Latency),
				zap.Error(result.LastError),
			)
		}
	}
}

// IsHealthy reports whether a dependency's last probe succeeded.
func (m *Monitor) IsHealthy(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if result, ok := m.results[name]; ok {
		return result.Status == StatusHealthy
	}
	return true // Assume healthy if never probed
}

// GetResult gets the last probe result for a dependency.
func (m *Monitor) GetResult(name string) (*CheckResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, exists := m.results[name]
	if !exists {
		return nil, false
	}
	resultCopy := *result
	return &resultCopy, true
}

// GetAllResults returns the last probe result for every dependency.
func (m *Monitor) GetAllResults() map[string]*CheckResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make(map[string]*CheckResult, len(m.results))
	for name, result := range m.results {
		resultCopy := *result
		results[name] = &resultCopy
	}
	return results
}
