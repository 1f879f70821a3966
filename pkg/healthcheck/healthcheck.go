// Package healthcheck reports the health of the service and the dependencies
// it needs to answer requests
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents a health check
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
	Metadata    interface{}   `json:"metadata,omitempty"`
}

// Response represents the health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// Option configures a registered check
type Option func(*registration)

// NonCritical downgrades a failing check to degraded. Use it for
// dependencies the service can run without, such as the snapshot cache.
func NonCritical() Option {
	return func(r *registration) { r.critical = false }
}

// WithTimeout bounds a single check
func WithTimeout(d time.Duration) Option {
	return func(r *registration) { r.timeout = d }
}

type registration struct {
	checker  Checker
	critical bool
	timeout  time.Duration
}

// HealthCheck aggregates dependency checks and caches the result briefly
type HealthCheck struct {
	version  string
	checks   map[string]registration
	logger   *zap.Logger
	timeout  time.Duration
	mu       sync.RWMutex
	cache    *Response
	cacheTTL time.Duration
}

// New creates a new health check instance
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		checks:   make(map[string]registration),
		logger:   logger,
		timeout:  10 * time.Second,
		cacheTTL: 5 * time.Second,
	}
}

// Register adds a check. Checks are critical unless NonCritical is given.
func (h *HealthCheck) Register(name string, checker Checker, opts ...Option) {
	reg := registration{checker: checker, critical: true, timeout: h.timeout}
	for _, opt := range opts {
		opt(&reg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = reg
	h.cache = nil
}

// SetCacheTTL sets the cache TTL for health check responses
func (h *HealthCheck) SetCacheTTL(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheTTL = ttl
}

// LivenessHandler reports that the process is serving requests
func (h *HealthCheck) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "alive",
			"version":   h.version,
			"timestamp": time.Now(),
		})
	}
}

// Handler returns the full health report. Only unhealthy maps to 503.
func (h *HealthCheck) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		statusCode := http.StatusOK
		if response.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		writeJSON(w, statusCode, response)
	}
}

// ReadinessHandler returns 200 only when every check is healthy
func (h *HealthCheck) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		if response.Status != StatusHealthy {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not_ready",
				"checks": response.Checks,
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ready",
			"timestamp": time.Now(),
		})
	}
}

// Check runs every registered check concurrently. The overall status is the
// worst individual status after non-critical failures are downgraded.
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cache.Timestamp) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	checks := make(map[string]registration, len(h.checks))
	for name, reg := range h.checks {
		checks[name] = reg
	}
	h.mu.RUnlock()

	start := time.Now()
	results := make([]Check, len(checks))
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string, reg registration) {
			defer wg.Done()
			results[i] = h.run(ctx, name, reg)
		}(i, name, checks[name])
	}
	wg.Wait()

	response := Response{
		Status:        StatusHealthy,
		Version:       h.version,
		Timestamp:     start,
		Checks:        results,
		TotalDuration: time.Since(start),
	}
	for _, check := range results {
		response.Status = worst(response.Status, check.Status)
	}

	h.mu.Lock()
	h.cache = &response
	h.mu.Unlock()

	return response
}

func (h *HealthCheck) run(ctx context.Context, name string, reg registration) Check {
	checkCtx, cancel := context.WithTimeout(ctx, reg.timeout)
	defer cancel()

	check := reg.checker.Check(checkCtx)
	check.Name = name

	if check.Status == StatusUnhealthy {
		h.logger.Warn("Health check failed",
			zap.String("check", name),
			zap.Bool("critical", reg.critical),
			zap.String("message", check.Message),
		)
		if !reg.critical {
			check.Status = StatusDegraded
		}
	}
	return check
}

func worst(a, b Status) Status {
	rank := func(s Status) int {
		switch s {
		case StatusUnhealthy:
			return 2
		case StatusDegraded:
			return 1
		default:
			return 0
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// CustomChecker allows for custom health check logic
type CustomChecker struct {
	name  string
	check func(ctx context.Context) (Status, string, interface{})
}

// NewCustomChecker creates a new custom checker
func NewCustomChecker(name string, check func(ctx context.Context) (Status, string, interface{})) *CustomChecker {
	return &CustomChecker{
		name:  name,
		check: check,
	}
}

// Check runs the custom function
func (c *CustomChecker) Check(ctx context.Context) Check {
	check := timed(func() (Status, string, interface{}) { return c.check(ctx) })
	check.Name = c.name
	return check
}

// MarshalJSON customizes JSON marshaling for duration
func (c Check) MarshalJSON() ([]byte, error) {
	type Alias Check
	return json.Marshal(&struct {
		Duration float64 `json:"duration_ms"`
		*Alias
	}{
		Duration: float64(c.Duration.Milliseconds()),
		Alias:    (*Alias)(&c),
	})
}

// MarshalJSON customizes JSON marshaling for response
func (r Response) MarshalJSON() ([]byte, error) {
	type Alias Response
	return json.Marshal(&struct {
		TotalDuration float64 `json:"total_duration_ms"`
		*Alias
	}{
		TotalDuration: float64(r.TotalDuration.Milliseconds()),
		Alias:         (*Alias)(&r),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
