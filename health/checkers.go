// Package health provides the checkers behind the system-namespace health
// check: each checker probes one part of the adapter and the summarized
// results become the HealthCheckResponse payload.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/hyandell/alexa-smarthome-validation/catalog"
)

// Status represents the health of one checked component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of a single health check.
type CheckResult struct {
	Name      string
	Status    Status
	Message   string
	Error     string
	Timestamp time.Time
	Duration  time.Duration
}

// Checker checks the health of one component.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// CatalogChecker verifies the static device catalog is present and usable.
type CatalogChecker struct {
	logger *slog.Logger
}

// NewCatalogChecker creates a new catalog health checker.
func NewCatalogChecker(logger *slog.Logger) *CatalogChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogChecker{logger: logger}
}

func (c *CatalogChecker) Name() string {
	return "catalog"
}

func (c *CatalogChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name(),
		Timestamp: start,
	}

	appliances := catalog.AllAppliances()
	if len(appliances) == 0 {
		result.Status = StatusUnhealthy
		result.Message = "catalog is empty"
		result.Duration = time.Since(start)
		return result
	}
	for _, appliance := range appliances {
		if appliance.ApplianceID == "" {
			result.Status = StatusUnhealthy
			result.Message = "catalog contains an appliance without an id"
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Status = StatusHealthy
	result.Message = fmt.Sprintf("%d appliances available", len(appliances))
	result.Duration = time.Since(start)
	return result
}

// RuntimeChecker reports on the process itself.
type RuntimeChecker struct {
	maxGoroutines int
}

// NewRuntimeChecker creates a runtime health checker. maxGoroutines of zero
// disables the goroutine ceiling.
func NewRuntimeChecker(maxGoroutines int) *RuntimeChecker {
	return &RuntimeChecker{maxGoroutines: maxGoroutines}
}

func (c *RuntimeChecker) Name() string {
	return "runtime"
}

func (c *RuntimeChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      c.Name(),
		Timestamp: start,
	}

	goroutines := runtime.NumGoroutine()
	if c.maxGoroutines > 0 && goroutines > c.maxGoroutines {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("%d goroutines exceeds limit %d", goroutines, c.maxGoroutines)
	} else {
		result.Status = StatusHealthy
		result.Message = fmt.Sprintf("%d goroutines", goroutines)
	}
	result.Duration = time.Since(start)
	return result
}

// Summarize reduces a set of check results to the health payload fields: a
// human-readable description and an overall healthy flag.
func Summarize(results []CheckResult) (string, bool) {
	if len(results) == 0 {
		return "no health checks configured", false
	}

	healthy := true
	parts := make([]string, 0, len(results))
	for _, result := range results {
		if result.Status != StatusHealthy {
			healthy = false
		}
		parts = append(parts, fmt.Sprintf("%s: %s", result.Name, result.Message))
	}
	return strings.Join(parts, "; "), healthy
}
