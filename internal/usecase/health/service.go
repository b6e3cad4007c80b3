// Package health coordinates component health checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Pinger checks connectivity of a single component.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs health checks against named components.
type Service struct {
	components map[string]Pinger
}

// New creates a Service over the given components. Nil pingers are skipped,
// so optional components (the vector cache) can be passed unconditionally.
func New(components map[string]Pinger) *Service {
	return &Service{components: components}
}

// Check runs all component checks and aggregates the result.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))

	status := Healthy
	for name, p := range s.components {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			checks[name] = CheckError
			status = Degraded
		} else {
			checks[name] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
