package healthcheck

import (
	"context"
	"time"
)

const defaultCheckTimeout = 3 * time.Second

// Report is the aggregated outcome of all checkers.
type Report struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
}

// Runner evaluates checkers in order under a shared timeout.
type Runner struct {
	checkers []Checker
	timeout  time.Duration
}

func NewRunner(timeout time.Duration, checkers ...Checker) *Runner {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	return &Runner{checkers: checkers, timeout: timeout}
}

// Run never fails; a nil runner reports unknown.
func (r *Runner) Run(ctx context.Context) Report {
	if r == nil || len(r.checkers) == 0 {
		return Report{Status: StatusUnknown, Checks: []CheckResult{}}
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	checks := make([]CheckResult, 0, len(r.checkers))
	for _, checker := range r.checkers {
		if checker == nil {
			continue
		}
		checks = append(checks, checker.ListChecks(ctx)...)
	}
	return Report{Status: Aggregate(checks), Checks: checks}
}

// Aggregate returns the worst status among checks: error > warn > ok.
func Aggregate(checks []CheckResult) string {
	if len(checks) == 0 {
		return StatusUnknown
	}
	status := StatusOK
	for _, item := range checks {
		switch item.Status {
		case StatusError:
			return StatusError
		case StatusWarn, StatusUnknown:
			status = StatusWarn
		}
	}
	return status
}
