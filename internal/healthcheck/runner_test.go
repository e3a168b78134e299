package healthcheck

import (
	"context"
	"testing"
	"time"
)

type testChecker struct {
	items []CheckResult
}

func (c *testChecker) ListChecks(ctx context.Context) []CheckResult {
	return c.items
}

type deadlineChecker struct {
	sawDeadline bool
}

func (c *deadlineChecker) ListChecks(ctx context.Context) []CheckResult {
	_, c.sawDeadline = ctx.Deadline()
	return []CheckResult{{ID: "deadline", Status: StatusOK}}
}

func TestRunnerAggregates(t *testing.T) {
	t.Parallel()

	runner := NewRunner(time.Second,
		&testChecker{items: []CheckResult{{ID: "database", Type: "database", Status: StatusOK}}},
		nil,
		&testChecker{items: []CheckResult{{ID: "ai.provider", Type: "ai.provider", Status: StatusWarn}}},
	)
	report := runner.Run(context.Background())
	if len(report.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(report.Checks))
	}
	if report.Checks[0].ID != "database" || report.Checks[1].ID != "ai.provider" {
		t.Fatalf("unexpected order: %+v", report.Checks)
	}
	if report.Status != StatusWarn {
		t.Fatalf("expected warn, got %s", report.Status)
	}
}

func TestRunnerAppliesTimeout(t *testing.T) {
	t.Parallel()

	checker := &deadlineChecker{}
	NewRunner(0, checker).Run(context.Background())
	if !checker.sawDeadline {
		t.Fatalf("expected checks to run under a deadline")
	}
}

func TestRunnerNil(t *testing.T) {
	t.Parallel()

	var runner *Runner
	report := runner.Run(context.Background())
	if report.Status != StatusUnknown || len(report.Checks) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		statuses []string
		want     string
	}{
		{nil, StatusUnknown},
		{[]string{StatusOK, StatusOK}, StatusOK},
		{[]string{StatusOK, StatusUnknown}, StatusWarn},
		{[]string{StatusWarn, StatusError, StatusOK}, StatusError},
	}
	for _, tc := range cases {
		checks := make([]CheckResult, 0, len(tc.statuses))
		for _, s := range tc.statuses {
			checks = append(checks, CheckResult{Status: s})
		}
		if got := Aggregate(checks); got != tc.want {
			t.Fatalf("statuses=%v want=%s got=%s", tc.statuses, tc.want, got)
		}
	}
}
