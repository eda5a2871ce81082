package diagnose

import (
	"strings"

	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
)

const (
	recentLogs        = 100
	fetchFailureLimit = 3
)

// Analyzer converts metrics + logs into a Report.
type Analyzer struct {
	metrics *metrics.Registry
	logger  *logs.Logger
	rules   []Rule
}

func NewAnalyzer(reg *metrics.Registry, logger *logs.Logger) *Analyzer {
	return &Analyzer{
		metrics: reg,
		logger:  logger,
		rules: []Rule{
			NeverFetchedRule,
			PollFailureRule,
			ActionFailureRule,
		},
	}
}

// Analyze evaluates metrics and logs and returns a report.
func (a *Analyzer) Analyze() Report {
	snapshot := a.metrics.Snapshot()

	var (
		signals         = []string{}
		recommendations = []string{}
		status          = StatusOK
	)

	escalate := func(s Status) {
		if s == StatusCritical {
			status = StatusCritical
		} else if s == StatusDegraded && status == StatusOK {
			status = StatusDegraded
		}
	}

	/* ---------- METRICS-BASED RULES ---------- */

	for _, rule := range a.rules {
		result := rule(snapshot)
		if !result.Triggered {
			continue
		}
		signals = append(signals, result.Signal)
		recommendations = append(recommendations, result.Recommendation)
		escalate(result.Severity)
	}

	/* ---------- LOG-BASED SIGNALS ---------- */

	fetchFailures := 0
	panicCount := 0

	for _, entry := range a.logger.GetLast(recentLogs) {
		switch {
		case entry.Level == logs.WARN && strings.HasPrefix(entry.Message, "poll ") &&
			strings.Contains(entry.Message, " failed:"):
			fetchFailures++
		case entry.Level == logs.ERROR && strings.Contains(entry.Message, "panic"):
			panicCount++
		}
	}

	if fetchFailures >= fetchFailureLimit {
		signals = append(signals, "Repeated status fetch failures in recent logs")
		recommendations = append(recommendations, "Investigate network connectivity to the backend")
		escalate(StatusDegraded)
	}

	if panicCount > 0 {
		signals = append(signals, "Handler panics detected in logs")
		recommendations = append(recommendations, "Inspect the logged panic values")
		escalate(StatusCritical)
	}

	/* ---------- SUMMARY ---------- */

	summary := "Dashboard is healthy"
	if status != StatusOK {
		summary = "Dashboard health issues detected"
	}

	return Report{
		OverallStatus:   status,
		Summary:         summary,
		Signals:         signals,
		Recommendations: recommendations,
	}
}
