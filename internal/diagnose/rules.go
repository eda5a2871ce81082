package diagnose

import "status-dashboard/internal/metrics"

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

func value(snapshot map[string]int64, key metrics.MetricKey) int64 {
	return snapshot[string(key)]
}

// ---------- RULES ----------

// No successful poll at all means the board never left its initial view.
func NeverFetchedRule(snapshot map[string]int64) RuleResult {
	if value(snapshot, metrics.PollFailuresTotal) > 0 && value(snapshot, metrics.PollSuccessTotal) == 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Backend status has never been fetched",
			Recommendation: "Check backend_url and that the status service is running",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}

// More failed polls than successful ones.
func PollFailureRule(snapshot map[string]int64) RuleResult {
	ok := value(snapshot, metrics.PollSuccessTotal)
	failed := value(snapshot, metrics.PollFailuresTotal)

	if ok > 0 && failed > ok {
		return RuleResult{
			Triggered:      true,
			Signal:         "Most status polls are failing",
			Recommendation: "Check backend reachability and request_timeout",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Restart and reset commands that do not go through.
func ActionFailureRule(snapshot map[string]int64) RuleResult {
	ok := value(snapshot, metrics.ActionsSucceededTotal)
	failed := value(snapshot, metrics.ActionsFailedTotal)

	if failed > 0 && failed >= ok {
		return RuleResult{
			Triggered:      true,
			Signal:         "Restart or reset commands are failing",
			Recommendation: "Inspect the backend service manager logs",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}
