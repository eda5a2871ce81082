package diagnose

// Status is the self-assessed health of the dashboard process.
type Status string

const (
	StatusOK       Status = "OK"
	StatusDegraded Status = "DEGRADED"
	StatusCritical Status = "CRITICAL"
)

// Report summarizes what the counters and recent logs say about the
// dashboard itself, as opposed to the backend it watches.
type Report struct {
	OverallStatus   Status   `json:"overall_status"`
	Summary         string   `json:"summary"`
	Signals         []string `json:"signals"`
	Recommendations []string `json:"recommendations"`
}
