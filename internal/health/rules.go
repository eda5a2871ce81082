package health

import "status-dashboard/internal/status"

// Input is what the overall rules are allowed to look at.
type Input struct {
	Healthy         bool
	Percentage      int
	SystemStatus    string
	CriticalFailure *string
}

// NewInput extracts the rule inputs from p. systemKey names the component
// whose status may escalate the verdict to critical.
func NewInput(p status.Payload, systemKey string) Input {
	in := Input{
		Healthy:         p.Healthy(),
		Percentage:      p.Percentage(),
		SystemStatus:    "unknown",
		CriticalFailure: p.CriticalFailure,
	}
	if c, ok := p.Component(systemKey); ok && c.Status != nil && *c.Status != "" {
		in.SystemStatus = *c.Status
	}
	return in
}

// Rule returns an indicator and true when it applies.
type Rule func(in Input) (Overall, bool)

// ---------- RULES ----------

// The backend's own hint beats every other signal, including 0%.
func OperationalRule(in Input) (Overall, bool) {
	if !in.Healthy {
		return Overall{}, false
	}
	return Overall{
		Verdict: VerdictOperational,
		Label:   "System Operational",
		Icon:    "✅",
		Color:   ColorGreen,
	}, true
}

// A zero percentage or a critical aggregate component is a total failure.
// Any other percentage is not.
func CriticalRule(in Input) (Overall, bool) {
	if in.SystemStatus != "critical" && in.Percentage != 0 {
		return Overall{}, false
	}
	out := Overall{
		Verdict: VerdictCritical,
		Label:   "CRITICAL FAILURE",
		Icon:    "🚨",
		Color:   ColorRed,
	}
	if in.CriticalFailure != nil && *in.CriticalFailure != "" {
		out.Message = *in.CriticalFailure
	}
	return out, true
}

func DegradedRule(Input) (Overall, bool) {
	return Overall{
		Verdict: VerdictDegraded,
		Label:   "System Degraded",
		Icon:    "⚠️",
		Color:   ColorYellow,
	}, true
}

// LoadError is the indicator shown when a poll fails. It has no colour so
// sinks keep whatever colour was shown before.
func LoadError() Overall {
	return Overall{
		Verdict: VerdictUnknown,
		Label:   "Error loading status",
		Icon:    "❌",
		Color:   ColorNone,
	}
}
