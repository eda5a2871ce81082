package health

import "status-dashboard/internal/status"

// DefaultSystemKey is the component that reports the aggregate status.
const DefaultSystemKey = "11_system_status"

// Resolver turns a payload into the overall indicator.
type Resolver struct {
	systemKey string
	rules     []Rule
}

// NewResolver creates a resolver. An empty systemKey uses DefaultSystemKey.
func NewResolver(systemKey string) *Resolver {
	if systemKey == "" {
		systemKey = DefaultSystemKey
	}
	return &Resolver{
		systemKey: systemKey,
		rules: []Rule{
			OperationalRule,
			CriticalRule,
			DegradedRule,
		},
	}
}

// Resolve evaluates the rules in order; the first that applies wins.
func (r *Resolver) Resolve(p status.Payload) Overall {
	in := NewInput(p, r.systemKey)
	for _, rule := range r.rules {
		if out, ok := rule(in); ok {
			return out
		}
	}
	// DegradedRule always applies; unreachable with the default rule set.
	out, _ := DegradedRule(in)
	return out
}

// ResolveOverall is Resolve with the default system key.
func ResolveOverall(p status.Payload) Overall {
	return NewResolver(DefaultSystemKey).Resolve(p)
}
