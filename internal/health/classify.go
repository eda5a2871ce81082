package health

// Classify maps a component's status fields to a Class.
//
// An explicit healthy flag always wins over the status text, so
// healthy=true with status "critical" is still ClassHealthy. Only when
// healthy is absent does the text matter.
func Classify(status *string, healthy *bool) Class {
	switch {
	case healthy != nil && *healthy:
		return ClassHealthy
	case healthy != nil:
		return ClassError
	case status != nil && (*status == "warning" || *status == "degraded"):
		return ClassWarning
	default:
		return ClassUnknown
	}
}
