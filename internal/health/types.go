package health

// Class is the health of a single component.
type Class string

const (
	ClassHealthy Class = "healthy"
	ClassError   Class = "error"
	ClassWarning Class = "warning"
	ClassUnknown Class = "unknown"
)

// Label is the human text shown on a component card.
func (c Class) Label() string {
	switch c {
	case ClassHealthy:
		return "Healthy"
	case ClassError:
		return "Error"
	case ClassWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Token is the style token sinks key their colours on.
func (c Class) Token() string {
	return "status-" + string(c)
}

// Verdict is the overall system health.
type Verdict string

const (
	VerdictOperational Verdict = "OPERATIONAL"
	VerdictCritical    Verdict = "CRITICAL"
	VerdictDegraded    Verdict = "DEGRADED"
	// VerdictUnknown is only produced when the status could not be loaded.
	VerdictUnknown Verdict = "UNKNOWN"
)

// Color is a named colour token. Sinks decide how to paint it.
type Color string

const (
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorNone   Color = ""
)

var colorHex = map[Color]string{
	ColorGreen:  "#10b981",
	ColorRed:    "#ef4444",
	ColorYellow: "#f59e0b",
}

// Hex returns the colour as #rrggbb, or "" for ColorNone.
func (c Color) Hex() string {
	return colorHex[c]
}

// Overall is the resolved header indicator.
type Overall struct {
	Verdict Verdict `json:"verdict"`
	Label   string  `json:"label"`
	Icon    string  `json:"icon"`
	Color   Color   `json:"color"`
	// Message carries critical_failure when the verdict is critical.
	Message string `json:"message,omitempty"`
}
