package status

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Payload is one response of GET /api/status.
//
// Every optional field is a pointer: nil means the backend did not send it
// (or sent null), which is distinct from a zero value.
type Payload struct {
	Timestamp        *string              `json:"timestamp,omitempty"`
	OverallHealth    *bool                `json:"overall_health,omitempty"`
	HealthPercentage *int                 `json:"health_percentage,omitempty"`
	CriticalFailure  *string              `json:"critical_failure,omitempty"`
	Components       map[string]Component `json:"components,omitempty"`
}

// Component is a single entry of Payload.Components.
type Component struct {
	Name          *string `json:"name,omitempty"`
	Status        *string `json:"status,omitempty"`
	Healthy       *bool   `json:"healthy,omitempty"`
	Description   *string `json:"description,omitempty"`
	URL           *string `json:"url,omitempty"`
	StatusCode    *int    `json:"status_code,omitempty"`
	Error         *string `json:"error,omitempty"`
	TrackersCount *int    `json:"trackers_count,omitempty"`
}

// Decode reads a Payload from r. Any syntax or type error is a malformed
// response; missing fields never are.
func Decode(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("status: decode payload: %w", err)
	}
	return p, nil
}

// Healthy reports the backend's overall_health hint; absent reads as false.
func (p Payload) Healthy() bool {
	return p.OverallHealth != nil && *p.OverallHealth
}

// Percentage returns health_percentage; absent reads as 0.
func (p Payload) Percentage() int {
	if p.HealthPercentage == nil {
		return 0
	}
	return *p.HealthPercentage
}

// Component looks up a component by key.
func (p Payload) Component(key string) (Component, bool) {
	c, ok := p.Components[key]
	return c, ok
}

// timestampLayouts covers RFC 3339 and the zone-less ISO form python's
// datetime.isoformat() produces.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Time parses Timestamp. Zone-less values are read in loc.
func (p Payload) Time(loc *time.Location) (time.Time, bool) {
	if p.Timestamp == nil || *p.Timestamp == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, *p.Timestamp, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StatusText returns the raw status string or "unknown" when absent.
func (c Component) StatusText() string {
	if c.Status == nil {
		return "unknown"
	}
	return *c.Status
}

// Ptr returns a pointer to v. Handy for building payloads in code.
func Ptr[T any](v T) *T {
	return &v
}
