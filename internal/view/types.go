package view

import "status-dashboard/internal/health"

// Card is one component tile.
type Card struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Class       health.Class `json:"class"`
	ClassLabel  string       `json:"class_label"`
	ClassToken  string       `json:"class_token"`
	Description string       `json:"description,omitempty"`
	Details     []string     `json:"details"`
}

// TunnelLink is the "live data" link built from the tunnel component.
type TunnelLink struct {
	Available bool   `json:"available"`
	Href      string `json:"href"`
	Text      string `json:"text"`
}

// Header is the summary shown above the card grid.
type Header struct {
	Indicator  health.Overall `json:"indicator"`
	Percentage string         `json:"percentage"`
	// Color paints both the indicator and the percentage.
	Color      health.Color `json:"color"`
	LastUpdate string       `json:"last_update"`
}

// Control is a button-like action trigger.
type Control struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Dashboard is everything a sink needs to draw one frame.
type Dashboard struct {
	Header   Header     `json:"header"`
	Cards    []Card     `json:"cards"`
	Tunnel   TunnelLink `json:"tunnel"`
	Controls []Control  `json:"controls"`
}

// Clone returns a copy that shares no slices with d.
func (d Dashboard) Clone() Dashboard {
	out := d
	out.Cards = make([]Card, len(d.Cards))
	for i, c := range d.Cards {
		c.Details = append([]string(nil), c.Details...)
		out.Cards[i] = c
	}
	out.Controls = append([]Control(nil), d.Controls...)
	return out
}
