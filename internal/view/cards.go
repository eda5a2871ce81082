package view

import (
	"fmt"
	"sort"

	"status-dashboard/internal/health"
	"status-dashboard/internal/status"
)

// DefaultTunnelKey is the component whose url feeds the live data link.
const DefaultTunnelKey = "3_cloudflare_tunnel"

// BuildComponentCards returns one card per component, ordered by key.
func BuildComponentCards(components map[string]status.Component, names NameTable) []Card {
	keys := make([]string, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cards := make([]Card, 0, len(keys))
	for _, k := range keys {
		cards = append(cards, buildCard(k, components[k], names))
	}
	return cards
}

func buildCard(key string, c status.Component, names NameTable) Card {
	class := health.Classify(c.Status, c.Healthy)
	card := Card{
		Key:        key,
		Name:       names.DisplayName(key, c.Name),
		Class:      class,
		ClassLabel: class.Label(),
		ClassToken: class.Token(),
		Details:    detailLines(c),
	}
	if c.Description != nil {
		card.Description = *c.Description
	}
	return card
}

// detailLines keeps a fixed order. A line appears iff its field is present,
// so status_code 0 renders and a missing status_code does not.
func detailLines(c status.Component) []string {
	lines := []string{"Status: " + c.StatusText()}
	if c.URL != nil {
		lines = append(lines, "URL: "+*c.URL)
	}
	if c.StatusCode != nil {
		lines = append(lines, fmt.Sprintf("HTTP: %d", *c.StatusCode))
	}
	if c.Error != nil {
		lines = append(lines, "Error: "+*c.Error)
	}
	if c.TrackersCount != nil {
		lines = append(lines, fmt.Sprintf("Trackers: %d", *c.TrackersCount))
	}
	return lines
}

// BuildTunnelLink extracts the tunnel url from the component at key.
func BuildTunnelLink(components map[string]status.Component, key string) TunnelLink {
	if c, ok := components[key]; ok && c.URL != nil && *c.URL != "" {
		return TunnelLink{Available: true, Href: *c.URL, Text: *c.URL}
	}
	return TunnelLink{Href: "#", Text: "Not available"}
}
