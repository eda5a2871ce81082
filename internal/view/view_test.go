package view

import (
	"testing"
	"time"

	"status-dashboard/internal/health"
	"status-dashboard/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Key
	}
	return out
}

func TestBuildComponentCards_Ordering(t *testing.T) {
	ba := map[string]status.Component{"b": {}, "a": {}}
	ab := map[string]status.Component{"a": {}, "b": {}}

	assert.Equal(t, []string{"a", "b"}, keysOf(BuildComponentCards(ba, nil)))
	assert.Equal(t, keysOf(BuildComponentCards(ab, nil)), keysOf(BuildComponentCards(ba, nil)))

	t.Run("LexicographicNotNumeric", func(t *testing.T) {
		comps := map[string]status.Component{
			"2_github_pages":    {},
			"11_system_status":  {},
			"1_external_users":  {},
			"10_service_health": {},
		}
		assert.Equal(t,
			[]string{"10_service_health", "11_system_status", "1_external_users", "2_github_pages"},
			keysOf(BuildComponentCards(comps, DefaultNames())),
		)
	})

	t.Run("Empty", func(t *testing.T) {
		cards := BuildComponentCards(nil, nil)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})
}

func TestDisplayNameFallback(t *testing.T) {
	names := DefaultNames()

	t.Run("NameField", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"5_service_api": {Name: status.Ptr("API Service")},
		}, names)
		assert.Equal(t, "API Service", cards[0].Name)
	})

	t.Run("Table", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"5_service_api": {},
		}, names)
		assert.Equal(t, "Service: NavixyApi", cards[0].Name)
	})

	t.Run("RawKey", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"12_backup_job": {},
		}, names)
		assert.Equal(t, "12_backup_job", cards[0].Name)
	})

	t.Run("SwappedTable", func(t *testing.T) {
		custom := NameTable{"12_backup_job": "Nightly Backup"}
		assert.Equal(t, "Nightly Backup", custom.DisplayName("12_backup_job", nil))
		assert.Equal(t, "5_service_api", custom.DisplayName("5_service_api", nil))
	})
}

func TestCardDetails(t *testing.T) {
	t.Run("StatusCodeZeroRenders", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"9_api_response": {Status: status.Ptr("running"), StatusCode: status.Ptr(0)},
		}, nil)
		assert.Equal(t, []string{"Status: running", "HTTP: 0"}, cards[0].Details)
	})

	t.Run("StatusCodeAbsentOmitted", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"9_api_response": {Status: status.Ptr("running")},
		}, nil)
		assert.Equal(t, []string{"Status: running"}, cards[0].Details)
	})

	t.Run("FixedOrder", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"6_navixy_api": {
				TrackersCount: status.Ptr(0),
				Error:         status.Ptr("timeout"),
				StatusCode:    status.Ptr(502),
				URL:           status.Ptr("http://127.0.0.1:8765/data"),
				Status:        status.Ptr("error"),
			},
		}, nil)
		assert.Equal(t, []string{
			"Status: error",
			"URL: http://127.0.0.1:8765/data",
			"HTTP: 502",
			"Error: timeout",
			"Trackers: 0",
		}, cards[0].Details)
	})

	t.Run("MissingStatus", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{"x": {}}, nil)
		assert.Equal(t, []string{"Status: unknown"}, cards[0].Details)
		assert.Equal(t, health.ClassUnknown, cards[0].Class)
	})

	t.Run("ClassAndDescription", func(t *testing.T) {
		cards := BuildComponentCards(map[string]status.Component{
			"1_external_users": {
				Status:      status.Ptr("active"),
				Healthy:     status.Ptr(true),
				Description: status.Ptr("User access to system"),
			},
		}, nil)
		assert.Equal(t, health.ClassHealthy, cards[0].Class)
		assert.Equal(t, "Healthy", cards[0].ClassLabel)
		assert.Equal(t, "status-healthy", cards[0].ClassToken)
		assert.Equal(t, "User access to system", cards[0].Description)
	})
}

func TestBuildTunnelLink(t *testing.T) {
	comps := map[string]status.Component{
		DefaultTunnelKey: {URL: status.Ptr("https://abc.trycloudflare.com")},
	}
	link := BuildTunnelLink(comps, DefaultTunnelKey)
	assert.True(t, link.Available)
	assert.Equal(t, "https://abc.trycloudflare.com", link.Href)
	assert.Equal(t, "https://abc.trycloudflare.com", link.Text)

	for name, comps := range map[string]map[string]status.Component{
		"MissingComponent": {},
		"MissingURL":       {DefaultTunnelKey: {Status: status.Ptr("disconnected")}},
		"EmptyURL":         {DefaultTunnelKey: {URL: status.Ptr("")}},
	} {
		t.Run(name, func(t *testing.T) {
			link := BuildTunnelLink(comps, DefaultTunnelKey)
			assert.False(t, link.Available)
			assert.Equal(t, "#", link.Href)
			assert.Equal(t, "Not available", link.Text)
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(Options{Location: time.UTC})

	p := status.Payload{
		Timestamp:        status.Ptr("2026-03-01T10:15:30.5"),
		OverallHealth:    status.Ptr(false),
		HealthPercentage: status.Ptr(72),
		Components: map[string]status.Component{
			"3_cloudflare_tunnel": {URL: status.Ptr("https://t.example"), Healthy: status.Ptr(true)},
			"8_tunnel_url":        {Status: status.Ptr("degraded")},
		},
	}

	d := b.Build(p)
	assert.Equal(t, health.VerdictDegraded, d.Header.Indicator.Verdict)
	assert.Equal(t, "72% Healthy", d.Header.Percentage)
	assert.Equal(t, health.ColorYellow, d.Header.Color)
	assert.Equal(t, "Last update: 10:15:30", d.Header.LastUpdate)
	require.Len(t, d.Cards, 2)
	assert.Equal(t, "Cloudflare Quick Tunnel", d.Cards[0].Name)
	assert.Equal(t, health.ClassWarning, d.Cards[1].Class)
	assert.True(t, d.Tunnel.Available)

	t.Run("NoTimestamp", func(t *testing.T) {
		d := b.Build(status.Payload{})
		assert.Equal(t, "Last update: --", d.Header.LastUpdate)
		assert.Equal(t, "0% Healthy", d.Header.Percentage)
	})

	t.Run("CustomKeys", func(t *testing.T) {
		b := NewBuilder(Options{SystemKey: "agg", TunnelKey: "edge", Names: NameTable{}})
		d := b.Build(status.Payload{
			HealthPercentage: status.Ptr(90),
			Components: map[string]status.Component{
				"agg":  {Status: status.Ptr("critical")},
				"edge": {URL: status.Ptr("https://edge.example")},
			},
		})
		assert.Equal(t, health.VerdictCritical, d.Header.Indicator.Verdict)
		assert.Equal(t, "https://edge.example", d.Tunnel.Href)
		assert.Equal(t, "agg", d.Cards[0].Name)
	})
}

func TestDashboardClone(t *testing.T) {
	d := Dashboard{
		Cards:    []Card{{Key: "a", Details: []string{"Status: ok"}}},
		Controls: []Control{{ID: "reset"}},
	}
	c := d.Clone()
	c.Cards[0].Details[0] = "changed"
	c.Controls[0].Disabled = true

	assert.Equal(t, "Status: ok", d.Cards[0].Details[0])
	assert.False(t, d.Controls[0].Disabled)
}

func TestInitial(t *testing.T) {
	d := Initial()
	assert.Equal(t, health.VerdictUnknown, d.Header.Indicator.Verdict)
	assert.Equal(t, "Not available", d.Tunnel.Text)
	assert.Empty(t, d.Cards)
}
