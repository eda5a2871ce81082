package status

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "timestamp": "2026-03-01T10:15:30.123456",
  "overall_health": false,
  "health_percentage": 0,
  "critical_failure": "Tunnel URL inaccessible - external access broken!",
  "components": {
    "3_cloudflare_tunnel": {"name": "Cloudflare Quick Tunnel", "status": "connected", "healthy": true, "url": "https://example.trycloudflare.com"},
    "8_tunnel_url": {"status": "no_url", "healthy": false},
    "9_api_response": {"status": "running", "status_code": 0, "error": null},
    "11_system_status": {"status": "critical", "healthy": false}
  }
}`

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(samplePayload))
	require.NoError(t, err)

	assert.False(t, p.Healthy())
	assert.Equal(t, 0, p.Percentage())
	require.NotNil(t, p.HealthPercentage, "explicit 0 must stay present")
	require.NotNil(t, p.CriticalFailure)
	assert.Len(t, p.Components, 4)

	t.Run("TriStateHealthy", func(t *testing.T) {
		tunnel, ok := p.Component("8_tunnel_url")
		require.True(t, ok)
		require.NotNil(t, tunnel.Healthy)
		assert.False(t, *tunnel.Healthy)

		api, _ := p.Component("9_api_response")
		assert.Nil(t, api.Healthy, "absent healthy is not false")
	})

	t.Run("ZeroVersusAbsent", func(t *testing.T) {
		api, _ := p.Component("9_api_response")
		require.NotNil(t, api.StatusCode)
		assert.Equal(t, 0, *api.StatusCode)
		assert.Nil(t, api.Error, "null reads as absent")
		assert.Nil(t, api.TrackersCount)
	})
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"components": [`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"health_percentage": "high"}`))
	assert.Error(t, err)
}

func TestDecode_EmptyObject(t *testing.T) {
	p, err := Decode(strings.NewReader(`{}`))
	require.NoError(t, err)

	assert.False(t, p.Healthy())
	assert.Equal(t, 0, p.Percentage())
	assert.Empty(t, p.Components)
	_, ok := p.Time(time.UTC)
	assert.False(t, ok)
}

func TestPayloadTime(t *testing.T) {
	p := Payload{Timestamp: Ptr("2026-03-01T10:15:30.123456")}
	ts, ok := p.Time(time.UTC)
	require.True(t, ok)
	assert.Equal(t, 10, ts.Hour())
	assert.Equal(t, 30, ts.Second())

	p.Timestamp = Ptr("2026-03-01T10:15:30Z")
	_, ok = p.Time(time.UTC)
	assert.True(t, ok)

	p.Timestamp = Ptr("yesterday")
	_, ok = p.Time(time.UTC)
	assert.False(t, ok)
}

func TestComponentStatusText(t *testing.T) {
	assert.Equal(t, "unknown", Component{}.StatusText())
	assert.Equal(t, "flowing", Component{Status: Ptr("flowing")}.StatusText())
}
