package view

import (
	"fmt"
	"time"

	"status-dashboard/internal/health"
	"status-dashboard/internal/status"
)

// Options configures a Builder. Zero values fall back to the defaults.
type Options struct {
	Names     NameTable
	SystemKey string
	TunnelKey string
	// Location is used for zone-less timestamps and for display.
	Location *time.Location
}

// Builder turns payloads into dashboards. It holds no per-cycle state.
type Builder struct {
	names     NameTable
	tunnelKey string
	loc       *time.Location
	resolver  *health.Resolver
}

func NewBuilder(opts Options) *Builder {
	if opts.Names == nil {
		opts.Names = DefaultNames()
	}
	if opts.TunnelKey == "" {
		opts.TunnelKey = DefaultTunnelKey
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Builder{
		names:     opts.Names,
		tunnelKey: opts.TunnelKey,
		loc:       opts.Location,
		resolver:  health.NewResolver(opts.SystemKey),
	}
}

// Build produces the full frame for p. Controls are left empty; the board
// owns them.
func (b *Builder) Build(p status.Payload) Dashboard {
	overall := b.resolver.Resolve(p)
	return Dashboard{
		Header: Header{
			Indicator:  overall,
			Percentage: fmt.Sprintf("%d%% Healthy", p.Percentage()),
			Color:      overall.Color,
			LastUpdate: "Last update: " + b.formatTimestamp(p),
		},
		Cards:  BuildComponentCards(p.Components, b.names),
		Tunnel: BuildTunnelLink(p.Components, b.tunnelKey),
	}
}

func (b *Builder) formatTimestamp(p status.Payload) string {
	ts, ok := p.Time(b.loc)
	if !ok {
		return "--"
	}
	return ts.In(b.loc).Format("15:04:05")
}

// Initial is the frame shown before the first poll completes.
func Initial() Dashboard {
	return Dashboard{
		Header: Header{
			Indicator: health.Overall{
				Verdict: health.VerdictUnknown,
				Label:   "Loading...",
				Icon:    "⏳",
			},
			Percentage: "--% Healthy",
			LastUpdate: "Last update: --",
		},
		Cards:  []Card{},
		Tunnel: TunnelLink{Href: "#", Text: "Not available"},
	}
}
