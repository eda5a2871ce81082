package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"status-dashboard/internal/health"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/view"
)

const (
	cardWidth   = 36
	clearScreen = "\x1b[H\x1b[2J"
	grayHex     = "#9ca3af"
)

// LogSource supplies the footer lines.
type LogSource interface {
	GetLast(n int) []logs.Entry
}

// Terminal draws each frame from scratch; nothing is diffed.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	logLines int
	logs     LogSource
	clear    bool
	held     bool
	pending  *view.Dashboard

	r      *lipgloss.Renderer
	dim    lipgloss.Style
	bold   lipgloss.Style
	card   lipgloss.Style
	banner lipgloss.Style
}

// Options for NewTerminal. Zero values are usable.
type Options struct {
	Width    int
	LogLines int
	Logs     LogSource
	// NoClear skips the clear-screen sequence (tests, dumb terminals).
	NoClear bool
}

func NewTerminal(out io.Writer, opts Options) *Terminal {
	if opts.Width <= 0 {
		opts.Width = 120
	}
	if opts.LogLines < 0 {
		opts.LogLines = 0
	}
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out:      out,
		width:    opts.Width,
		logLines: opts.LogLines,
		logs:     opts.Logs,
		clear:    !opts.NoClear,
		r:        r,
		dim:      r.NewStyle().Foreground(lipgloss.Color(grayHex)),
		bold:     r.NewStyle().Bold(true),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth),
		banner: r.NewStyle().Bold(true).Padding(0, 1),
	}
}

// Render writes d to the terminal. It matches board.Store subscribers.
// While held, only the latest dashboard is kept.
func (t *Terminal) Render(d view.Dashboard) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held {
		t.pending = &d
		return
	}
	t.write(d)
}

// Hold stops redraws so a prompt stays on screen.
func (t *Terminal) Hold() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = true
}

// Release resumes redraws and flushes the frame that arrived while held.
func (t *Terminal) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = false
	if t.pending != nil {
		d := *t.pending
		t.pending = nil
		t.write(d)
	}
}

func (t *Terminal) write(d view.Dashboard) {
	if t.clear {
		_, _ = io.WriteString(t.out, clearScreen)
	}
	_, _ = io.WriteString(t.out, t.Frame(d))
}

// Frame renders d to a string.
func (t *Terminal) Frame(d view.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(t.header(d.Header))
	sb.WriteString("\n\n")
	sb.WriteString(t.grid(d.Cards))
	sb.WriteString("\n\n")
	sb.WriteString(t.tunnel(d.Tunnel))
	sb.WriteString("\n")
	sb.WriteString(t.controls(d.Controls))
	sb.WriteString("\n")
	if footer := t.footer(); footer != "" {
		sb.WriteString("\n")
		sb.WriteString(footer)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) paint(c health.Color) lipgloss.Style {
	if hex := c.Hex(); hex != "" {
		return t.r.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return t.r.NewStyle()
}

func (t *Terminal) header(h view.Header) string {
	style := t.paint(h.Color)

	indicator := t.banner.Inherit(style).Render(h.Indicator.Icon + " " + h.Indicator.Label)
	parts := []string{
		indicator,
		style.Render(h.Percentage),
		t.dim.Render(h.LastUpdate),
	}
	line := strings.Join(parts, t.dim.Render("  │  "))
	if h.Indicator.Message != "" {
		line += "\n" + t.paint(health.ColorRed).Render("  "+h.Indicator.Message)
	}
	return line
}

func classHex(c health.Class) string {
	switch c {
	case health.ClassHealthy:
		return health.ColorGreen.Hex()
	case health.ClassError:
		return health.ColorRed.Hex()
	case health.ClassWarning:
		return health.ColorYellow.Hex()
	default:
		return grayHex
	}
}

func (t *Terminal) renderCard(c view.Card) string {
	badge := t.r.NewStyle().Bold(true).Foreground(lipgloss.Color(classHex(c.Class))).Render(c.ClassLabel)

	var body strings.Builder
	body.WriteString(t.bold.Render(c.Name))
	body.WriteString("\n")
	body.WriteString(badge)
	if c.Description != "" {
		body.WriteString("\n")
		body.WriteString(t.dim.Render(c.Description))
	}
	for _, line := range c.Details {
		body.WriteString("\n")
		body.WriteString(line)
	}
	return t.card.BorderForeground(lipgloss.Color(classHex(c.Class))).Render(body.String())
}

func (t *Terminal) grid(cards []view.Card) string {
	if len(cards) == 0 {
		return t.dim.Render("no components reported")
	}

	perRow := t.width / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	rows := make([]string, 0, len(cards)/perRow+1)
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rendered := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			rendered = append(rendered, t.renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *Terminal) tunnel(l view.TunnelLink) string {
	text := l.Text
	if !l.Available {
		text = t.dim.Render(text)
	}
	return t.bold.Render("Live data: ") + text
}

func (t *Terminal) controls(ctrls []view.Control) string {
	parts := make([]string, 0, len(ctrls)+2)
	for i, c := range ctrls {
		label := fmt.Sprintf("[%d] %s", i+1, c.Label)
		if c.Disabled {
			label = t.dim.Render(label)
		}
		parts = append(parts, label)
	}
	parts = append(parts, "[r] Refresh", "[q] Quit")
	return strings.Join(parts, "   ")
}

func (t *Terminal) footer() string {
	if t.logs == nil || t.logLines == 0 {
		return ""
	}
	entries := t.logs.GetLast(t.logLines)
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = t.dim.Render(e.String())
	}
	return strings.Join(lines, "\n")
}
