package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultMessageBackground = "#1F2937"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"})
	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#16A34A"))
	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"})
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DC2626"))
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"}).
			Padding(1, 2)
	messageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Align(lipgloss.Center, lipgloss.Center).
			Padding(2, 4)
	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#444444"})
)

// namedColors covers the colour names playlists use for message backgrounds.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"gray":    "#6B7280",
	"grey":    "#6B7280",
	"red":     "#DC2626",
	"maroon":  "#800000",
	"orange":  "#EA580C",
	"yellow":  "#CA8A04",
	"gold":    "#B8860B",
	"green":   "#16A34A",
	"olive":   "#808000",
	"teal":    "#0D9488",
	"blue":    "#2563EB",
	"navy":    "#000080",
	"purple":  "#7C3AED",
	"pink":    "#DB2777",
	"brown":   "#8B4513",
	"crimson": "#DC143C",
}

// backgroundColor resolves a playlist colour: a #hex value, a known name,
// or the default.
func backgroundColor(name string) lipgloss.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "#") && (len(name) == 4 || len(name) == 7) {
		return lipgloss.Color(name)
	}
	if hex, ok := namedColors[name]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultMessageBackground)
}

func renderProgressBar(fraction float64, width int) string {
	if width < 1 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return barFilledStyle.Render(strings.Repeat("━", filled)) +
		barEmptyStyle.Render(strings.Repeat("─", width-filled))
}
