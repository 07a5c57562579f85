package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#17B897")

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	subtle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))

	barFilled = lipgloss.NewStyle().Foreground(accent)
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// gradientText colors each rune of text along a linear blend of two hex colors.
func gradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	sr, sg, sb := parseHex(string(from))
	er, eg, eb := parseHex(string(to))

	var out strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		r := sr + int(t*float64(er-sr))
		g := sg + int(t*float64(eg-sg))
		b := sb + int(t*float64(eb-sb))
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
		out.WriteString(style.Render(string(c)))
	}
	return out.String()
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// sliderBar draws the position of value within [lo, hi] as a filled track.
func sliderBar(value, lo, hi, width int) string {
	filled := width
	if hi > lo {
		filled = (value - lo) * width / (hi - lo)
	}
	filled = max(0, min(width, filled))
	return barFilled.Render(strings.Repeat("━", filled)) + barEmpty.Render(strings.Repeat("─", width-filled))
}

func separator(width int) string {
	if width < 8 {
		return subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
