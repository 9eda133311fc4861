package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexusai/nexus-crm/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle colors insight severities, critical red through low dim.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityCritical:
		return StyleRed
	case domain.SeverityHigh:
		return StyleYellow
	case domain.SeverityMedium:
		return StyleBlue
	default:
		return StyleDim
	}
}

// SeverityBadge returns a colored badge such as "● HIGH".
func SeverityBadge(s domain.Severity) string {
	return SeverityStyle(s).Render("● " + strings.ToUpper(string(s)))
}

// RiskBadge renders a contract risk level with its score, e.g. "▲ HIGH (52/100)".
func RiskBadge(level domain.RiskLevel, score int) string {
	label := fmt.Sprintf("%s (%d/100)", strings.ToUpper(string(level)), score)
	switch level {
	case domain.RiskCritical:
		return StyleRed.Render("▲ " + label)
	case domain.RiskHigh:
		return StyleYellow.Render("▲ " + label)
	case domain.RiskMedium:
		return StyleBlue.Render("● " + label)
	default:
		return StyleGreen.Render("✔ " + label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// TaggedHeader is Header with a tag after the title, e.g. the model name.
func TaggedHeader(text, tag string) string {
	if tag == "" {
		return Header(text)
	}
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s %s\n%s", StyleHeader.Render(upper), tag, StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
