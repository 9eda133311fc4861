package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/report"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled colors a deadline by urgency: overdue or within two days
// is red, within a week yellow. Zero deadlines render as "--".
func DeadlineStyled(deadline, now time.Time) string {
	if deadline.IsZero() {
		return Dim("--")
	}
	text := RelativeDateFrom(deadline, now)
	days := int(math.Round(deadline.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// RenderProgress renders a progress bar like [████░░░░]  45% from a 0-100 value.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// Money renders an amount in reais.
func Money(v float64) string {
	return report.FormatBRL(v)
}

// Satisfaction renders a 0-5 score with one decimal, or "--" when the
// client was never surveyed.
func Satisfaction(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	text := fmt.Sprintf("%.1f ★", *v)
	switch {
	case *v <= 3.5:
		return StyleRed.Render(text)
	case *v < 4.5:
		return StyleYellow.Render(text)
	default:
		return StyleGreen.Render(text)
	}
}

func ClientStatusPill(s domain.ClientStatus) string {
	switch s {
	case domain.ClientActive:
		return StyleGreen.Render("● Active")
	case domain.ClientLead:
		return StyleBlue.Render("○ Lead")
	case domain.ClientChurnRisk:
		return StyleRed.Render("▲ Churn risk")
	case domain.ClientInactive:
		return StyleDim.Render("✖ Inactive")
	default:
		return StyleDim.Render(string(s))
	}
}

func ProjectStatusPill(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectBacklog:
		return StyleDim.Render("○ Backlog")
	case domain.ProjectInProgress:
		return StyleGreen.Render("● In progress")
	case domain.ProjectReview:
		return StyleYellow.Render("◐ Review")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(s))
	}
}

func TicketStatusPill(s domain.TicketStatus) string {
	switch s {
	case domain.TicketOpen:
		return StyleBlue.Render("○ Open")
	case domain.TicketInProgress:
		return StyleGreen.Render("● In progress")
	case domain.TicketResolved:
		return StyleDim.Render("✔ Resolved")
	default:
		return StyleDim.Render(string(s))
	}
}

func PriorityPill(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("critical")
	case domain.PriorityHigh:
		return StyleYellow.Render("high")
	case domain.PriorityMedium:
		return StyleFg.Render("medium")
	default:
		return StyleDim.Render(string(p))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateOrDash formats an optional date as YYYY-MM-DD.
func DateOrDash(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}
