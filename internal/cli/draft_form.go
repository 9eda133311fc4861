package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/report"
)

const dateLayout = "2006-01-02"

// contractTypes are the offers the consultancy sells.
var contractTypes = []string{
	report.DefaultContractType,
	"Retainer Mensal",
	"Projeto Fechado",
	"Sustentacao",
	"Squad Dedicada",
}

// nexusHuhTheme returns a huh theme using the CLI's Gruvbox palette.
func nexusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// draftFormValues holds the form's string fields; numbers are parsed when
// the form completes.
type draftFormValues struct {
	Client  string
	Type    string
	Value   string
	Start   string
	Months  string
	SLA     string
	Penalty string
	Index   string
	Scope   string
}

func draftFormValuesFrom(in report.DraftInput) draftFormValues {
	v := draftFormValues{
		Client: in.ClientName,
		Type:   in.Type,
		Start:  in.Start,
		Index:  in.AdjustmentIndex,
		Scope:  in.Scope,
	}
	if v.Type == "" {
		v.Type = report.DefaultContractType
	}
	if in.MonthlyValue != nil {
		v.Value = strconv.FormatFloat(*in.MonthlyValue, 'f', -1, 64)
	}
	if in.DurationMonths != nil {
		v.Months = strconv.Itoa(*in.DurationMonths)
	}
	if in.SLAHours != nil {
		v.SLA = strconv.Itoa(*in.SLAHours)
	}
	if in.PenaltyPct != nil {
		v.Penalty = strconv.FormatFloat(*in.PenaltyPct, 'f', -1, 64)
	}
	return v
}

// toInput converts the form back to a DraftInput. Blank numeric fields stay
// nil so the draft defaults apply.
func (v draftFormValues) toInput() (report.DraftInput, error) {
	in := report.DraftInput{
		ClientName:      strings.TrimSpace(v.Client),
		Type:            strings.TrimSpace(v.Type),
		Start:           strings.TrimSpace(v.Start),
		AdjustmentIndex: strings.TrimSpace(v.Index),
		Scope:           strings.TrimSpace(v.Scope),
	}
	var err error
	if in.MonthlyValue, err = optionalFloat("monthly value", v.Value); err != nil {
		return in, err
	}
	if in.DurationMonths, err = optionalInt("duration", v.Months); err != nil {
		return in, err
	}
	if in.SLAHours, err = optionalInt("SLA", v.SLA); err != nil {
		return in, err
	}
	if in.PenaltyPct, err = optionalFloat("penalty", v.Penalty); err != nil {
		return in, err
	}
	return in, nil
}

func buildDraftForm(v *draftFormValues) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(contractTypes))
	for _, t := range contractTypes {
		typeOptions = append(typeOptions, huh.NewOption(t, t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client").
				Placeholder(report.DefaultClientName).
				Value(&v.Client),
			huh.NewSelect[string]().
				Title("Contract type").
				Options(typeOptions...).
				Value(&v.Type),
			huh.NewInput().
				Title("Monthly value (BRL)").
				Placeholder("8500").
				Value(&v.Value).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD, blank for today)").
				Placeholder("2026-03-01").
				Value(&v.Start).
				Validate(validateOptionalDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (months)").
				Placeholder(strconv.Itoa(report.DefaultDurationMonths)).
				Value(&v.Months).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("SLA (hours)").
				Placeholder(strconv.Itoa(report.DefaultSLAHours)).
				Value(&v.SLA).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Termination penalty (%)").
				Placeholder("20").
				Value(&v.Penalty).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Adjustment index").
				Placeholder(report.DefaultAdjustmentIndex).
				Value(&v.Index),
			huh.NewText().
				Title("Scope").
				Placeholder(report.DefaultScope).
				Value(&v.Scope),
		),
	).WithTheme(nexusHuhTheme()).WithShowHelp(false)
}

// runDraftForm shows the draft form pre-filled with in.
func runDraftForm(in report.DraftInput) (report.DraftInput, error) {
	values := draftFormValuesFrom(in)
	if err := buildDraftForm(&values).Run(); err != nil {
		return in, err
	}
	return values.toInput()
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseAmount(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// parseAmount accepts "8500", "8500.50" and the Brazilian "8.500,50".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func optionalFloat(name, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, s)
	}
	return &v, nil
}

func optionalInt(name, s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, s)
	}
	return &v, nil
}
