package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/report"
)

func TestDraftFormValues_RoundTripKeepsFlags(t *testing.T) {
	value, months := 8500.5, 24
	in := report.DraftInput{ClientName: "FinEdge", MonthlyValue: &value, DurationMonths: &months}

	v := draftFormValuesFrom(in)
	assert.Equal(t, report.DefaultContractType, v.Type)
	assert.Equal(t, "8500.5", v.Value)
	assert.Equal(t, "24", v.Months)
	assert.Empty(t, v.SLA)

	out, err := v.toInput()
	require.NoError(t, err)
	assert.Equal(t, "FinEdge", out.ClientName)
	require.NotNil(t, out.MonthlyValue)
	assert.InDelta(t, 8500.5, *out.MonthlyValue, 1e-9)
	require.NotNil(t, out.DurationMonths)
	assert.Equal(t, 24, *out.DurationMonths)
	assert.Nil(t, out.SLAHours, "blank fields keep the draft defaults")
	assert.Nil(t, out.PenaltyPct)
}

func TestDraftFormValues_BrazilianAmount(t *testing.T) {
	out, err := draftFormValues{Value: "R$ 12.000,50", Penalty: "0"}.toInput()
	require.NoError(t, err)

	assert.InDelta(t, 12000.5, *out.MonthlyValue, 1e-9)
	require.NotNil(t, out.PenaltyPct)
	assert.Zero(t, *out.PenaltyPct)
}

func TestDraftFormValues_RejectsGarbage(t *testing.T) {
	_, err := draftFormValues{Months: "twelve"}.toInput()
	assert.Error(t, err)
}

func TestDraftFormValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"date blank", validateOptionalDate, "", true},
		{"date ok", validateOptionalDate, "2026-03-01", true},
		{"date br", validateOptionalDate, "01/03/2026", false},
		{"int blank", validatePositiveInt, " ", true},
		{"int ok", validatePositiveInt, "12", true},
		{"int zero", validatePositiveInt, "0", false},
		{"int text", validatePositiveInt, "doze", false},
		{"amount ok", validateNonNegativeFloat, "8.500,00", true},
		{"amount negative", validateNonNegativeFloat, "-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuildDraftForm(t *testing.T) {
	v := draftFormValuesFrom(report.DraftInput{})
	form := buildDraftForm(&v)
	require.NotNil(t, form)
	assert.Equal(t, report.DefaultContractType, v.Type)
}
