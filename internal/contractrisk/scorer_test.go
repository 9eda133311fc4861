package contractrisk

import (
	"testing"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeContract = `CONTRATO DE PRESTACAO DE SERVICOS
Vigência de 12 meses com início em 01/03/2026.
SLA de 8 horas úteis para primeira resposta.
Multa rescisória de 20% sobre o saldo.
Reajuste anual pelo IPCA.
As partes observam a Lei Geral de Proteção de Dados (LGPD).
Fica eleito o foro da comarca de São Paulo.`

func TestAnalyzeText_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		res, err := AnalyzeText(in)

		require.ErrorIs(t, err, ErrEmptyText)
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, domain.RiskCritical, res.Level)
		assert.Equal(t, []string{"No content provided for analysis."}, res.Risks)
		assert.Len(t, res.Recommendations, 1)
	}
}

func TestAnalyzeText_CompleteContractIsLowRisk(t *testing.T) {
	res, err := AnalyzeText(completeContract)

	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, domain.RiskLow, res.Level)
	assert.Equal(t, "Risk score: 100/100 (low).", res.Summary)
	assert.Equal(t, []string{"No critical risk identified in the basic checklist."}, res.Risks)
	assert.Equal(t, []string{"Run a final legal review before signing."}, res.Recommendations)
	assert.Len(t, res.Checks, 7)
}

func TestAnalyzeText_OnlyLGPDMissing(t *testing.T) {
	text := "Vigencia de 12 meses. SLA de 4 horas. Multa de 10%. Reajuste IPCA. Foro de Curitiba."

	res, err := AnalyzeText(text)

	require.NoError(t, err)
	assert.Equal(t, 78, res.Score)
	assert.Equal(t, domain.RiskMedium, res.Level)
	assert.Equal(t, []string{"Data-protection clause (LGPD) absent."}, res.Risks)
}

func TestAnalyzeText_ExclusivityDeductsWhenPresent(t *testing.T) {
	res, err := AnalyzeText(completeContract + "\nCláusula de exclusividade por 24 meses.")

	require.NoError(t, err)
	assert.Equal(t, 92, res.Score)
	assert.Contains(t, res.Risks, "Exclusivity clause may restrict operations.")
}

func TestAnalyzeText_WorstCaseStaysAboveFloor(t *testing.T) {
	res, err := AnalyzeText("exclusividade")

	require.NoError(t, err)
	assert.Equal(t, 6, res.Score)
	assert.GreaterOrEqual(t, res.Score, MinScore)
	assert.Equal(t, domain.RiskCritical, res.Level)
	assert.Len(t, res.Risks, 7)
	assert.Len(t, res.Recommendations, 7)
}

func TestAnalyzeText_NothingMatches(t *testing.T) {
	res, err := AnalyzeText("lorem ipsum dolor sit amet")

	require.NoError(t, err)
	assert.Equal(t, 100-22-16-14-12-14-8, res.Score)
	assert.Equal(t, domain.RiskCritical, res.Level)
}

func TestAnalyzeText_DiacriticsAndCaseIgnored(t *testing.T) {
	a, err := AnalyzeText("PROTEÇÃO DE DADOS")
	require.NoError(t, err)
	b, err := AnalyzeText("protecao de dados")
	require.NoError(t, err)

	assert.Equal(t, a.Score, b.Score)
	assert.NotContains(t, a.Risks, "Data-protection clause (LGPD) absent.")
}

func TestAnalyzeText_SLAIsAWholeWord(t *testing.T) {
	res, err := AnalyzeText("conforme a legislacao vigente")
	require.NoError(t, err)
	assert.Contains(t, res.Risks, "SLA absent or not objective.")
}

func TestAnalyzeText_ScoreAlwaysInRange(t *testing.T) {
	inputs := []string{"a", completeContract, "multa", "sla ipca foro", "exclusividade lgpd"}
	for _, in := range inputs {
		res, err := AnalyzeText(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, MinScore, in)
		assert.LessOrEqual(t, res.Score, 100, in)
		assert.Equal(t, LevelFor(res.Score), res.Level, in)
	}
}

func TestLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskCritical},
		{54, domain.RiskCritical},
		{55, domain.RiskHigh},
		{74, domain.RiskHigh},
		{75, domain.RiskMedium},
		{89, domain.RiskMedium},
		{90, domain.RiskLow},
		{100, domain.RiskLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.score), "score=%d", tt.score)
	}
}

func TestRecordText(t *testing.T) {
	c := testutil.NewTestContract("c1", "Analytics Retainer",
		testutil.WithSLA(6),
		testutil.WithPenalty(20),
		testutil.WithPeriod(testutil.Date("2025-11-01"), testutil.Date("2026-10-31")),
	)

	text := RecordText(*c)

	assert.Equal(t, "Analytics Retainer Monthly Retainer Analytics services. IPCA anual LGPD presente SLA 6 horas multa 20% inicio 2025-11-01 fim 2026-10-31", text)
}

func TestAnalyzeRecord_MatchesAnalyzeTextOfRecordText(t *testing.T) {
	c := testutil.NewTestContract("c1", "BI Project", testutil.WithLGPD(false), testutil.WithSLA(24), testutil.WithPenalty(10))

	viaRecord, err := AnalyzeRecord(*c)
	require.NoError(t, err)
	viaText, err := AnalyzeText(RecordText(*c))
	require.NoError(t, err)

	assert.Equal(t, viaText, viaRecord)
	// No LGPD (-22), no term dates (-14), no forum (-8).
	assert.Equal(t, 56, viaRecord.Score)
	assert.Equal(t, domain.RiskHigh, viaRecord.Level)
}

func TestAnalyzeRecord_EmptyRecord(t *testing.T) {
	res, err := AnalyzeRecord(domain.Contract{})
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, 0, res.Score)
}
