// Package contractrisk scores contract text against a checklist of clauses a
// service agreement is expected to contain.
package contractrisk

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/textnorm"
)

// ErrEmptyText is returned alongside a score-0 critical Result when there is
// nothing to analyze.
var ErrEmptyText = errors.New("contract text is empty")

// MinScore is the floor applied after all deductions.
const MinScore = 5

// Result is the outcome of one analysis.
type Result struct {
	Score           int              `json:"score"`
	Level           domain.RiskLevel `json:"level"`
	Summary         string           `json:"summary"`
	Risks           []string         `json:"risks"`
	Recommendations []string         `json:"recommendations"`
	Checks          []CheckResult    `json:"checks,omitempty"`
}

// CheckResult records how a single checklist item fared.
type CheckResult struct {
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	Deducted bool   `json:"deducted"`
}

type check struct {
	name    string
	pattern *regexp.Regexp
	weight  int
	// inverted checks deduct when the pattern matches.
	inverted       bool
	risk           string
	recommendation string
}

// Patterns run against folded text (lower-case, no diacritics). Portuguese
// terms come first; the English terms cover translated contracts.
var checklist = []check{
	{
		name:           "data_protection",
		pattern:        regexp.MustCompile(`lgpd|lei geral de protecao de dados|protecao de dados|data protection|gdpr`),
		weight:         22,
		risk:           "Data-protection clause (LGPD) absent.",
		recommendation: "Add an LGPD clause covering personal-data processing and incident response.",
	},
	{
		name:           "penalty",
		pattern:        regexp.MustCompile(`multa|penalidade|penalty|termination fee`),
		weight:         16,
		risk:           "Termination penalty not defined.",
		recommendation: "Define a termination penalty and the conditions for early exit.",
	},
	{
		name:           "sla",
		pattern:        regexp.MustCompile(`\bsla\b|nivel de servico|tempo de resposta|service level|response time`),
		weight:         14,
		risk:           "SLA absent or not objective.",
		recommendation: "Set objective response and resolution times with measurable targets.",
	},
	{
		name:           "adjustment",
		pattern:        regexp.MustCompile(`reajuste|ipca|igp-m|indice|price adjustment|inflation`),
		weight:         12,
		risk:           "No price adjustment index.",
		recommendation: "Add an annual adjustment clause tied to an index such as IPCA.",
	},
	{
		name:           "term",
		pattern:        regexp.MustCompile(`vigencia|prazo|inicio|termino|\bterm\b|duration`),
		weight:         14,
		risk:           "Term and duration unclear.",
		recommendation: "State the start date, end date and renewal rules.",
	},
	{
		name:           "jurisdiction",
		pattern:        regexp.MustCompile(`foro|jurisdicao|jurisdiction|governing law`),
		weight:         8,
		risk:           "Jurisdiction (forum) not defined.",
		recommendation: "Name the forum that will settle disputes.",
	},
	{
		name:           "exclusivity",
		pattern:        regexp.MustCompile(`exclusividade|exclusivity`),
		weight:         8,
		inverted:       true,
		risk:           "Exclusivity clause may restrict operations.",
		recommendation: "Review the scope and duration of the exclusivity clause with legal.",
	},
}

// AnalyzeText scores free contract text. Whitespace-only input yields a
// score-0 critical Result together with ErrEmptyText.
func AnalyzeText(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{
			Score:           0,
			Level:           domain.RiskCritical,
			Summary:         summary(0, domain.RiskCritical),
			Risks:           []string{"No content provided for analysis."},
			Recommendations: []string{"Paste the full contract text to run the analysis."},
		}, ErrEmptyText
	}

	folded := textnorm.Fold(text)
	score := 100
	res := Result{}
	for _, c := range checklist {
		matched := c.pattern.MatchString(folded)
		deduct := matched == c.inverted
		if deduct {
			score -= c.weight
			res.Risks = append(res.Risks, c.risk)
			res.Recommendations = append(res.Recommendations, c.recommendation)
		}
		res.Checks = append(res.Checks, CheckResult{Name: c.name, Weight: c.weight, Deducted: deduct})
	}

	res.Score = max(score, MinScore)
	res.Level = LevelFor(res.Score)
	res.Summary = summary(res.Score, res.Level)
	if len(res.Risks) == 0 {
		res.Risks = []string{"No critical risk identified in the basic checklist."}
		res.Recommendations = []string{"Run a final legal review before signing."}
	}
	return res, nil
}

// LevelFor maps a score to its risk level.
func LevelFor(score int) domain.RiskLevel {
	switch {
	case score < 55:
		return domain.RiskCritical
	case score < 75:
		return domain.RiskHigh
	case score < 90:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// AnalyzeRecord flattens a stored contract into text and scores it.
func AnalyzeRecord(c domain.Contract) (Result, error) {
	return AnalyzeText(RecordText(c))
}

// RecordText renders the structured fields of a contract as the text the
// checklist understands.
func RecordText(c domain.Contract) string {
	parts := []string{c.Title, c.Type, c.Scope, c.AdjustmentIndex}
	if c.LGPDClause {
		parts = append(parts, "LGPD presente")
	}
	if c.SLAHours > 0 {
		parts = append(parts, fmt.Sprintf("SLA %d horas", c.SLAHours))
	}
	if c.TerminationPenaltyPct > 0 {
		parts = append(parts, fmt.Sprintf("multa %g%%", c.TerminationPenaltyPct))
	}
	if c.Start != nil {
		parts = append(parts, "inicio "+c.Start.Format("2006-01-02"))
	}
	if c.End != nil {
		parts = append(parts, "fim "+c.End.Format("2006-01-02"))
	}

	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func summary(score int, level domain.RiskLevel) string {
	return fmt.Sprintf("Risk score: %d/100 (%s).", score, level)
}
