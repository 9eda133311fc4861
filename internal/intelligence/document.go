// Package intelligence layers optional language-model output over the
// deterministic insight engine, report composer and contract scorer. Every
// service falls back to the deterministic result when the model is
// disabled, unreachable or returns unusable output.
package intelligence

import "strings"

// Source records which path produced a result.
type Source string

const (
	SourceLLM           Source = "llm"
	SourceDeterministic Source = "deterministic"
)

// Document is a generated text artifact.
type Document struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
	Model  string `json:"model,omitempty"`
}

// CompanyProfile describes the consultancy to the model so answers match
// its positioning and tone.
type CompanyProfile struct {
	Name          string
	Positioning   string
	BusinessModel string
	IdealClient   string
	Style         string
}

// DefaultCompanyProfile returns the profile used when none is configured.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:          "Nexus AI Consultoria",
		Positioning:   "Consultancy specialized in AI, BI and Power BI dashboards",
		BusinessModel: "High-value B2B consulting with recurring contracts and data-driven transformation projects",
		IdealClient:   "SMBs and growing companies that need to scale decisions with AI, BI and automation",
		Style:         "Executive, consultative, ROI-oriented tone with modern tech language",
	}
}

// contextBlock renders the profile as one prompt paragraph.
func (p CompanyProfile) contextBlock() string {
	parts := []string{
		"Company: " + p.Name + ".",
		"Positioning: " + p.Positioning + ".",
		"Business model: " + p.BusinessModel + ".",
		"Ideal client: " + p.IdealClient + ".",
		"Response style: " + p.Style + ".",
	}
	return strings.Join(parts, " ")
}
