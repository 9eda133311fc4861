package intelligence

import "strings"

func systemPrompt(profile CompanyProfile, role string, focus ...string) string {
	parts := append([]string{role, profile.contextBlock()}, focus...)
	return strings.Join(parts, " ")
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

const reportRole = "You are a senior executive strategist at a consultancy for AI, BI and Power BI."

var reportFocus = []string{
	"Prioritize revenue growth, retention, margin and premium positioning.",
	"Produce objective, actionable analysis without generalities.",
}

func reportUserPrompt(period, data string) string {
	return lines(
		"Write an executive report for the "+period+" period.",
		"Mandatory format:",
		"1) Executive Summary",
		"2) Patterns and Trends",
		"3) Priority Risks",
		"4) Commercial Opportunities",
		"5) Action Plan for the next 15 days (with priorities and suggested owners).",
		"6) High-impact commercial proposals (upsell, cross-sell, new AI/BI/Power BI packages).",
		"7) Talking points for the board meeting and for client meetings.",
		"Rules: include numeric targets, quick wins, execution risks and estimated impact.",
		"Use board-level, consultative and tech language.",
		"Data:",
		data,
	)
}

const suggestionsRole = "You are an executive commercial and operational copilot for an AI/BI consultancy."

var suggestionsFocus = []string{
	"Deliver high-quality recommendations that accelerate growth and predictability.",
}

func suggestionsUserPrompt(data string) string {
	return lines(
		"Generate prioritized executive recommendations.",
		"Respond ONLY with valid JSON (no markdown) in the form {\"suggestions\": [...]} with 6 objects.",
		"Required fields per object:",
		"- category",
		"- severity (critical|high|medium|low)",
		"- title",
		"- description",
		"- recommendation",
		"- impact",
		"- deadline",
		"Focus on revenue expansion, retention, productivity, pipeline predictability and automation.",
		"Data:",
		data,
	)
}

const contractAnalysisRole = "You are a legal and commercial specialist for technology and data service contracts."

var contractAnalysisFocus = []string{
	"Your focus is protecting margin, reducing legal risk and keeping commercial flexibility.",
}

func contractAnalysisUserPrompt(text string) string {
	return lines(
		"Analyze the contract below and answer with this structure:",
		"1) Risk score (0-100, higher is safer)",
		"2) Critical points",
		"3) Missing clauses",
		"4) Wording suggestions",
		"5) Check of LGPD, SLA, penalty, adjustment, term and jurisdiction.",
		"6) Recommended negotiation points to defend value and avoid open scope.",
		"Contract:",
		text,
	)
}

const contractDraftRole = "You are a legal and commercial writer of B2B contracts for AI and BI consulting."

var contractDraftFocus = []string{
	"Write an objective, professional draft in clear language for corporate signature.",
}

func contractDraftUserPrompt(data string) string {
	return lines(
		"Write a complete contract draft in Brazilian Portuguese (pt-BR), ready for legal review.",
		"Include sections: Parties, Object, Scope, Term, Price and billing, SLA, Governance, LGPD, Intellectual property, Confidentiality, Termination, Penalties, Adjustment, Jurisdiction.",
		"Use an executive and commercial tone, avoiding ambiguity.",
		"Input data to personalize the draft:",
		data,
	)
}
