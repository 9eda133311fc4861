package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suggestionPayload struct {
	Suggestions []struct {
		Title    string `json:"title"`
		Severity string `json:"severity"`
	} `json:"suggestions"`
	Confidence float64 `json:"confidence"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"suggestions":[{"title":"Retention round","severity":"high"}],"confidence":0.95}`
	result, err := ExtractJSON[suggestionPayload](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Retention round", result.Suggestions[0].Title)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestExtractJSON_FencedWithProse(t *testing.T) {
	raw := "Here are my suggestions:\n```json\n{\"suggestions\":[{\"title\":\"Upsell\",\"severity\":\"medium\"}]}\n```\nHope that helps!"
	result, err := ExtractJSON[suggestionPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Upsell", result.Suggestions[0].Title)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"suggestions":[{"title":"Fix {filters} \"now\"","severity":"low"}]} trailing }`
	result, err := ExtractJSON[suggestionPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `Fix {filters} "now"`, result.Suggestions[0].Title)
}

func TestExtractJSON_CommentsAndLeadingDecimals(t *testing.T) {
	raw := `{
  // model commentary
  "suggestions": [], /* none today */
  "confidence": .8
}`
	result, err := ExtractJSON[suggestionPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestExtractJSON_CommentMarkersInsideStringsKept(t *testing.T) {
	raw := `{"suggestions":[{"title":"see https://nexus.example/a.5","severity":"low"}]}`
	result, err := ExtractJSON[suggestionPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "see https://nexus.example/a.5", result.Suggestions[0].Title)
}

func TestExtractJSON_NegativeLeadingDecimal(t *testing.T) {
	result, err := ExtractJSON[suggestionPayload](`{"confidence": -.3}`, nil)
	require.NoError(t, err)
	assert.Equal(t, -0.3, result.Confidence)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[suggestionPayload]("I can't help with that.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[suggestionPayload](`{"suggestions": [broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Validator(t *testing.T) {
	validator := func(p suggestionPayload) error {
		if len(p.Suggestions) == 0 {
			return errors.New("no suggestions")
		}
		return nil
	}

	_, err := ExtractJSON(`{"suggestions":[]}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")

	got, err := ExtractJSON(`{"suggestions":[{"title":"ok","severity":"low"}]}`, validator)
	require.NoError(t, err)
	assert.Len(t, got.Suggestions, 1)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "MINUTA CONTRATUAL\n1. PARTES", CleanText("```text\nMINUTA CONTRATUAL\n1. PARTES\n```\n"))
	assert.Equal(t, "plain", CleanText("  plain \n"))
}
