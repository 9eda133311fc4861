package app

import (
	"errors"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/insight"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/report"
)

// SuggestionsRequest asks for the prioritized insight list. AI routes the
// request through the language model when one is configured.
type SuggestionsRequest struct {
	AI bool
}

type ReportRequest struct {
	Period string
	AI     bool
}

// ReportResponse is the executive report plus the structured numbers it was
// built from. Summary and Insights always come from the deterministic
// composer, whatever produced Text.
type ReportResponse struct {
	Period   string              `json:"period"`
	Text     string              `json:"text"`
	Source   intelligence.Source `json:"source"`
	Model    string              `json:"model,omitempty"`
	Summary  report.Summary      `json:"summary"`
	Insights []insight.Insight   `json:"insights"`
}

type ContractAnalysisRequest struct {
	Text       string
	ContractID string
	AI         bool
}

type ContractDraftRequest struct {
	Input report.DraftInput
	AI    bool
}

type ChatRequest struct {
	Message  string
	Role     domain.Role
	ClientID string
}

type InteractionRequest struct {
	ClientID    string
	Kind        string
	Description string
}

type ErrorCode string

const (
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrReadOnly     ErrorCode = "READ_ONLY"
	ErrAIDisabled   ErrorCode = "AI_DISABLED"
	ErrInternal     ErrorCode = "INTERNAL"
)

// Error is a use-case failure with a stable code for API and CLI callers.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error wrapping cause.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
