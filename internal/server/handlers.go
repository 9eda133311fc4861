package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/intelligence"
	"github.com/nexusai/nexus-crm/internal/report"
)

type healthResponse struct {
	OK           bool      `json:"ok"`
	ServerTime   time.Time `json:"serverTime"`
	AIConfigured bool      `json:"aiConfigured"`
	Model        string    `json:"model"`
}

type publicConfigResponse struct {
	AIConfigured bool   `json:"aiConfigured"`
	Model        string `json:"model"`
	ReadOnly     bool   `json:"readOnly"`
}

type reportBody struct {
	Period string `json:"period"`
	// Periodo is the field name older dashboards send.
	Periodo string `json:"periodo"`
	AI      bool   `json:"ai"`
}

type contractAnalysisBody struct {
	Text       string `json:"text"`
	ContractID string `json:"contractId"`
	AI         bool   `json:"ai"`
}

// contractDraftBody accepts the draft fields at the top level or wrapped
// in "payload".
type contractDraftBody struct {
	report.DraftInput
	Payload *report.DraftInput `json:"payload"`
	AI      bool               `json:"ai"`
}

type chatBody struct {
	Message  string `json:"message"`
	Role     string `json:"role"`
	ClientID string `json:"clientId"`
}

type greetingResponse struct {
	Role     domain.Role `json:"role"`
	Greeting string      `json:"greeting"`
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	st, err := a.svc.Status(r.Context())
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		OK:           true,
		ServerTime:   st.ServerTime,
		AIConfigured: st.AIConfigured,
		Model:        st.Model,
	})
}

func (a *api) publicConfig(w http.ResponseWriter, r *http.Request) {
	st, err := a.svc.Status(r.Context())
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicConfigResponse{
		AIConfigured: st.AIConfigured,
		Model:        st.Model,
		ReadOnly:     st.ReadOnly,
	})
}

func (a *api) insights(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.Suggestions(r.Context(), app.SuggestionsRequest{})
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) aiSuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.Suggestions(r.Context(), app.SuggestionsRequest{AI: true})
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// report serves both /api/report and /api/ai/report; forceAI is set on the
// latter.
func (a *api) report(forceAI bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reportBody
		if err := decodeJSON(w, r, &body); err != nil {
			a.handleError(w, r, err)
			return
		}
		out, err := a.svc.ExecutiveReport(r.Context(), app.ReportRequest{
			Period: domain.CoalesceStr(strings.TrimSpace(body.Period), strings.TrimSpace(body.Periodo)),
			AI:     forceAI || body.AI,
		})
		if err != nil {
			a.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (a *api) analyzeContract(forceAI bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contractAnalysisBody
		if err := decodeJSON(w, r, &body); err != nil {
			a.handleError(w, r, err)
			return
		}
		req := app.ContractAnalysisRequest{
			Text:       body.Text,
			ContractID: strings.TrimSpace(body.ContractID),
			AI:         forceAI || body.AI,
		}

		var (
			out *intelligence.ContractAnalysis
			err error
		)
		if req.ContractID != "" && strings.TrimSpace(req.Text) == "" {
			out, err = a.svc.AnalyzeContractByID(r.Context(), req)
		} else {
			out, err = a.svc.AnalyzeContractText(r.Context(), req)
		}
		if err != nil {
			a.handleError(w, r, err)
			return
		}
		a.metrics.ObserveContractScore(out.Result.Score)
		writeJSON(w, http.StatusOK, out)
	}
}

func (a *api) draftContract(forceAI bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contractDraftBody
		if err := decodeJSON(w, r, &body); err != nil {
			a.handleError(w, r, err)
			return
		}
		input := body.DraftInput
		if body.Payload != nil {
			input = *body.Payload
		}
		out, err := a.svc.DraftContract(r.Context(), app.ContractDraftRequest{
			Input: input,
			AI:    forceAI || body.AI,
		})
		if err != nil {
			a.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (a *api) chat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := decodeJSON(w, r, &body); err != nil {
		a.handleError(w, r, err)
		return
	}
	reply, err := a.svc.Ask(r.Context(), app.ChatRequest{
		Message:  body.Message,
		Role:     domain.ParseRole(body.Role),
		ClientID: strings.TrimSpace(body.ClientID),
	})
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	a.metrics.RecordChat(string(reply.Role), reply.Intent)
	writeJSON(w, http.StatusOK, reply)
}

func (a *api) greeting(w http.ResponseWriter, r *http.Request) {
	role := domain.ParseRole(r.URL.Query().Get("role"))
	writeJSON(w, http.StatusOK, greetingResponse{
		Role:     role,
		Greeting: a.svc.Greet(r.Context(), role),
	})
}
