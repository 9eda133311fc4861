package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalFile() *File {
	return &File{
		Clients: []ClientRecord{
			{ID: "c1", Name: "TechCorp Solutions", Status: "active", MRR: 8500},
		},
		Projects: []ProjectRecord{
			{ID: "p1", ClientID: "c1", Title: "Dashboard", Status: "in_progress", Progress: 40},
		},
		Tickets: []TicketRecord{
			{ID: "tk1", ClientID: "c1", Title: "Slow filters", Created: "2026-02-18"},
		},
	}
}

func TestValidateFile_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateFile(validMinimalFile()))
}

func TestValidateFile_AcceptsPortugueseVocabulary(t *testing.T) {
	f := validMinimalFile()
	f.Clients[0].Status = "risco_churn"
	f.Projects[0].Status = "revisao"
	f.Projects[0].Priority = "critica"
	f.Tickets[0].Status = "em_andamento"
	f.Tickets[0].Priority = "baixa"

	assert.Empty(t, ValidateFile(f))
}

func TestValidateFile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
		want   string
	}{
		{"client id missing", func(f *File) { f.Clients[0].ID = "" }, "clients[0].id is required"},
		{"duplicate client", func(f *File) {
			f.Clients = append(f.Clients, ClientRecord{ID: "c1", Name: "Twin", Status: "lead"})
		}, `clients[1].id: duplicate id "c1"`},
		{"client name missing", func(f *File) { f.Clients[0].Name = "" }, "clients[0].name is required"},
		{"client status unknown", func(f *File) { f.Clients[0].Status = "paused" }, "clients[0].status"},
		{"negative mrr", func(f *File) { f.Clients[0].MRR = -1 }, "clients[0].mrr must not be negative"},
		{"satisfaction out of range", func(f *File) { f.Clients[0].Satisfaction = ptrFloat(7) }, "out of range 0-5"},
		{"bad since", func(f *File) { f.Clients[0].Since = ptrStr("15/03/2024") }, "clients[0].since: invalid date format"},
		{"history without date", func(f *File) {
			f.Clients[0].History = []InteractionRecord{{Kind: "call"}}
		}, "clients[0].history[0].date is required"},
		{"project unknown client", func(f *File) { f.Projects[0].ClientID = "c9" }, `projects[0].client_id: client "c9" not found`},
		{"project progress", func(f *File) { f.Projects[0].Progress = 120 }, "projects[0].progress 120 out of range"},
		{"project priority", func(f *File) { f.Projects[0].Priority = "urgent" }, "projects[0].priority"},
		{"project deadline", func(f *File) { f.Projects[0].Deadline = ptrStr("soon") }, "projects[0].deadline: invalid date format"},
		{"task title", func(f *File) { f.Projects[0].Tasks = []TaskRecord{{Done: true}} }, "projects[0].tasks[0].title is required"},
		{"ticket client missing", func(f *File) { f.Tickets[0].ClientID = "" }, "tickets[0].client_id is required"},
		{"ticket created missing", func(f *File) { f.Tickets[0].Created = "" }, "tickets[0].created is required"},
		{"ticket status", func(f *File) { f.Tickets[0].Status = "closed" }, "tickets[0].status"},
		{"contract end before start", func(f *File) {
			f.Contracts = []ContractRecord{{ID: "ct1", Title: "Retainer", Start: ptrStr("2026-05-01"), End: ptrStr("2026-01-01")}}
		}, "contracts[0].end"},
		{"contract penalty", func(f *File) {
			f.Contracts = []ContractRecord{{ID: "ct1", Title: "Retainer", TerminationPenaltyPct: 150}}
		}, "contracts[0].termination_penalty_pct out of range"},
		{"contract unknown client", func(f *File) {
			f.Contracts = []ContractRecord{{ID: "ct1", ClientID: "c9", Title: "Retainer"}}
		}, `contracts[0].client_id: client "c9" not found`},
		{"operator name", func(f *File) { f.Operators = []OperatorRecord{{Initials: "AS"}} }, "operators[0].name is required"},
		{"kpi series mismatch", func(f *File) {
			f.KPIs.Months = []string{"Jan", "Feb"}
			f.KPIs.MonthlyRevenue = []float64{100}
		}, "2 months for 1 monthly_revenue values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validMinimalFile()
			tt.mutate(f)
			errs := ValidateFile(f)
			assert.True(t, containsError(errs, tt.want), "expected error containing %q, got %v", tt.want, errs)
		})
	}
}

func TestValidateFile_ClientlessContractIsValid(t *testing.T) {
	f := validMinimalFile()
	f.Contracts = []ContractRecord{{ID: "ct1", Title: "Prospect draft"}}
	assert.Empty(t, ValidateFile(f))
}

func TestValidateFile_CollectsAllErrors(t *testing.T) {
	f := &File{
		Clients:  []ClientRecord{{}},
		Projects: []ProjectRecord{{}},
	}
	errs := ValidateFile(f)
	assert.GreaterOrEqual(t, len(errs), 6)
}

func containsError(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}
