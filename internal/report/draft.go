package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
)

const (
	ContractorName         = "NEXUS AI CONSULTORIA"
	DefaultClientName      = "CLIENTE"
	DefaultContractType    = "Prestacao de Servicos"
	DefaultDurationMonths  = 12
	DefaultSLAHours        = 8
	DefaultPenaltyPct      = 20.0
	DefaultAdjustmentIndex = "IPCA anual"
	DefaultScope           = "Servicos de consultoria em dados, BI, analytics e automacao."
)

var ErrInvalidStartDate = errors.New("invalid contract start date")

// DraftInput holds the fields of a contract draft. Nil pointers and empty
// strings take the package defaults; explicit zeros are kept.
type DraftInput struct {
	ClientName      string   `json:"clientName"`
	Type            string   `json:"type"`
	MonthlyValue    *float64 `json:"monthlyValue,omitempty"`
	Start           string   `json:"start"` // YYYY-MM-DD
	DurationMonths  *int     `json:"durationMonths,omitempty"`
	SLAHours        *int     `json:"slaHours,omitempty"`
	PenaltyPct      *float64 `json:"penaltyPct,omitempty"`
	AdjustmentIndex string   `json:"adjustmentIndex"`
	Scope           string   `json:"scope"`
}

// Draft is a DraftInput with every default resolved.
type Draft struct {
	ClientName      string
	Type            string
	MonthlyValue    float64
	Start           time.Time
	End             time.Time
	DurationMonths  int
	SLAHours        int
	PenaltyPct      float64
	AdjustmentIndex string
	Scope           string
}

// Resolve applies defaults and computes the end date. now supplies the
// default start date.
func (in DraftInput) Resolve(now time.Time) (Draft, error) {
	d := Draft{
		ClientName:      domain.CoalesceStr(strings.TrimSpace(in.ClientName), DefaultClientName),
		Type:            domain.CoalesceStr(strings.TrimSpace(in.Type), DefaultContractType),
		MonthlyValue:    domain.Float64FromPtrWithDefault(0, in.MonthlyValue),
		DurationMonths:  domain.IntFromPtrWithDefault(DefaultDurationMonths, in.DurationMonths),
		SLAHours:        domain.IntFromPtrWithDefault(DefaultSLAHours, in.SLAHours),
		PenaltyPct:      domain.Float64FromPtrWithDefault(DefaultPenaltyPct, in.PenaltyPct),
		AdjustmentIndex: domain.CoalesceStr(strings.TrimSpace(in.AdjustmentIndex), DefaultAdjustmentIndex),
		Scope:           domain.CoalesceStr(strings.TrimSpace(in.Scope), DefaultScope),
	}

	start := strings.TrimSpace(in.Start)
	if start == "" {
		y, m, day := now.Date()
		d.Start = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, in.Start)
		}
		d.Start = t
	}
	d.End = d.Start.AddDate(0, d.DurationMonths, 0)
	return d, nil
}

const dateLayout = "2006-01-02"

// GenerateContractDraft fills the eight-section contract template. The only
// failure is an unparseable start date.
func GenerateContractDraft(in DraftInput, now time.Time) (string, error) {
	d, err := in.Resolve(now)
	if err != nil {
		return "", err
	}
	return d.Text(), nil
}

// Text renders the resolved draft.
func (d Draft) Text() string {
	lines := []string{
		"MINUTA CONTRATUAL - " + strings.ToUpper(d.Type),
		"",
		"1. PARTES",
		"Contratada: " + ContractorName + ".",
		"Contratante: " + d.ClientName + ".",
		"",
		"2. OBJETO",
		"A contratada prestara os seguintes servicos: " + d.Scope,
		"",
		"3. VIGENCIA",
		fmt.Sprintf("Inicio em %s com termino previsto em %s (%d meses).",
			d.Start.Format(dateLayout), d.End.Format(dateLayout), d.DurationMonths),
		"",
		"4. REMUNERACAO",
		fmt.Sprintf("Valor mensal de %s, com reajuste %s.", FormatBRL(d.MonthlyValue), d.AdjustmentIndex),
		"",
		"5. NIVEIS DE SERVICO (SLA)",
		fmt.Sprintf("Tempo de primeira resposta: ate %d horas uteis.", d.SLAHours),
		"",
		"6. RESCISAO E MULTA",
		"Em caso de rescisao antecipada sem justa causa: multa de " +
			strconv.FormatFloat(d.PenaltyPct, 'f', -1, 64) + "% sobre o saldo contratual.",
		"",
		"7. PROTECAO DE DADOS",
		"As partes comprometem-se com a conformidade da LGPD e com o tratamento seguro dos dados.",
		"",
		"8. DISPOSICOES FINAIS",
		"Foro eleito: comarca da sede da contratada, salvo disposicao especifica acordada entre as partes.",
		"",
		"Documento gerado por IA para apoio operacional. Revisao juridica obrigatoria antes da assinatura.",
	}
	return strings.Join(lines, "\n")
}
