package domain

import (
	"fmt"
	"strings"
)

type ClientStatus string

const (
	ClientActive    ClientStatus = "active"
	ClientLead      ClientStatus = "lead"
	ClientChurnRisk ClientStatus = "churn_risk"
	ClientInactive  ClientStatus = "inactive"
)

type ProjectStatus string

const (
	ProjectBacklog    ProjectStatus = "backlog"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectReview     ProjectStatus = "review"
	ProjectDone       ProjectStatus = "done"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders priorities, critical highest. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Severity grades an insight. Ordering is defined by Rank, never by the
// string value.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns 4 for critical down to 1 for low, and 0 for unknown values.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) IsValid() bool { return s.Rank() > 0 }

// RiskLevel is the contract risk grade derived from a score.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Rank returns 4 for critical down to 1 for low, and 0 for unknown values.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

// Role is the viewpoint a chat message is answered from.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleOperator Role = "operator"
	RoleClient   Role = "client"
)

// ParseRole maps a role name or its Portuguese alias to a Role. Unknown
// values resolve to RoleOperator.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner", "dono":
		return RoleOwner
	case "client", "cliente":
		return RoleClient
	default:
		return RoleOperator
	}
}

// Label returns a display name for the role.
func (r Role) Label() string {
	switch r {
	case RoleOwner:
		return "Owner / Manager"
	case RoleClient:
		return "Client"
	default:
		return "Operator"
	}
}

// Aliases accepted when decoding data files. The Portuguese spellings are
// the vocabulary used by older exports.
var (
	clientStatusAliases = map[string]ClientStatus{
		"active": ClientActive, "ativo": ClientActive,
		"lead":       ClientLead,
		"churn_risk": ClientChurnRisk, "risco_churn": ClientChurnRisk,
		"inactive": ClientInactive, "inativo": ClientInactive,
	}
	projectStatusAliases = map[string]ProjectStatus{
		"backlog":     ProjectBacklog,
		"in_progress": ProjectInProgress, "em_progresso": ProjectInProgress,
		"review": ProjectReview, "revisao": ProjectReview,
		"done": ProjectDone, "concluido": ProjectDone,
	}
	ticketStatusAliases = map[string]TicketStatus{
		"open": TicketOpen, "aberto": TicketOpen,
		"in_progress": TicketInProgress, "em_andamento": TicketInProgress,
		"resolved": TicketResolved, "resolvido": TicketResolved,
	}
	priorityAliases = map[string]Priority{
		"critical": PriorityCritical, "critica": PriorityCritical,
		"high": PriorityHigh, "alta": PriorityHigh,
		"medium": PriorityMedium, "media": PriorityMedium,
		"low": PriorityLow, "baixa": PriorityLow,
	}
	severityAliases = map[string]Severity{
		"critical": SeverityCritical, "critica": SeverityCritical,
		"high": SeverityHigh, "alta": SeverityHigh,
		"medium": SeverityMedium, "media": SeverityMedium,
		"low": SeverityLow, "baixa": SeverityLow,
	}
)

func parseEnum[T ~string](kind, raw string, aliases map[string]T) (T, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q", kind, raw)
}

func ParseClientStatus(s string) (ClientStatus, error) {
	return parseEnum("client status", s, clientStatusAliases)
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	return parseEnum("project status", s, projectStatusAliases)
}

func ParseTicketStatus(s string) (TicketStatus, error) {
	return parseEnum("ticket status", s, ticketStatusAliases)
}

func ParsePriority(s string) (Priority, error) {
	return parseEnum("priority", s, priorityAliases)
}

func ParseSeverity(s string) (Severity, error) {
	return parseEnum("severity", s, severityAliases)
}
