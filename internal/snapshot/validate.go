package snapshot

import (
	"fmt"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateFile checks a parsed snapshot before conversion and returns every
// problem found.
func ValidateFile(f *File) []error {
	var errs []error

	clientIDs := make(map[string]bool)
	errs = append(errs, validateClients(f.Clients, clientIDs)...)
	errs = append(errs, validateProjects(f.Projects, clientIDs)...)
	errs = append(errs, validateTickets(f.Tickets, clientIDs)...)
	errs = append(errs, validateContracts(f.Contracts, clientIDs)...)
	errs = append(errs, validateOperators(f.Operators)...)
	errs = append(errs, validateKPIs(&f.KPIs)...)

	return errs
}

// checkID records id in seen and reports a missing or duplicate value.
func checkID(prefix, id string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%s.id is required", prefix)
	}
	if seen[id] {
		return fmt.Errorf("%s.id: duplicate id %q", prefix, id)
	}
	seen[id] = true
	return nil
}

func validateClients(clients []ClientRecord, ids map[string]bool) []error {
	var errs []error

	for i, c := range clients {
		prefix := fmt.Sprintf("clients[%d]", i)

		if err := checkID(prefix, c.ID, ids); err != nil {
			errs = append(errs, err)
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if _, err := domain.ParseClientStatus(c.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
		if c.MRR < 0 {
			errs = append(errs, fmt.Errorf("%s.mrr must not be negative", prefix))
		}
		if c.Satisfaction != nil && (*c.Satisfaction < 0 || *c.Satisfaction > 5) {
			errs = append(errs, fmt.Errorf("%s.satisfaction %.1f out of range 0-5", prefix, *c.Satisfaction))
		}
		errs = append(errs, validateOptionalDate(prefix+".since", c.Since)...)
		for j, h := range c.History {
			errs = append(errs, validateDate(fmt.Sprintf("%s.history[%d].date", prefix, j), h.Date)...)
		}
	}

	return errs
}

func validateProjects(projects []ProjectRecord, clientIDs map[string]bool) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if err := checkID(prefix, p.ID, ids); err != nil {
			errs = append(errs, err)
		}
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateClientRef(prefix, p.ClientID, clientIDs, true)...)
		if _, err := domain.ParseProjectStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
		if p.Priority != "" {
			if _, err := domain.ParsePriority(p.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
			}
		}
		if p.Progress < 0 || p.Progress > 100 {
			errs = append(errs, fmt.Errorf("%s.progress %d out of range 0-100", prefix, p.Progress))
		}
		errs = append(errs, validateOptionalDate(prefix+".deadline", p.Deadline)...)
		for j, t := range p.Tasks {
			if t.Title == "" {
				errs = append(errs, fmt.Errorf("%s.tasks[%d].title is required", prefix, j))
			}
		}
	}

	return errs
}

func validateTickets(tickets []TicketRecord, clientIDs map[string]bool) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, t := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)

		if err := checkID(prefix, t.ID, ids); err != nil {
			errs = append(errs, err)
		}
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateClientRef(prefix, t.ClientID, clientIDs, true)...)
		if t.Status != "" {
			if _, err := domain.ParseTicketStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
			}
		}
		if t.Priority != "" {
			if _, err := domain.ParsePriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
			}
		}
		errs = append(errs, validateDate(prefix+".created", t.Created)...)
	}

	return errs
}

func validateContracts(contracts []ContractRecord, clientIDs map[string]bool) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, c := range contracts {
		prefix := fmt.Sprintf("contracts[%d]", i)

		if err := checkID(prefix, c.ID, ids); err != nil {
			errs = append(errs, err)
		}
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateClientRef(prefix, c.ClientID, clientIDs, false)...)
		if c.MonthlyValue < 0 {
			errs = append(errs, fmt.Errorf("%s.monthly_value must not be negative", prefix))
		}
		if c.SLAHours < 0 {
			errs = append(errs, fmt.Errorf("%s.sla_hours must not be negative", prefix))
		}
		if c.TerminationPenaltyPct < 0 || c.TerminationPenaltyPct > 100 {
			errs = append(errs, fmt.Errorf("%s.termination_penalty_pct out of range 0-100", prefix))
		}

		startErrs := validateOptionalDate(prefix+".start", c.Start)
		endErrs := validateOptionalDate(prefix+".end", c.End)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) == 0 && len(endErrs) == 0 {
			start, end := parseOptionalDate(c.Start), parseOptionalDate(c.End)
			if start != nil && end != nil && end.Before(*start) {
				errs = append(errs, fmt.Errorf("%s.end %q must not precede start %q", prefix, *c.End, *c.Start))
			}
		}
	}

	return errs
}

func validateOperators(ops []OperatorRecord) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, o := range ops {
		prefix := fmt.Sprintf("operators[%d]", i)
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if o.ID != "" {
			if err := checkID(prefix, o.ID, ids); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

func validateKPIs(k *KPIsRecord) []error {
	var errs []error

	if len(k.Months) > 0 && len(k.MonthlyRevenue) > 0 && len(k.Months) != len(k.MonthlyRevenue) {
		errs = append(errs, fmt.Errorf("kpis: %d months for %d monthly_revenue values", len(k.Months), len(k.MonthlyRevenue)))
	}
	if k.RetentionRate < 0 || k.RetentionRate > 100 {
		errs = append(errs, fmt.Errorf("kpis.retention_rate %.1f out of range 0-100", k.RetentionRate))
	}

	return errs
}

func validateClientRef(prefix, clientID string, clientIDs map[string]bool, required bool) []error {
	if clientID == "" {
		if required {
			return []error{fmt.Errorf("%s.client_id is required", prefix)}
		}
		return nil
	}
	if !clientIDs[clientID] {
		return []error{fmt.Errorf("%s.client_id: client %q not found in clients", prefix, clientID)}
	}
	return nil
}

func validateDate(field, s string) []error {
	if s == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	return validateOptionalDate(field, &s)
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
