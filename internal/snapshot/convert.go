package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/nexus-crm/internal/domain"
)

// Convert turns a validated File into a domain.Snapshot. Call ValidateFile
// first; Convert only fails on values validation would have rejected.
func Convert(f *File) (domain.Snapshot, error) {
	now := time.Now().UTC().Truncate(time.Second)
	snap := domain.Snapshot{KPIs: convertKPIs(&f.KPIs)}

	for _, c := range f.Clients {
		status, err := domain.ParseClientStatus(c.Status)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("client %q: %w", c.ID, err)
		}
		client := domain.Client{
			ID:           c.ID,
			Name:         c.Name,
			Segment:      c.Segment,
			Contact:      c.Contact,
			Email:        c.Email,
			Phone:        c.Phone,
			City:         c.City,
			Status:       status,
			MRR:          c.MRR,
			Satisfaction: c.Satisfaction,
			Services:     c.Services,
			Since:        parseOptionalDate(c.Since),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, h := range c.History {
			client.History = append(client.History, domain.Interaction{
				ID:          uuid.New().String(),
				ClientID:    c.ID,
				Date:        parseDate(h.Date),
				Kind:        h.Kind,
				Description: h.Description,
			})
		}
		snap.Clients = append(snap.Clients, client)
	}

	for _, p := range f.Projects {
		status, err := domain.ParseProjectStatus(p.Status)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("project %q: %w", p.ID, err)
		}
		priority, err := domain.ParsePriority(domain.CoalesceStr(p.Priority, string(domain.PriorityMedium)))
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("project %q: %w", p.ID, err)
		}
		project := domain.Project{
			ID:          p.ID,
			ClientID:    p.ClientID,
			Title:       p.Title,
			Status:      status,
			Priority:    priority,
			Type:        p.Type,
			Owner:       p.Owner,
			Description: p.Description,
			Progress:    p.Progress,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if d := parseOptionalDate(p.Deadline); d != nil {
			project.Deadline = *d
		}
		for _, t := range p.Tasks {
			project.Tasks = append(project.Tasks, domain.Task{
				ID:    domain.CoalesceStr(t.ID, uuid.New().String()),
				Title: t.Title,
				Done:  t.Done,
			})
		}
		snap.Projects = append(snap.Projects, project)
	}

	for _, t := range f.Tickets {
		status, err := domain.ParseTicketStatus(domain.CoalesceStr(t.Status, string(domain.TicketOpen)))
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("ticket %q: %w", t.ID, err)
		}
		priority, err := domain.ParsePriority(domain.CoalesceStr(t.Priority, string(domain.PriorityMedium)))
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("ticket %q: %w", t.ID, err)
		}
		snap.Tickets = append(snap.Tickets, domain.Ticket{
			ID:          t.ID,
			ClientID:    t.ClientID,
			Title:       t.Title,
			Status:      status,
			Priority:    priority,
			Type:        t.Type,
			Assignee:    t.Assignee,
			Description: t.Description,
			Created:     parseDate(t.Created),
			UpdatedAt:   now,
		})
	}

	for _, c := range f.Contracts {
		snap.Contracts = append(snap.Contracts, domain.Contract{
			ID:                    c.ID,
			ClientID:              c.ClientID,
			Title:                 c.Title,
			Type:                  c.Type,
			Start:                 parseOptionalDate(c.Start),
			End:                   parseOptionalDate(c.End),
			MonthlyValue:          c.MonthlyValue,
			SLAHours:              c.SLAHours,
			TerminationPenaltyPct: c.TerminationPenaltyPct,
			AdjustmentIndex:       c.AdjustmentIndex,
			LGPDClause:            c.LGPDClause,
			AutoRenew:             c.AutoRenew,
			Scope:                 c.Scope,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}

	for _, o := range f.Operators {
		snap.Operators = append(snap.Operators, domain.Operator{
			ID:       domain.CoalesceStr(o.ID, uuid.New().String()),
			Name:     o.Name,
			Initials: o.Initials,
			Title:    o.Title,
		})
	}

	return snap, nil
}

func convertKPIs(k *KPIsRecord) domain.KPIs {
	out := domain.KPIs{
		MRR:                 k.MRR,
		PreviousMRR:         k.PreviousMRR,
		ActiveClients:       k.ActiveClients,
		TotalClients:        k.TotalClients,
		ActiveProjects:      k.ActiveProjects,
		RetentionRate:       k.RetentionRate,
		AverageSatisfaction: k.AverageSatisfaction,
		RevenueByService:    k.RevenueByService,
		MonthlyRevenue:      k.MonthlyRevenue,
		Months:              k.Months,
	}
	for _, p := range k.Pipeline {
		out.Pipeline = append(out.Pipeline, domain.PipelineStage{Stage: p.Stage, Count: p.Count, Value: p.Value})
	}
	return out
}

// LoadFile reads, validates and converts a snapshot file. Validation
// problems are joined into one error.
func LoadFile(path string) (domain.Snapshot, error) {
	f, err := LoadSchema(path)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return Decode(f)
}

// Decode validates and converts an already parsed File.
func Decode(f *File) (domain.Snapshot, error) {
	if errs := ValidateFile(f); len(errs) > 0 {
		return domain.Snapshot{}, fmt.Errorf("invalid snapshot: %w", errors.Join(errs...))
	}
	return Convert(f)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
