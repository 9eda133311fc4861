package domain

import "math"

// KPIs are the aggregate business indicators kept alongside the CRM records.
type KPIs struct {
	MRR                 float64
	PreviousMRR         float64
	ActiveClients       int
	TotalClients        int
	ActiveProjects      int
	RetentionRate       float64
	AverageSatisfaction float64
	RevenueByService    map[string]float64
	MonthlyRevenue      []float64
	Months              []string
	Pipeline            []PipelineStage
}

type PipelineStage struct {
	Stage string
	Count int
	Value float64
}

// Snapshot is a read-only view of the CRM data handed to the insight engine,
// the composers and the intent matcher. Consumers never mutate it.
type Snapshot struct {
	KPIs      KPIs
	Clients   []Client
	Projects  []Project
	Tickets   []Ticket
	Contracts []Contract
	Operators []Operator
}

// ClientByID returns the client with the given ID.
func (s *Snapshot) ClientByID(id string) (Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// ClientName returns the client's name, or the ID when it is unknown.
func (s *Snapshot) ClientName(id string) string {
	if c, ok := s.ClientByID(id); ok {
		return c.Name
	}
	return id
}

// ActiveClients returns clients with status active, in source order.
func (s *Snapshot) ActiveClients() []Client {
	var out []Client
	for _, c := range s.Clients {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// ProjectsForClient returns the projects belonging to clientID.
func (s *Snapshot) ProjectsForClient(clientID string) []Project {
	var out []Project
	for _, p := range s.Projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// TicketsForClient returns the tickets raised by clientID.
func (s *Snapshot) TicketsForClient(clientID string) []Ticket {
	var out []Ticket
	for _, t := range s.Tickets {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out
}

// OpenTickets returns tickets with status open.
func (s *Snapshot) OpenTickets() []Ticket {
	var out []Ticket
	for _, t := range s.Tickets {
		if t.IsOpen() {
			out = append(out, t)
		}
	}
	return out
}

// AverageProgress returns the mean progress of all projects rounded to the
// nearest integer, or 0 when there are none.
func (s *Snapshot) AverageProgress() int {
	if len(s.Projects) == 0 {
		return 0
	}
	sum := 0
	for _, p := range s.Projects {
		sum += p.Progress
	}
	return int(math.Round(float64(sum) / float64(len(s.Projects))))
}
