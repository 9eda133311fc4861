package domain

import (
	"fmt"
	"time"
)

type Ticket struct {
	ID          string
	ClientID    string
	Title       string
	Status      TicketStatus
	Priority    Priority
	Type        string
	Assignee    string
	Description string
	Created     time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the ticket still awaits its first response.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketOpen
}

// IsUnresolved reports whether the ticket is open or being worked on.
func (t *Ticket) IsUnresolved() bool {
	return t.Status != TicketResolved
}

// IsUrgent reports whether the ticket priority is critical or high.
func (t *Ticket) IsUrgent() bool {
	return t.Priority == PriorityCritical || t.Priority == PriorityHigh
}

func (t *Ticket) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("ticket title is required")
	}
	if _, err := ParseTicketStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	return nil
}

// Operator is a member of the delivery team.
type Operator struct {
	ID       string
	Name     string
	Initials string
	Title    string
}
