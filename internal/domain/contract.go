package domain

import (
	"fmt"
	"time"
)

// Contract is a signed service agreement with a client.
type Contract struct {
	ID                    string
	ClientID              string
	Title                 string
	Type                  string
	Start                 *time.Time
	End                   *time.Time
	MonthlyValue          float64
	SLAHours              int
	TerminationPenaltyPct float64
	AdjustmentIndex       string
	LGPDClause            bool
	AutoRenew             bool
	Scope                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (c *Contract) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("contract title is required")
	}
	if c.MonthlyValue < 0 {
		return fmt.Errorf("contract monthly value must not be negative")
	}
	if c.SLAHours < 0 {
		return fmt.Errorf("contract SLA hours must not be negative")
	}
	if c.TerminationPenaltyPct < 0 || c.TerminationPenaltyPct > 100 {
		return fmt.Errorf("contract penalty %.0f%% out of range 0-100", c.TerminationPenaltyPct)
	}
	if c.Start != nil && c.End != nil && c.End.Before(*c.Start) {
		return fmt.Errorf("contract end date precedes start date")
	}
	return nil
}
