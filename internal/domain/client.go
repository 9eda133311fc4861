package domain

import (
	"fmt"
	"time"
)

type Client struct {
	ID           string
	Name         string
	Segment      string
	Contact      string
	Email        string
	Phone        string
	City         string
	Status       ClientStatus
	MRR          float64
	Satisfaction *float64 // 0-5, nil when the client was never surveyed
	Services     []string
	Since        *time.Time
	History      []Interaction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Interaction is one entry of a client's contact history.
type Interaction struct {
	ID          string
	ClientID    string
	Date        time.Time
	Kind        string
	Description string
}

// IsActive reports whether the client currently pays for services.
func (c *Client) IsActive() bool {
	return c.Status == ClientActive
}

// SatisfactionAtMost reports whether a satisfaction score is present and not
// above limit.
func (c *Client) SatisfactionAtMost(limit float64) bool {
	return c.Satisfaction != nil && *c.Satisfaction <= limit
}

// SatisfactionAtLeast reports whether a satisfaction score is present and at
// least limit.
func (c *Client) SatisfactionAtLeast(limit float64) bool {
	return c.Satisfaction != nil && *c.Satisfaction >= limit
}

// Validate checks the invariants a stored client must satisfy.
func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("client name is required")
	}
	if _, err := ParseClientStatus(string(c.Status)); err != nil {
		return err
	}
	if c.MRR < 0 {
		return fmt.Errorf("client MRR must not be negative")
	}
	if c.Satisfaction != nil && (*c.Satisfaction < 0 || *c.Satisfaction > 5) {
		return fmt.Errorf("client satisfaction %.1f out of range 0-5", *c.Satisfaction)
	}
	return nil
}
