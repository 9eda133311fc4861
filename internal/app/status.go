package app

import "time"

// StatusResponse backs the health and public-config endpoints and the CLI
// status command.
type StatusResponse struct {
	ServerTime    time.Time `json:"serverTime"`
	AIConfigured  bool      `json:"aiConfigured"`
	Model         string    `json:"model"`
	ReadOnly      bool      `json:"readOnly"`
	Clients       int       `json:"clients"`
	ActiveClients int       `json:"activeClients"`
	OpenTickets   int       `json:"openTickets"`
	Contracts     int       `json:"contracts"`
	MRR           float64   `json:"mrr"`
}
