package budget

import "github.com/shopspring/decimal"

// Posting is one (client, service type) group charged during a run.
type Posting struct {
	ClientID    string          `json:"client_id"`
	ServiceType string          `json:"service_type"`
	Hours       decimal.Decimal `json:"hours"`
	Used        decimal.Decimal `json:"used"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// SkippedGroup is a group with no matching budget ledger row.
type SkippedGroup struct {
	ClientID    string          `json:"client_id"`
	ServiceType string          `json:"service_type"`
	Hours       decimal.Decimal `json:"hours"`
}

type PostResult struct {
	TimesheetID string         `json:"timesheet_id"`
	Postings    []Posting      `json:"postings"`
	Skipped     []SkippedGroup `json:"skipped"`
}
