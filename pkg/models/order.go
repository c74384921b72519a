package models

import (
	"fmt"
	"strings"
	"time"
)

// ServiceOrder is one row of the exported SSA report, resolved from the
// positional column layout into named fields at the loading boundary.
// Week codes are kept as raw strings; parsing them is the analyzer's job
// because malformed codes must degrade to "no result", not errors.
type ServiceOrder struct {
	Number                string    `json:"number"`
	Situation             string    `json:"situation"`
	DerivedFrom           string    `json:"derived_from,omitempty"`
	Location              string    `json:"location"`
	LocationDesc          string    `json:"location_desc"`
	Equipment             string    `json:"equipment"`
	RegistrationWeek      string    `json:"registration_week"`
	IssuedAt              time.Time `json:"issued_at"`
	Description           string    `json:"description"`
	IssuerSector          string    `json:"issuer_sector"`
	ExecutorSector        string    `json:"executor_sector"`
	Requester             string    `json:"requester"`
	OriginService         string    `json:"origin_service"`
	IssuePriority         string    `json:"issue_priority"`
	PlanningPriority      string    `json:"planning_priority,omitempty"`
	SimpleExecution       string    `json:"simple_execution"`
	SchedulingResponsible string    `json:"scheduling_responsible,omitempty"`
	PlannedWeek           string    `json:"planned_week,omitempty"`
	ExecutionResponsible  string    `json:"execution_responsible,omitempty"`
	ExecutionDesc         string    `json:"execution_desc,omitempty"`
	OriginSystem          string    `json:"origin_system"`
	Anomaly               string    `json:"anomaly,omitempty"`
}

// IsCritical reports whether the order carries the configured critical
// issue-priority label (case-insensitive).
func (o ServiceOrder) IsCritical(criticalLabel string) bool {
	return strings.EqualFold(o.IssuePriority, criticalLabel)
}

// IsScheduled reports whether a planned week has been assigned.
func (o ServiceOrder) IsScheduled() bool {
	return strings.TrimSpace(o.PlannedWeek) != ""
}

// HasResponsible reports whether anyone owns the order in scheduling or
// execution.
func (o ServiceOrder) HasResponsible() bool {
	return o.SchedulingResponsible != "" || o.ExecutionResponsible != ""
}

// AgeInDays returns the whole days elapsed since the order was issued.
// The second return is false when the issue timestamp is missing.
func (o ServiceOrder) AgeInDays(now time.Time) (int, bool) {
	if o.IssuedAt.IsZero() {
		return 0, false
	}
	return int(now.Sub(o.IssuedAt).Hours() / 24), true
}

func (o ServiceOrder) String() string {
	return fmt.Sprintf("SSA %s (%s) - %s", o.Number, o.Situation, o.IssuePriority)
}
