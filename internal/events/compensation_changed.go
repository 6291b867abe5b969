package events

import "time"

const CompensationChangedTopic = "hr.compensation.changed.v1"

type CompensationChangedEvent struct {
	EventType     string    `json:"event_type"`
	EmployeeID    string    `json:"employee_id"`
	CompanyID     string    `json:"company_id"`
	ChangeType    string    `json:"change_type"`
	EffectiveDate string    `json:"effective_date"`
	GrossSalary   float64   `json:"gross_salary"`
	OccurredAt    time.Time `json:"occurred_at"`
}
