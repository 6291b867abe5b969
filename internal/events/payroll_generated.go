package events

import "time"

const PayrollGeneratedTopic = "hr.payroll.generated.v1"

type PayrollGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Month      string    `json:"month"`
	Net        float64   `json:"net"`
	OccurredAt time.Time `json:"occurred_at"`
}
