package events

import "time"

const EmployeeCreatedTopic = "hr.employee.created.v1"

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	OccurredAt     time.Time `json:"occurred_at"`
}
