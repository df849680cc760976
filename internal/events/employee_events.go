package events

import "time"

const (
	EmployeeCreatedTopic = "employee.created"
	EmployeeUpdatedTopic = "employee.updated"

	EmployeeCreatedType = "employee_created"
	EmployeeUpdatedType = "employee_updated"
)

// EmployeeEvent notifies interested consumers that a canonical record was
// created or updated. It is observational: nothing in the TrackTik sync path
// waits on it.
type EmployeeEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Provider   string    `json:"provider"`
	ExternalID string    `json:"external_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
