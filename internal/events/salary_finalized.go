package events

import "time"

const SalaryRecordFinalizedTopic = "payroll.salary.finalized.v1"

type SalaryRecordFinalizedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RecordID   string    `json:"record_id"`
	StaffID    string    `json:"staff_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  float64   `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
