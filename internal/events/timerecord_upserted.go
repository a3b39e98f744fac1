package events

import "time"

const TimeRecordTopic = "sige.timerecord.v1"

const (
	TimeRecordUpserted = "timerecord.upserted"
	TimeRecordDeleted  = "timerecord.deleted"
)

// TimeRecordEvent é publicado via outbox a cada escrita de registro de ponto;
// o consumidor invalida o cache de KPIs do par (tenant, funcionário).
type TimeRecordEvent struct {
	EventType  string    `json:"event_type"`
	RecordID   string    `json:"record_id"`
	EmployeeID string    `json:"employee_id"`
	TenantID   string    `json:"tenant_id"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}
