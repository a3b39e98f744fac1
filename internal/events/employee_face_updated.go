package events

import "time"

const EmployeeFaceTopic = "sige.employee.face.v1"

const (
	FaceUpdated = "employee.face_updated"
	FaceRemoved = "employee.face_removed"
)

// EmployeeFaceEvent dispara a atualização do cache de embeddings faciais.
type EmployeeFaceEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	TenantID   string    `json:"tenant_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
