package entity

import "time"

// Tipos de registro de auditoría.
const (
	AuditKindTransition     = "transition"
	AuditKindDateCorrection = "date_correction"
)

// Resultado de la operación auditada.
const (
	AuditOutcomeSucceeded = "succeeded"
	AuditOutcomeFailed    = "failed"
)

// TransitionAudit registro append-only de cada envío al servicio de movimientos.
type TransitionAudit struct {
	ID          string
	Kind        string // transition, date_correction
	JobNumber   string
	FromStatus  string
	ToStatus    string
	MovementIDs []int64
	Date        string // YYYY-MM-DD
	Remarks     string
	Outcome     string // succeeded, failed
	ErrorDetail string
	Actor       string // UserID del token
	CreatedAt   time.Time
}
