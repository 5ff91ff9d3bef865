package dto

import "github.com/jhoicas/movements-api/internal/domain/movement"

// MovementRowResponse fila de la tabla de historial de movimientos.
type MovementRowResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Status          string `json:"status"`
	Remarks         string `json:"remarks"`
	ContainerNumber string `json:"container_number"`
	JobNumber       string `json:"job_number"`
	JobSource       string `json:"job_source,omitempty"` // shipment, empty_repo_job
	PortID          *int64 `json:"port_id,omitempty"`
	PortName        string `json:"port_name,omitempty"`
	AddressBookID   *int64 `json:"address_book_id,omitempty"`
	Location        string `json:"location"` // buque en SOB, compañía del address book en otro caso
}

// MovementListResponse respuesta de GET /api/movements.
type MovementListResponse struct {
	Total int                   `json:"total"`
	Items []MovementRowResponse `json:"items"`
}

// SelectionRequest body de POST /api/movements/transition-options.
type SelectionRequest struct {
	IDs []int64 `json:"ids"`
}

// StatusOption estado destino ofrecido: Value se reenvía en new_status, Label se muestra.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TransitionOptionsResponse job number y estado compartidos por la selección, con los
// estados a los que se puede pasar (vacío si el estado actual no tiene transiciones).
type TransitionOptionsResponse struct {
	IDs           []int64        `json:"ids"`
	JobNumber     string         `json:"job_number"`
	CurrentStatus string         `json:"current_status"`
	Options       []StatusOption `json:"options"`
}

// TransitionRequest body de POST /api/movements/transitions.
type TransitionRequest struct {
	IDs       []int64 `json:"ids"`
	NewStatus string  `json:"new_status"`
	Date      string  `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Remarks   string  `json:"remarks,omitempty"`
}

// TransitionResponse resultado de un cambio de estado masivo. PortID y AddressBookID
// conservan los tres estados: ausente (no se tocó), null (se limpió) o valor.
type TransitionResponse struct {
	SubmissionID  string                `json:"submission_id"`
	IDs           []int64               `json:"ids"`
	NewStatus     string                `json:"new_status"`
	JobNumber     string                `json:"job_number"`
	Date          string                `json:"date"`
	Remarks       string                `json:"remarks"`
	PortID        movement.OptionalID   `json:"port_id,omitzero"`
	AddressBookID movement.OptionalID   `json:"address_book_id,omitzero"`
	SourceKind    string                `json:"source_kind,omitempty"`
	Reloaded      bool                  `json:"reloaded"`
	Items         []MovementRowResponse `json:"items,omitempty"`
}

// DateCorrectionRequest body de PATCH /api/movements/:id/date.
type DateCorrectionRequest struct {
	Date string `json:"date"`
}

// AuditRecordResponse registro de auditoría de envíos.
type AuditRecordResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	JobNumber   string  `json:"job_number,omitempty"`
	FromStatus  string  `json:"from_status,omitempty"`
	ToStatus    string  `json:"to_status,omitempty"`
	MovementIDs []int64 `json:"movement_ids"`
	Date        string  `json:"date"`
	Remarks     string  `json:"remarks,omitempty"`
	Outcome     string  `json:"outcome"`
	ErrorDetail string  `json:"error_detail,omitempty"`
	Actor       string  `json:"actor,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// DateCorrectionResponse resultado de PATCH /api/movements/:id/date.
type DateCorrectionResponse struct {
	ID       int64                 `json:"id"`
	Date     string                `json:"date"`
	Reloaded bool                  `json:"reloaded"`
	Items    []MovementRowResponse `json:"items,omitempty"`
}

// AuditListResponse respuesta de GET /api/movements/audit.
type AuditListResponse struct {
	Total int                   `json:"total"`
	Items []AuditRecordResponse `json:"items"`
}
