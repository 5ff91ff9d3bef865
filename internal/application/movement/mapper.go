package movement

import (
	"time"

	"github.com/jhoicas/movements-api/internal/application/dto"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

// ToRowResponse convierte una fila al formato de la tabla.
func ToRowResponse(r *entity.MovementRow) dto.MovementRowResponse {
	out := dto.MovementRowResponse{
		ID:              r.ID,
		Status:          r.Status,
		Remarks:         r.Remarks,
		ContainerNumber: r.ContainerNumber(),
		JobNumber:       r.JobNumber(),
		PortName:        r.PortName(),
		Location:        r.Location(),
	}
	if !r.Date.IsZero() {
		out.Date = r.Date.Format(movement.DateLayout)
	}
	switch {
	case r.Shipment != nil && r.Shipment.JobNumber != "":
		out.JobSource = entity.JobSourceShipment
	case r.EmptyRepoJob != nil:
		out.JobSource = entity.JobSourceEmptyRepoJob
	}
	if r.Port != nil {
		id := r.Port.ID
		out.PortID = &id
	}
	if r.AddressBook != nil {
		id := r.AddressBook.ID
		out.AddressBookID = &id
	}
	return out
}

// ToRowResponses convierte un listado; nunca devuelve nil.
func ToRowResponses(rows []*entity.MovementRow) []dto.MovementRowResponse {
	out := make([]dto.MovementRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToRowResponse(r))
	}
	return out
}

// ToOptionsResponse convierte las opciones de transición.
func ToOptionsResponse(o *Options) dto.TransitionOptionsResponse {
	opts := make([]dto.StatusOption, 0, len(o.Next))
	for _, s := range o.Next {
		opts = append(opts, dto.StatusOption{Value: s.Wire(), Label: s.Label()})
	}
	return dto.TransitionOptionsResponse{
		IDs:           o.Selection.IDs,
		JobNumber:     o.Selection.JobNumber,
		CurrentStatus: o.Selection.RawStatus,
		Options:       opts,
	}
}

// ToTransitionResponse convierte el resultado de un envío.
func ToTransitionResponse(res *TransitionResult) dto.TransitionResponse {
	out := dto.TransitionResponse{
		SubmissionID:  res.SubmissionID,
		IDs:           res.Request.IDs,
		NewStatus:     res.Request.NewStatus.Wire(),
		JobNumber:     res.Request.JobNumber,
		Date:          res.Request.FormattedDate(),
		Remarks:       res.Request.Remarks,
		PortID:        res.Request.PortID,
		AddressBookID: res.Request.AddressBookID,
		Reloaded:      res.Reloaded,
	}
	if res.Source != nil {
		out.SourceKind = res.Source.Kind
	}
	if res.Reloaded {
		out.Items = ToRowResponses(res.Rows)
	}
	return out
}

// ToDateCorrectionResponse convierte el resultado de una corrección de fecha.
func ToDateCorrectionResponse(res *DateCorrectionResult) dto.DateCorrectionResponse {
	out := dto.DateCorrectionResponse{
		ID:       res.ID,
		Date:     res.Date.Format(movement.DateLayout),
		Reloaded: res.Reloaded,
	}
	if res.Reloaded {
		out.Items = ToRowResponses(res.Rows)
	}
	return out
}

// ToAuditResponses convierte registros de auditoría.
func ToAuditResponses(list []*entity.TransitionAudit) []dto.AuditRecordResponse {
	out := make([]dto.AuditRecordResponse, 0, len(list))
	for _, a := range list {
		ids := a.MovementIDs
		if ids == nil {
			ids = []int64{}
		}
		out = append(out, dto.AuditRecordResponse{
			ID:          a.ID,
			Kind:        a.Kind,
			JobNumber:   a.JobNumber,
			FromStatus:  a.FromStatus,
			ToStatus:    a.ToStatus,
			MovementIDs: ids,
			Date:        a.Date,
			Remarks:     a.Remarks,
			Outcome:     a.Outcome,
			ErrorDetail: a.ErrorDetail,
			Actor:       a.Actor,
			CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
