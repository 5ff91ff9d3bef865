package movement

import (
	"strings"

	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// Selection resultado de una selección homogénea: un solo job number y un solo estado.
type Selection struct {
	IDs       []int64
	JobNumber string
	Status    Status
	RawStatus string // estado tal como lo reporta el servidor
}

// ValidateSelection exige que todas las filas compartan job number y estado actual.
// Las reglas se evalúan en orden: primero job number (domain.ErrMixedJobNumbers),
// luego estado (domain.ErrMixedStatuses).
func ValidateSelection(rows []*entity.MovementRow) (Selection, error) {
	if len(rows) == 0 {
		return Selection{}, domain.ErrEmptySelection
	}
	first := rows[0]
	jobNumber := first.JobNumber()
	for _, r := range rows[1:] {
		if r.JobNumber() != jobNumber {
			return Selection{}, domain.ErrMixedJobNumbers
		}
	}
	for _, r := range rows[1:] {
		if !SameStatus(r.Status, first.Status) {
			return Selection{}, domain.ErrMixedStatuses
		}
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return Selection{
		IDs:       ids,
		JobNumber: jobNumber,
		Status:    ParseStatus(first.Status),
		RawStatus: strings.TrimSpace(first.Status),
	}, nil
}
