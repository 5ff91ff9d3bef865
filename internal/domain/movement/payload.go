package movement

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/movements-api/internal/domain"
)

// DateLayout formato de fecha que acepta el servicio de movimientos.
const DateLayout = "2006-01-02"

// TransitionRequest payload de POST /movement-history/bulk-create: un registro de
// historial por id, todos con el mismo estado, fecha, observaciones y referencias.
type TransitionRequest struct {
	IDs           []int64
	NewStatus     Status
	JobNumber     string
	Date          time.Time
	Remarks       string
	PortID        OptionalID
	AddressBookID OptionalID
}

// BuildPayload arma el TransitionRequest. Las observaciones se recortan.
func BuildPayload(ids []int64, target Status, jobNumber string, date time.Time, remarks string, fields DerivedFields) TransitionRequest {
	out := make([]int64, len(ids))
	copy(out, ids)
	return TransitionRequest{
		IDs:           out,
		NewStatus:     target,
		JobNumber:     jobNumber,
		Date:          date,
		Remarks:       strings.TrimSpace(remarks),
		PortID:        fields.PortID,
		AddressBookID: fields.AddressBookID,
	}
}

// FormattedDate fecha en formato YYYY-MM-DD.
func (r TransitionRequest) FormattedDate() string {
	return r.Date.Format(DateLayout)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, se espera YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}
