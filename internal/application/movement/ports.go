package movement

import (
	"context"
	"time"

	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// ReportMeta datos de cabecera del reporte de movimientos.
type ReportMeta struct {
	Title       string
	Filter      Filter
	GeneratedAt time.Time
	GeneratedBy string
}

// ReportGenerator genera el PDF del historial de movimientos.
type ReportGenerator interface {
	GenerateMovementReport(ctx context.Context, rows []*entity.MovementRow, meta ReportMeta) ([]byte, error)
}
