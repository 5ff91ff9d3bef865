package repository

import (
	"context"
	"time"

	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

// MovementDataService puerto hacia el servicio remoto de movimientos. Es la única
// frontera de I/O del motor de transiciones.
//
// Los errores de red se devuelven envolviendo domain.ErrNetworkFailure y los vencimientos
// de plazo envolviendo domain.ErrTimeout.
type MovementDataService interface {
	// LatestMovements GET /movement-history/latest: foto vigente, en el orden del servidor.
	LatestMovements(ctx context.Context) ([]*entity.MovementRow, error)
	// ListShipments GET /shipment: listado completo, se filtra del lado del cliente.
	ListShipments(ctx context.Context) ([]*entity.JobSource, error)
	// ListEmptyRepoJobs GET /empty-repo-job: listado completo, se filtra del lado del cliente.
	ListEmptyRepoJobs(ctx context.Context) ([]*entity.JobSource, error)
	// BulkCreate POST /movement-history/bulk-create: un registro de historial por id.
	BulkCreate(ctx context.Context, req movement.TransitionRequest) error
	// PatchDate PATCH /movement-history/{id} con {"date": "YYYY-MM-DD"}.
	PatchDate(ctx context.Context, id int64, date time.Time) error
}
