package movement_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

type appMeta = appmovement.ReportMeta

type patchCall struct {
	ID   int64
	Date time.Time
}

// fakeService servicio de movimientos en memoria: bulk-create actualiza las filas de
// latest como lo haría el servidor.
type fakeService struct {
	mu        sync.Mutex
	rows      []*entity.MovementRow
	shipments []*entity.JobSource
	emptyRepo []*entity.JobSource

	calls   []string
	bulk    []movement.TransitionRequest
	patches []patchCall

	latestErr error
	sourceErr error
	bulkErr   error

	// si block no es nil, BulkCreate avisa en entered y espera a que se cierre block.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeService) LatestMovements(context.Context) ([]*entity.MovementRow, error) {
	f.record("latest")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	out := make([]*entity.MovementRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeService) ListShipments(context.Context) ([]*entity.JobSource, error) {
	f.record("shipment")
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	return f.shipments, nil
}

func (f *fakeService) ListEmptyRepoJobs(context.Context) ([]*entity.JobSource, error) {
	f.record("empty-repo-job")
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	return f.emptyRepo, nil
}

func (f *fakeService) BulkCreate(_ context.Context, req movement.TransitionRequest) error {
	f.record("bulk-create")
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.bulk = append(f.bulk, req)
	for i, r := range f.rows {
		for _, id := range req.IDs {
			if r.ID == id {
				next := *r
				next.Status = req.NewStatus.Wire()
				next.Date = req.Date
				next.Remarks = req.Remarks
				f.rows[i] = &next
			}
		}
	}
	return nil
}

func (f *fakeService) PatchDate(_ context.Context, id int64, date time.Time) error {
	f.record("patch")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{ID: id, Date: date})
	for i, r := range f.rows {
		if r.ID == id {
			next := *r
			next.Date = date
			f.rows[i] = &next
		}
	}
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	records []*entity.TransitionAudit
}

func (a *fakeAudit) Append(_ context.Context, rec *entity.TransitionAudit) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return nil
}

func (a *fakeAudit) ListByJobNumber(_ context.Context, jobNumber string, limit int) ([]*entity.TransitionAudit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*entity.TransitionAudit
	for _, r := range a.records {
		if jobNumber == "" || r.JobNumber == jobNumber {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeReport struct {
	rows []*entity.MovementRow
	meta appMeta
}

func (r *fakeReport) GenerateMovementReport(_ context.Context, rows []*entity.MovementRow, meta appMeta) ([]byte, error) {
	r.rows = rows
	r.meta = meta
	return []byte("%PDF-fake"), nil
}

func ptr(v int64) *int64 { return &v }

func emptyRepoRow(id int64, status, job string) *entity.MovementRow {
	return &entity.MovementRow{
		ID:           id,
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
		Inventory:    &entity.InventoryRef{ContainerNumber: fmt.Sprintf("MSKU%07d", id)},
		EmptyRepoJob: &entity.JobRef{JobNumber: job},
	}
}

func shipmentRow(id int64, status, job string) *entity.MovementRow {
	return &entity.MovementRow{
		ID:        id,
		Date:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:    status,
		Inventory: &entity.InventoryRef{ContainerNumber: fmt.Sprintf("TGHU%07d", id)},
		Shipment:  &entity.JobRef{JobNumber: job, VesselName: "MV Banga Bir"},
	}
}
