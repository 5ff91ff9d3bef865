package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
	"github.com/jhoicas/movements-api/internal/domain/repository"
)

var _ repository.TransitionAuditRepository = (*TransitionAuditRepo)(nil)

// TransitionAuditRepo auditoría de envíos sobre PostgreSQL. Solo inserta y lista.
type TransitionAuditRepo struct {
	db Querier
}

// NewTransitionAuditRepository construye el adaptador.
func NewTransitionAuditRepository(db Querier) *TransitionAuditRepo {
	return &TransitionAuditRepo{db: db}
}

// Append inserta un registro.
func (r *TransitionAuditRepo) Append(ctx context.Context, rec *entity.TransitionAudit) error {
	date, err := time.Parse(movement.DateLayout, rec.Date)
	if err != nil {
		return fmt.Errorf("audit: fecha %q: %w", rec.Date, err)
	}
	ids := rec.MovementIDs
	if ids == nil {
		ids = []int64{}
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO movement_transition_audit
			(id, kind, job_number, from_status, to_status, movement_ids, move_date,
			 remarks, outcome, error_detail, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		rec.ID, rec.Kind, rec.JobNumber, rec.FromStatus, rec.ToStatus, ids, date,
		nullIfEmpty(rec.Remarks), rec.Outcome, nullIfEmpty(rec.ErrorDetail), nullIfEmpty(rec.Actor), createdAt,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("insert audit: tabla movement_transition_audit no existe (aplicar migraciones): %w", err)
		}
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// ListByJobNumber últimos registros, más recientes primero. jobNumber vacío lista todos.
func (r *TransitionAuditRepo) ListByJobNumber(ctx context.Context, jobNumber string, limit int) ([]*entity.TransitionAudit, error) {
	query := `
		SELECT id, kind, job_number, from_status, to_status, movement_ids, move_date,
		       remarks, outcome, error_detail, actor, created_at
		FROM movement_transition_audit
		WHERE ($1 = '' OR job_number = $1)
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, jobNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransitionAudit
	for rows.Next() {
		var (
			a                         entity.TransitionAudit
			date                      time.Time
			remarks, errDetail, actor *string
		)
		if err := rows.Scan(
			&a.ID, &a.Kind, &a.JobNumber, &a.FromStatus, &a.ToStatus, &a.MovementIDs, &date,
			&remarks, &a.Outcome, &errDetail, &actor, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		a.Date = date.Format(movement.DateLayout)
		a.Remarks = derefString(remarks)
		a.ErrorDetail = derefString(errDetail)
		a.Actor = derefString(actor)
		list = append(list, &a)
	}
	return list, rows.Err()
}
