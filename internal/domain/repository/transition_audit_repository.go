package repository

import (
	"context"

	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// TransitionAuditRepository puerto de persistencia append-only de la auditoría de envíos.
type TransitionAuditRepository interface {
	Append(ctx context.Context, rec *entity.TransitionAudit) error
	ListByJobNumber(ctx context.Context, jobNumber string, limit int) ([]*entity.TransitionAudit, error)
}
