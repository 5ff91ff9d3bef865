package repository

import (
	"context"

	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// OperatorRepository define el puerto de persistencia para operadores del back office.
type OperatorRepository interface {
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Operator, error)
	// Upsert crea el operador o actualiza nombre, rol, estado y password por email.
	Upsert(ctx context.Context, op *entity.Operator) error
}
