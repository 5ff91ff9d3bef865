package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo operadores del back office sobre PostgreSQL.
type OperatorRepo struct {
	db Querier
}

// NewOperatorRepository construye el adaptador de persistencia para operadores.
func NewOperatorRepository(db Querier) *OperatorRepo {
	return &OperatorRepo{db: db}
}

// FindByEmail obtiene un operador por email. Devuelve nil, nil si no existe.
func (r *OperatorRepo) FindByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM operators WHERE email = $1`
	var o entity.Operator
	err := r.db.QueryRow(ctx, query, email).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.Name, &o.Role, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operator by email: %w", err)
	}
	return &o, nil
}

// Upsert crea el operador o, si el email ya existe, actualiza sus datos y password.
func (r *OperatorRepo) Upsert(ctx context.Context, op *entity.Operator) error {
	query := `
		INSERT INTO operators (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			name          = EXCLUDED.name,
			role          = EXCLUDED.role,
			status        = EXCLUDED.status,
			updated_at    = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		op.ID, op.Email, op.PasswordHash, op.Name, op.Role, op.Status, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert operator: %w", err)
	}
	return nil
}
