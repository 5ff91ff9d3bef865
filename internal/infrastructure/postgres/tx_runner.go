package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/movements-api/internal/domain/repository"
)

// txBeginner abstrae pgxpool.Pool para poder probar el runner sin base de datos.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ txBeginner = (*pgxpool.Pool)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: pool}
}

// Run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOperators ejecuta fn con un repositorio de operadores atado a la tx (carga masiva
// de operadores: todos o ninguno).
func (r *TxRunner) RunOperators(ctx context.Context, fn func(operators repository.OperatorRepository) error) error {
	return r.Run(ctx, func(q Querier) error {
		return fn(NewOperatorRepository(q))
	})
}
