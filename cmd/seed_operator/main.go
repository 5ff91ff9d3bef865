// seed_operator crea o actualiza operadores del back office a partir de un CSV
// con columnas email,name,role,password (la primera fila es encabezado).
//
// Uso: go run ./cmd/seed_operator [ruta/operadores.csv] [latin1]
// Por defecto busca operators.csv en el directorio actual. Con "latin1" el archivo se
// decodifica como ISO-8859-1 (exportaciones de Excel).
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/movements-api/internal/application/auth"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/repository"
	"github.com/jhoicas/movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/movements-api/pkg/config"
)

type operatorRow struct {
	email, name, role, password string
}

func main() {
	csvPath := "operators.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	latin1 := len(os.Args) > 2 && strings.EqualFold(os.Args[2], "latin1")

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readOperators(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	operators := make([]*entity.Operator, 0, len(rows))
	for _, row := range rows {
		op, err := auth.NewOperator(row.email, row.name, row.role, row.password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", row.email, err)
			os.Exit(1)
		}
		operators = append(operators, op)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	if err := txRunner.Run(ctx, func(q postgres.Querier) error { return postgres.Migrate(ctx, q) }); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	// Todos o ninguno: un error en cualquier fila revierte la carga completa.
	err = txRunner.RunOperators(ctx, func(repo repository.OperatorRepository) error {
		for _, op := range operators {
			if err := repo.Upsert(ctx, op); err != nil {
				return fmt.Errorf("%s: %w", op.Email, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar operadores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Operadores creados/actualizados: %d\n", len(operators))
}

// readOperators lee el CSV. Filas vacías se ignoran; el rol por defecto es viewer.
func readOperators(r io.Reader) ([]operatorRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []operatorRow
	for i, rec := range records[1:] {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("fila %d: se esperan 4 columnas (email,name,role,password), hay %d", i+2, len(rec))
		}
		role := strings.ToLower(strings.TrimSpace(rec[2]))
		if role == "" {
			role = entity.RoleViewer
		}
		out = append(out, operatorRow{
			email:    strings.TrimSpace(rec[0]),
			name:     strings.TrimSpace(rec[1]),
			role:     role,
			password: rec[3],
		})
	}
	return out, nil
}
