// Package pdf genera el reporte del historial de movimientos de contenedores.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros          │  Generado: fecha / operador      │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  RESUMEN: cantidad de contenedores por estado                        │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Contenedor | Job | Estado | Puerto | Ubicación | Obs. │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

var _ appmovement.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa movement.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(
	_ context.Context,
	rows []*entity.MovementRow,
	meta appmovement.ReportMeta,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(meta.Title, true).
		WithAuthor(nonEmpty(meta.GeneratedBy, "movements-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(rows)...)
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos para los filtros indicados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y filtros (izq), fecha de generación y operador (der).
func headerRow(meta appmovement.ReportMeta, total int) core.Row {
	filters := "Todos los movimientos"
	if meta.Filter.Container != "" || meta.Filter.Job != "" {
		filters = fmt.Sprintf("Contenedor: %s   |   Job: %s",
			nonEmpty(meta.Filter.Container, "—"), nonEmpty(meta.Filter.Job, "—"))
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(meta.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filters+"   |   Registros: "+strconv.Itoa(total), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(meta.GeneratedBy, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// summaryRows: cantidad de filas por estado, en el orden del ciclo de vida.
func summaryRows(rows []*entity.MovementRow) []core.Row {
	counts := statusCounts(rows)
	cols := make([]core.Col, 0, len(counts))
	for _, c := range counts {
		cols = append(cols, col.New(12/len(counts)).Add(
			text.New(c.label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(c.n), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		))
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("RESUMEN POR ESTADO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		row.New(12).Add(cols...),
	}
}

type statusCount struct {
	label string
	n     int
}

// statusCounts agrupa en hasta 6 columnas: los cinco primeros estados del ciclo y
// "Otros" con el resto (disponibilidad y estados desconocidos).
func statusCounts(rows []*entity.MovementRow) []statusCount {
	primary := []movement.Status{
		movement.StatusAllotted,
		movement.StatusEmptyPickedUp,
		movement.StatusGateIn,
		movement.StatusSOB,
		movement.StatusGateOut,
	}
	out := make([]statusCount, 0, len(primary)+1)
	for _, s := range primary {
		out = append(out, statusCount{label: s.Label()})
	}
	other := statusCount{label: "Otros"}
	for _, r := range rows {
		st := movement.ParseStatus(r.Status)
		idx := -1
		for i, s := range primary {
			if s == st {
				idx = i
				break
			}
		}
		if idx >= 0 {
			out[idx].n++
		} else {
			other.n++
		}
	}
	return append(out, other)
}

// tableHeaderRow: cabecera de la tabla con fondo de color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 1),
		h("Contenedor", 2),
		h("Job", 2),
		h("Estado", 2),
		h("Puerto", 1),
		h("Ubicación", 2),
		h("Observaciones", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por movimiento, con filas alternas sombreadas.
func tableDetailRows(rows []*entity.MovementRow) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(nonEmpty(s, "-"), props.Text{
			Size: 7.5, Align: align.Left, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format("02/01/2006")
		}
		tr := row.New(7).Add(
			cell(date, 1),
			cell(r.ContainerNumber(), 2),
			cell(r.JobNumber(), 2),
			cell(r.Status, 2),
			cell(r.PortName(), 1),
			cell(r.Location(), 2),
			cell(truncate(r.Remarks, 60), 2),
		)
		if i%2 == 1 {
			tr = tr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, tr)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas agregando "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
