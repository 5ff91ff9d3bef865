package movement

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
	"github.com/jhoicas/movements-api/internal/domain/repository"
	"github.com/jhoicas/movements-api/pkg/logger"
)

// UseCase orquesta el motor de transiciones contra el servicio de movimientos.
// Es dueño explícito de la caché de filas y de la reserva de envíos en curso.
type UseCase struct {
	svc      repository.MovementDataService
	audit    repository.TransitionAuditRepository
	report   ReportGenerator
	snapshot *Snapshot
	inFlight *inFlight
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. audit puede ser nil (sin auditoría).
func NewUseCase(
	svc repository.MovementDataService,
	audit repository.TransitionAuditRepository,
	report ReportGenerator,
	log *logger.Logger,
) *UseCase {
	if audit == nil {
		audit = nopAudit{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		svc:      svc,
		audit:    audit,
		report:   report,
		snapshot: NewSnapshot(),
		inFlight: newInFlight(),
		log:      log.Component("movements"),
		now:      time.Now,
	}
}

// Snapshot caché de filas del caso de uso.
func (uc *UseCase) Snapshot() *Snapshot { return uc.snapshot }

// ListMovements recarga la foto vigente desde el servicio y aplica el filtro.
func (uc *UseCase) ListMovements(ctx context.Context, f Filter) ([]*entity.MovementRow, error) {
	rows, err := uc.reload(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(rows), nil
}

// Options estado compartido por la selección y estados destino posibles.
type Options struct {
	Selection movement.Selection
	Next      []movement.Status
}

// TransitionOptions valida la selección y devuelve los estados a los que puede pasar.
// No llama al servicio salvo para cargar la caché si todavía no existe.
func (uc *UseCase) TransitionOptions(ctx context.Context, ids []int64) (*Options, error) {
	rows, err := uc.selectRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	sel, err := movement.ValidateSelection(rows)
	if err != nil {
		return nil, err
	}
	return &Options{Selection: sel, Next: movement.NextStatuses(sel.Status)}, nil
}

// SubmitTransitionCommand entrada del cambio de estado masivo.
type SubmitTransitionCommand struct {
	IDs       []int64
	NewStatus string
	Date      string // YYYY-MM-DD; vacío = hoy
	Remarks   string
	Actor     string
}

// TransitionResult resultado de un envío exitoso.
type TransitionResult struct {
	SubmissionID string
	Request      movement.TransitionRequest
	Source       *entity.JobSource
	Rows         []*entity.MovementRow // foto recargada; nil si la recarga falló
	Reloaded     bool
}

// SubmitTransition valida, deriva los campos, envía el bulk-create y recarga la foto.
//
// Errores de validación (domain.IsValidationError) y domain.ErrTransitionRejected se
// devuelven sin llamar a la red. Los fallos de red no se reintentan: se devuelven
// envolviendo domain.ErrNetworkFailure o domain.ErrTimeout y quedan auditados.
func (uc *UseCase) SubmitTransition(ctx context.Context, cmd SubmitTransitionCommand) (*TransitionResult, error) {
	if strings.TrimSpace(cmd.NewStatus) == "" {
		return nil, domain.ErrNoStatusSelected
	}
	ids := uniqueIDs(cmd.IDs)
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	date, err := uc.resolveDate(cmd.Date)
	if err != nil {
		return nil, err
	}

	release, ok := uc.inFlight.acquire(ids)
	if !ok {
		return nil, domain.ErrSubmissionInFlight
	}
	defer release()

	rows, err := uc.selectRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	sel, err := movement.ValidateSelection(rows)
	if err != nil {
		return nil, err
	}

	target := movement.ParseStatus(cmd.NewStatus)
	if !movement.CanTransition(sel.Status, target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrTransitionRejected, sel.RawStatus, strings.TrimSpace(cmd.NewStatus))
	}

	source, err := uc.findSource(ctx, sel.JobNumber)
	if err != nil {
		return nil, err
	}
	fields, err := movement.ResolveFields(target, source, rows[0])
	if err != nil {
		return nil, err
	}
	req := movement.BuildPayload(sel.IDs, target, sel.JobNumber, date, cmd.Remarks, fields)

	rec := &entity.TransitionAudit{
		ID:          uuid.New().String(),
		Kind:        entity.AuditKindTransition,
		JobNumber:   sel.JobNumber,
		FromStatus:  sel.RawStatus,
		ToStatus:    target.Wire(),
		MovementIDs: req.IDs,
		Date:        req.FormattedDate(),
		Remarks:     req.Remarks,
		Actor:       cmd.Actor,
	}

	if err := uc.svc.BulkCreate(ctx, req); err != nil {
		uc.log.Error().Err(err).
			Str("submission_id", rec.ID).
			Str("job_number", sel.JobNumber).
			Str("new_status", target.Wire()).
			Int("ids", len(req.IDs)).
			Msg("bulk-create de movimientos falló")
		uc.appendAudit(ctx, rec, err)
		return nil, err
	}

	uc.log.Info().
		Str("submission_id", rec.ID).
		Str("job_number", sel.JobNumber).
		Str("from", sel.RawStatus).
		Str("new_status", target.Wire()).
		Int("ids", len(req.IDs)).
		Stringer("port_id", req.PortID).
		Stringer("address_book_id", req.AddressBookID).
		Msg("estado de movimientos actualizado")
	uc.appendAudit(ctx, rec, nil)

	res := &TransitionResult{SubmissionID: rec.ID, Request: req, Source: source}
	res.Rows, res.Reloaded = uc.reloadAfterMutation(ctx)
	return res, nil
}

// DateCorrectionCommand corrección de la fecha de una sola fila.
type DateCorrectionCommand struct {
	ID    int64
	Date  string // YYYY-MM-DD
	Actor string
}

// DateCorrectionResult resultado de la corrección.
type DateCorrectionResult struct {
	ID       int64
	Date     time.Time
	Rows     []*entity.MovementRow
	Reloaded bool
}

// CorrectDate modifica solo la fecha de una fila. No consulta la tabla de transiciones
// ni tiene implicaciones de estado.
func (uc *UseCase) CorrectDate(ctx context.Context, cmd DateCorrectionCommand) (*DateCorrectionResult, error) {
	if cmd.ID <= 0 {
		return nil, fmt.Errorf("%w: id de movimiento requerido", domain.ErrInvalidInput)
	}
	date, err := movement.ParseDate(cmd.Date)
	if err != nil {
		return nil, err
	}

	rec := &entity.TransitionAudit{
		ID:          uuid.New().String(),
		Kind:        entity.AuditKindDateCorrection,
		MovementIDs: []int64{cmd.ID},
		Date:        date.Format(movement.DateLayout),
		Actor:       cmd.Actor,
	}
	if rows, _ := uc.snapshot.Find([]int64{cmd.ID}); len(rows) == 1 {
		rec.JobNumber = rows[0].JobNumber()
		rec.FromStatus = rows[0].Status
	}

	if err := uc.svc.PatchDate(ctx, cmd.ID, date); err != nil {
		uc.log.Error().Err(err).Int64("id", cmd.ID).Msg("corrección de fecha falló")
		uc.appendAudit(ctx, rec, err)
		return nil, err
	}
	uc.log.Info().Int64("id", cmd.ID).Str("date", rec.Date).Msg("fecha de movimiento corregida")
	uc.appendAudit(ctx, rec, nil)

	res := &DateCorrectionResult{ID: cmd.ID, Date: date}
	res.Rows, res.Reloaded = uc.reloadAfterMutation(ctx)
	return res, nil
}

// AuditTrail últimos registros de auditoría de un job number (vacío = todos).
func (uc *UseCase) AuditTrail(ctx context.Context, jobNumber string, limit int) ([]*entity.TransitionAudit, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return uc.audit.ListByJobNumber(ctx, strings.TrimSpace(jobNumber), limit)
}

// MovementReport PDF de la foto vigente filtrada. Devuelve bytes y nombre de archivo.
func (uc *UseCase) MovementReport(ctx context.Context, f Filter, actor string) ([]byte, string, error) {
	if uc.report == nil {
		return nil, "", fmt.Errorf("reporte: generador no configurado")
	}
	rows, err := uc.ListMovements(ctx, f)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.report.GenerateMovementReport(ctx, rows, ReportMeta{
		Title:       "Movement History",
		Filter:      f,
		GeneratedAt: now,
		GeneratedBy: actor,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	return pdf, "movement-history-" + now.Format("20060102-150405") + ".pdf", nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *UseCase) reload(ctx context.Context) ([]*entity.MovementRow, error) {
	rows, err := uc.svc.LatestMovements(ctx)
	if err != nil {
		return nil, err
	}
	uc.snapshot.Replace(rows, uc.now())
	return rows, nil
}

// reloadAfterMutation recarga la foto tras un envío exitoso. Si falla, la mutación ya
// fue aceptada: se registra y el caller puede volver a listar.
func (uc *UseCase) reloadAfterMutation(ctx context.Context) ([]*entity.MovementRow, bool) {
	rows, err := uc.reload(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("recarga de movimientos tras la actualización falló")
		return nil, false
	}
	return rows, true
}

// selectRows resuelve los ids contra la caché. Si falta alguno recarga una vez.
func (uc *UseCase) selectRows(ctx context.Context, ids []int64) ([]*entity.MovementRow, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}
	rows, missing := uc.snapshot.Find(ids)
	if len(missing) == 0 {
		return rows, nil
	}
	if _, err := uc.reload(ctx); err != nil {
		return nil, err
	}
	rows, missing = uc.snapshot.Find(ids)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: movimientos %v", domain.ErrNotFound, missing)
	}
	return rows, nil
}

// findSource busca primero en shipments y, si ninguno coincide, en empty-repo jobs.
// No encontrar el job number no es un error: el resultado es nil.
func (uc *UseCase) findSource(ctx context.Context, jobNumber string) (*entity.JobSource, error) {
	if jobNumber == "" {
		return nil, nil
	}
	shipments, err := uc.svc.ListShipments(ctx)
	if err != nil {
		return nil, err
	}
	if s := matchJob(shipments, jobNumber); s != nil {
		return s, nil
	}
	jobs, err := uc.svc.ListEmptyRepoJobs(ctx)
	if err != nil {
		return nil, err
	}
	if j := matchJob(jobs, jobNumber); j != nil {
		return j, nil
	}
	uc.log.Debug().Str("job_number", jobNumber).Msg("job number sin shipment ni empty-repo job")
	return nil, nil
}

func matchJob(list []*entity.JobSource, jobNumber string) *entity.JobSource {
	for _, s := range list {
		if s != nil && s.JobNumber == jobNumber {
			return s
		}
	}
	return nil
}

func (uc *UseCase) resolveDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		y, m, d := uc.now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return movement.ParseDate(s)
}

// appendAudit la auditoría nunca hace fallar la operación del usuario.
func (uc *UseCase) appendAudit(ctx context.Context, rec *entity.TransitionAudit, opErr error) {
	rec.Outcome = entity.AuditOutcomeSucceeded
	if opErr != nil {
		rec.Outcome = entity.AuditOutcomeFailed
		rec.ErrorDetail = opErr.Error()
	}
	rec.CreatedAt = uc.now()
	// El registro no debe perderse si el request HTTP se cancela justo después del envío.
	if err := uc.audit.Append(context.WithoutCancel(ctx), rec); err != nil {
		uc.log.Warn().Err(err).Str("submission_id", rec.ID).Msg("no se pudo registrar la auditoría")
	}
}

func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

type nopAudit struct{}

func (nopAudit) Append(context.Context, *entity.TransitionAudit) error { return nil }

func (nopAudit) ListByJobNumber(context.Context, string, int) ([]*entity.TransitionAudit, error) {
	return nil, nil
}

// IsNetworkError indica si err proviene del servicio remoto (fallo o timeout).
func IsNetworkError(err error) bool {
	return errors.Is(err, domain.ErrNetworkFailure) || errors.Is(err, domain.ErrTimeout)
}
