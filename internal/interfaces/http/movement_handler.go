package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/movements-api/internal/application/dto"
	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/pkg/logger"
)

// Mensajes para el operador. El detalle técnico de los fallos de red queda solo en el log.
const (
	msgMixedJobNumbers = "Please select containers with the same Job Number (Shipping or Empty Repo)."
	msgMixedStatuses   = "Selected containers must all have the same current status."
	msgNoStatus        = "Please select a new status."
	msgEmptySelection  = "Please select at least one container."
	msgInvalidTrans    = "Invalid status transition."
	msgInFlight        = "An update for these containers is already in progress."
	msgUpdateFailed    = "Update failed. Check console for details."
	msgDateFailed      = "Failed to update date."
	msgLoadFailed      = "Failed to load movement history."
)

// MovementHandler pantalla de historial de movimientos (protegido).
type MovementHandler struct {
	uc  *appmovement.UseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *appmovement.UseCase, log *logger.Logger) *MovementHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementHandler{uc: uc, log: log.Component("http")}
}

// List godoc
// @Summary      Historial vigente de movimientos
// @Description  Recarga /movement-history/latest y filtra por subcadena de contenedor o job number.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        container  query  string  false  "Número de contenedor (subcadena)"
// @Param        job        query  string  false  "Job number de shipment o empty-repo job (subcadena)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.ListMovements(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return h.fail(c, err, msgLoadFailed)
	}
	items := appmovement.ToRowResponses(rows)
	return c.JSON(dto.MovementListResponse{Total: len(items), Items: items})
}

// TransitionOptions godoc
// @Summary      Estados destino para una selección
// @Description  Valida que la selección comparta job number y estado y devuelve los estados permitidos.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionRequest  true  "ids"
// @Success      200   {object}  dto.TransitionOptionsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/transition-options [post]
func (h *MovementHandler) TransitionOptions(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	opts, err := h.uc.TransitionOptions(c.UserContext(), in.IDs)
	if err != nil {
		return h.fail(c, err, msgLoadFailed)
	}
	return c.JSON(appmovement.ToOptionsResponse(opts))
}

// SubmitTransition godoc
// @Summary      Cambio de estado masivo
// @Description  Deriva puerto y address book según el estado destino y crea un registro de historial por id.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransitionRequest  true  "ids, new_status, date (YYYY-MM-DD), remarks"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/movements/transitions [post]
func (h *MovementHandler) SubmitTransition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.SubmitTransition(c.UserContext(), appmovement.SubmitTransitionCommand{
		IDs:       in.IDs,
		NewStatus: in.NewStatus,
		Date:      in.Date,
		Remarks:   in.Remarks,
		Actor:     actor(c),
	})
	if err != nil {
		return h.fail(c, err, msgUpdateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(appmovement.ToTransitionResponse(res))
}

// CorrectDate godoc
// @Summary      Corregir la fecha de un movimiento
// @Description  Solo modifica la fecha; no cambia el estado ni consulta la tabla de transiciones.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del movimiento"
// @Param        body  body  dto.DateCorrectionRequest  true  "date (YYYY-MM-DD)"
// @Success      200   {object}  dto.DateCorrectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/date [patch]
func (h *MovementHandler) CorrectDate(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.DateCorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.CorrectDate(c.UserContext(), appmovement.DateCorrectionCommand{
		ID:    id,
		Date:  in.Date,
		Actor: actor(c),
	})
	if err != nil {
		return h.fail(c, err, msgDateFailed)
	}
	return c.JSON(appmovement.ToDateCorrectionResponse(res))
}

// Report godoc
// @Summary      Reporte PDF del historial
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        container  query  string  false  "Número de contenedor (subcadena)"
// @Param        job        query  string  false  "Job number (subcadena)"
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/report.pdf [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.MovementReport(c.UserContext(), filterFromQuery(c), actor(c))
	if err != nil {
		return h.fail(c, err, msgLoadFailed)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Audit godoc
// @Summary      Auditoría de envíos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        job_number  query  string  false  "Job number exacto; vacío = todos"
// @Param        limit       query  int     false  "Máximo de registros (1-500, por defecto 50)"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/movements/audit [get]
func (h *MovementHandler) Audit(c *fiber.Ctx) error {
	list, err := h.uc.AuditTrail(c.UserContext(), c.Query("job_number"), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err, "no se pudo leer la auditoría")
	}
	items := appmovement.ToAuditResponses(list)
	return c.JSON(dto.AuditListResponse{Total: len(items), Items: items})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func filterFromQuery(c *fiber.Ctx) appmovement.Filter {
	return appmovement.Filter{Container: c.Query("container"), Job: c.Query("job")}
}

// fail traduce errores de dominio a HTTP. fallback es el mensaje genérico para fallos
// del servicio remoto y errores internos.
func (h *MovementHandler) fail(c *fiber.Ctx, err error, fallback string) error {
	status, body := errorResponse(err, fallback)
	switch {
	case errors.Is(err, domain.ErrNetworkFailure), errors.Is(err, domain.ErrTimeout):
		// el cliente upstream ya lo registró con el detalle
		h.log.Debug().Err(err).Str("path", c.Path()).Int("status", status).Msg("request de movimientos falló")
	case status >= fiber.StatusInternalServerError:
		h.log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("request de movimientos falló")
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error, fallback string) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrMixedJobNumbers):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "MIXED_JOB_NUMBERS", Message: msgMixedJobNumbers}
	case errors.Is(err, domain.ErrMixedStatuses):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "MIXED_STATUSES", Message: msgMixedStatuses}
	case errors.Is(err, domain.ErrNoStatusSelected):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "NO_STATUS_SELECTED", Message: msgNoStatus}
	case errors.Is(err, domain.ErrEmptySelection):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_SELECTION", Message: msgEmptySelection}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrTransitionRejected), errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: msgInvalidTrans}
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SUBMISSION_IN_FLIGHT", Message: msgInFlight}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrTimeout):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "UPSTREAM_TIMEOUT", Message: fallback}
	case errors.Is(err, domain.ErrNetworkFailure):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_FAILURE", Message: fallback}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: fallback}
	}
}
