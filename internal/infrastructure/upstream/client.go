// Package upstream adaptador HTTP hacia el servicio de movimientos (historial,
// shipments y empty-repo jobs).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
	"github.com/jhoicas/movements-api/internal/domain/repository"
	"github.com/jhoicas/movements-api/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa MovementDataService.
var _ repository.MovementDataService = (*Client)(nil)

const (
	pathLatest       = "/movement-history/latest"
	pathShipments    = "/shipment"
	pathEmptyRepoJob = "/empty-repo-job"
	pathBulkCreate   = "/movement-history/bulk-create"
	pathMovement     = "/movement-history/"

	// maxBodyBytes tope de lectura de respuestas; los listados completos pueden ser grandes.
	maxBodyBytes = 32 << 20
	// maxDetailBytes tope del cuerpo de error que se guarda como diagnóstico.
	maxDetailBytes = 512
)

// Client cliente del servicio de movimientos sobre net/http.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. timeout acota cada llamada individual; si es
// cero se usan 15 s.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		log:        log.Component("upstream"),
	}
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// LatestMovements GET /movement-history/latest.
func (c *Client) LatestMovements(ctx context.Context) ([]*entity.MovementRow, error) {
	var raw []movementRowJSON
	if err := c.do(ctx, opLatest, http.MethodGet, pathLatest, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]*entity.MovementRow, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toEntity())
	}
	return out, nil
}

// ListShipments GET /shipment.
func (c *Client) ListShipments(ctx context.Context) ([]*entity.JobSource, error) {
	return c.listSources(ctx, opShipments, pathShipments, entity.JobSourceShipment)
}

// ListEmptyRepoJobs GET /empty-repo-job.
func (c *Client) ListEmptyRepoJobs(ctx context.Context) ([]*entity.JobSource, error) {
	return c.listSources(ctx, opEmptyRepoJob, pathEmptyRepoJob, entity.JobSourceEmptyRepoJob)
}

// BulkCreate POST /movement-history/bulk-create. Los campos Unset se omiten del cuerpo.
func (c *Client) BulkCreate(ctx context.Context, req movement.TransitionRequest) error {
	return c.do(ctx, opBulkCreate, http.MethodPost, pathBulkCreate, toBulkCreateBody(req), nil)
}

// PatchDate PATCH /movement-history/{id}. El cuerpo lleva solo la fecha.
func (c *Client) PatchDate(ctx context.Context, id int64, date time.Time) error {
	body := patchDateBody{Date: date.Format(movement.DateLayout)}
	return c.do(ctx, opPatchDate, http.MethodPatch, pathMovement+strconv.FormatInt(id, 10), body, nil)
}

func (c *Client) listSources(ctx context.Context, op, path, kind string) ([]*entity.JobSource, error) {
	var raw []jobSourceJSON
	if err := c.do(ctx, op, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]*entity.JobSource, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toEntity(kind))
	}
	return out, nil
}

// ── HTTP ─────────────────────────────────────────────────────────────────────

// do ejecuta una llamada con su propio plazo y registra métricas. in se serializa como
// JSON si no es nil; out se decodifica si no es nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		recordCall(op, err, time.Since(start))
		if err != nil {
			c.log.Error().Err(err).Str("operation", op).Str("method", method).Str("path", path).
				Dur("elapsed", time.Since(start)).Msg("llamada al servicio de movimientos falló")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		payload, mErr := json.Marshal(in)
		if mErr != nil {
			return fmt.Errorf("upstream %s: serializar request: %w", op, mErr)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s: crear request: %v", domain.ErrNetworkFailure, op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(ctx, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: HTTP %d: %s",
			domain.ErrNetworkFailure, method, path, resp.StatusCode, truncate(raw, maxDetailBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: respuesta inválida: %v", domain.ErrNetworkFailure, op, err)
	}
	return nil
}

// transportError distingue vencimiento de plazo del resto de fallos de red.
func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domain.ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrNetworkFailure, op, err)
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= n {
		return s
	}
	// no cortar una secuencia UTF-8 a la mitad: el detalle termina en la auditoría
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
