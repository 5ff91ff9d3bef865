package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/movements-api/internal/application/auth"
	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
	apphttp "github.com/jhoicas/movements-api/internal/interfaces/http"
	"github.com/jhoicas/movements-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stubService struct {
	mu      sync.Mutex
	rows    []*entity.MovementRow
	sources []*entity.JobSource
	bulk    []movement.TransitionRequest
	patched []int64
	bulkErr error
}

func (s *stubService) LatestMovements(context.Context) ([]*entity.MovementRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.MovementRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubService) ListShipments(context.Context) ([]*entity.JobSource, error) { return nil, nil }

func (s *stubService) ListEmptyRepoJobs(context.Context) ([]*entity.JobSource, error) {
	return s.sources, nil
}

func (s *stubService) BulkCreate(_ context.Context, req movement.TransitionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bulkErr != nil {
		return s.bulkErr
	}
	s.bulk = append(s.bulk, req)
	return nil
}

func (s *stubService) PatchDate(_ context.Context, id int64, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patched = append(s.patched, id)
	return nil
}

type stubReport struct{}

func (stubReport) GenerateMovementReport(context.Context, []*entity.MovementRow, appmovement.ReportMeta) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type stubOperators map[string]*entity.Operator

func (m stubOperators) FindByEmail(_ context.Context, email string) (*entity.Operator, error) {
	return m[email], nil
}

func (m stubOperators) Upsert(_ context.Context, op *entity.Operator) error {
	m[op.Email] = op
	return nil
}

func row(id int64, status, job string) *entity.MovementRow {
	return &entity.MovementRow{
		ID:           id,
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
		Inventory:    &entity.InventoryRef{ContainerNumber: fmt.Sprintf("MSKU%07d", id)},
		EmptyRepoJob: &entity.JobRef{JobNumber: job},
	}
}

func newStub() *stubService {
	pod := int64(55)
	return &stubService{
		rows: []*entity.MovementRow{
			row(1, "GATE-OUT", "J100"),
			row(2, "GATE-OUT", "J100"),
			row(3, "SOB", "J100"),
			row(7, "GATE-IN", "J200"),
		},
		sources: []*entity.JobSource{{Kind: entity.JobSourceEmptyRepoJob, JobNumber: "J100", PodPortID: &pod}},
	}
}

// buildMovementsApp arma la app completa con el router real.
func buildMovementsApp(t *testing.T, svc *stubService, auditEnabled bool) *fiber.App {
	t.Helper()
	return buildMovementsAppWithLog(t, svc, auditEnabled, logger.Nop())
}

func buildMovementsAppWithLog(t *testing.T, svc *stubService, auditEnabled bool, log *logger.Logger) *fiber.App {
	t.Helper()
	op, err := auth.NewOperator(testEmail, "Ana", entity.RoleOperator, "s3cret-pass")
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MovementUC:   appmovement.NewUseCase(svc, nil, stubReport{}, logger.Nop()),
		AuthUC:       auth.NewAuthUseCase(stubOperators{op.Email: op}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer}),
		JWTSecret:    testJWTSecret,
		AuditEnabled: auditEnabled,
		Log:          log,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_ListConFiltro(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, body := call(t, app, http.MethodGet, "/api/movements?job=j200", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Total int `json:"total"`
		Items []struct {
			ID        int64  `json:"id"`
			JobNumber string `json:"job_number"`
			Date      string `json:"date"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, int64(7), out.Items[0].ID)
	assert.Equal(t, "2024-02-01", out.Items[0].Date)
}

func TestMovements_SinToken(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, _ := call(t, app, http.MethodGet, "/api/movements", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMovements_TransitionOptions(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, body := call(t, app, http.MethodPost, "/api/movements/transition-options", "viewer",
		map[string]any{"ids": []int64{1, 2}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"ids": [1, 2],
		"job_number": "J100",
		"current_status": "GATE-OUT",
		"options": [{"value": "EMPTY RETURNED", "label": "Empty Returned"}]
	}`, string(body))
}

func TestMovements_SubmitTransition(t *testing.T) {
	svc := newStub()
	app := buildMovementsApp(t, svc, false)

	resp, body := call(t, app, http.MethodPost, "/api/movements/transitions", "operator", map[string]any{
		"ids": []int64{1, 2}, "new_status": "Empty Returned", "date": "2024-03-01", "remarks": " ok ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &out))
	assert.JSONEq(t, `"EMPTY RETURNED"`, string(out["new_status"]))
	assert.JSONEq(t, `55`, string(out["port_id"]))
	assert.JSONEq(t, `null`, string(out["address_book_id"]), "address book limpiado se devuelve como null")
	assert.JSONEq(t, `"ok"`, string(out["remarks"]))
	assert.JSONEq(t, `true`, string(out["reloaded"]))

	require.Len(t, svc.bulk, 1)
	assert.Equal(t, []int64{1, 2}, svc.bulk[0].IDs)
}

func TestMovements_SubmitTransition_Errores(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		body       map[string]any
		bulkErr    error
		wantStatus int
		wantCode   string
		notContain string
	}{
		{
			name:       "viewer no puede escribir",
			role:       "viewer",
			body:       map[string]any{"ids": []int64{1}, "new_status": "EMPTY RETURNED"},
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "estados mezclados",
			role:       "operator",
			body:       map[string]any{"ids": []int64{1, 3}, "new_status": "EMPTY RETURNED"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MIXED_STATUSES",
		},
		{
			name:       "job numbers mezclados",
			role:       "operator",
			body:       map[string]any{"ids": []int64{1, 7}, "new_status": "EMPTY RETURNED"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MIXED_JOB_NUMBERS",
		},
		{
			name:       "sin estado",
			role:       "admin",
			body:       map[string]any{"ids": []int64{1}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "NO_STATUS_SELECTED",
		},
		{
			name:       "transición no permitida",
			role:       "admin",
			body:       map[string]any{"ids": []int64{1}, "new_status": "GATE-IN"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_TRANSITION",
		},
		{
			name:       "id inexistente",
			role:       "admin",
			body:       map[string]any{"ids": []int64{99}, "new_status": "EMPTY RETURNED"},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "fallo del servicio remoto",
			role:       "operator",
			body:       map[string]any{"ids": []int64{1}, "new_status": "EMPTY RETURNED"},
			bulkErr:    fmt.Errorf("%w: HTTP 500: stack trace", domain.ErrNetworkFailure),
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_FAILURE",
			notContain: "stack trace",
		},
		{
			name:       "timeout del servicio remoto",
			role:       "operator",
			body:       map[string]any{"ids": []int64{1}, "new_status": "EMPTY RETURNED"},
			bulkErr:    fmt.Errorf("%w: bulk_create", domain.ErrTimeout),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "UPSTREAM_TIMEOUT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newStub()
			svc.bulkErr = tt.bulkErr
			app := buildMovementsApp(t, svc, false)

			resp, body := call(t, app, http.MethodPost, "/api/movements/transitions", tt.role, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			assert.Contains(t, string(body), tt.wantCode)
			if tt.notContain != "" {
				assert.NotContains(t, string(body), tt.notContain, "el detalle técnico no se expone")
			}
		})
	}
}

func TestMovements_CorrectDate(t *testing.T) {
	svc := newStub()
	app := buildMovementsApp(t, svc, false)

	resp, body := call(t, app, http.MethodPatch, "/api/movements/7/date", "operator", map[string]any{"date": "2024-03-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, []int64{7}, svc.patched)
	assert.Contains(t, string(body), `"date":"2024-03-01"`)

	resp, _ = call(t, app, http.MethodPatch, "/api/movements/abc/date", "operator", map[string]any{"date": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPatch, "/api/movements/7/date", "operator", map[string]any{"date": "01/03/2024"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovements_Report(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, body := call(t, app, http.MethodGet, "/api/movements/report.pdf?job=J100", "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movement-history-")
	assert.Equal(t, "%PDF-stub", string(body))
}

func TestMovements_AuditDeshabilitada(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, _ := call(t, app, http.MethodGet, "/api/movements/audit", "admin", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMovements_AuditHabilitada(t *testing.T) {
	app := buildMovementsApp(t, newStub(), true)

	resp, body := call(t, app, http.MethodGet, "/api/movements/audit?job_number=J100", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"total": 0, "items": []}`, string(body))
}

func TestLogin_YMetricas(t *testing.T) {
	app := buildMovementsApp(t, newStub(), false)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": testEmail, "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"role":"operator"`)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": testEmail, "password": "incorrecto",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "movements_api_requests_total")
}

func TestMovements_FalloRemotoNoSeRegistraComoErrorEnElHandler(t *testing.T) {
	tests := []struct {
		name    string
		bulkErr error
	}{
		{name: "red", bulkErr: fmt.Errorf("%w: HTTP 500", domain.ErrNetworkFailure)},
		{name: "timeout", bulkErr: fmt.Errorf("%w: bulk_create", domain.ErrTimeout)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			svc := newStub()
			svc.bulkErr = tt.bulkErr
			app := buildMovementsAppWithLog(t, svc, false, logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf}))

			resp, _ := call(t, app, http.MethodPost, "/api/movements/transitions", "operator",
				map[string]any{"ids": []int64{1}, "new_status": "EMPTY RETURNED"})
			require.GreaterOrEqual(t, resp.StatusCode, http.StatusBadGateway)

			out := buf.String()
			assert.Contains(t, out, "request de movimientos falló")
			assert.Contains(t, out, `"level":"debug"`)
			assert.NotContains(t, out, `"level":"error"`)
		})
	}
}
