package generator

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-variants/core/ledger"
	"asset-variants/core/variant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, url, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestHandleGenerate(t *testing.T) {
	app := newTestApp(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))

	status, body := post(t, app, "/variants/prefab", `{"path":"`+prefabPath+`"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, prefabVar, body["variant"])
	assert.Equal(t, "prefab", body["mode"])
	assert.Len(t, body["mappings"], 2)

	status, body = post(t, app, "/variants/scene", `{"path":"`+scenePath+`"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Assets/Scenes/LowResMain.unity", body["variant"])

	status, body = post(t, app, "/variants/folder", `{"path":"Assets/Prefabs"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["nested"], 1)
}

func TestRegisterRoutes(t *testing.T) {
	app := newTestApp(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))

	routes := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /variants/prefab",
		"POST /variants/scene",
		"POST /variants/folder",
		"GET /variants/runs/:id",
		"GET /variants/reconcile",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestHandleGeneratePrefab(t *testing.T) {
	h := NewHandler(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))
	app := fiber.New()
	app.Post("/build", h.HandleGeneratePrefab)

	status, body := post(t, app, "/build", `{"path":"`+prefabPath+`"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "prefab", body["mode"])
	assert.Equal(t, prefabVar, body["variant"])
}

func TestHandleGenerate_Errors(t *testing.T) {
	app := newTestApp(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"Malformed body", "/variants/prefab", `{"path":`, fiber.StatusBadRequest},
		{"Missing path", "/variants/prefab", `{}`, fiber.StatusBadRequest},
		{"Unknown asset", "/variants/prefab", `{"path":"Assets/Nope.prefab"}`, fiber.StatusNotFound},
		{"Wrong kind", "/variants/prefab", `{"path":"` + iconPath + `"}`, fiber.StatusUnprocessableEntity},
		{"Unknown profile", "/variants/prefab", `{"path":"` + prefabPath + `","profile":"Tiny"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, tt.url, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleGetRun(t *testing.T) {
	db, mock := setupMockDB(t)
	app := newTestApp(NewService(seedStore(t), variant.DefaultConfig(), ledger.NewRepository(db), zap.NewNop(), 0))

	rows := sqlmock.NewRows([]string{"id", "run_id", "source", "variant", "kind"}).
		AddRow(1, "run-1", iconPath, iconVar, "sprite")
	mock.ExpectQuery("SELECT \\* FROM `variant_records` WHERE run_id = \\?").WillReturnRows(rows)
	mock.ExpectQuery("SELECT \\* FROM `variant_records` WHERE run_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/variants/runs/run-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []ledger.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, iconVar, records[0].Variant)

	resp, err = app.Test(httptest.NewRequest("GET", "/variants/runs/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleReconcile_LedgerDisabled(t *testing.T) {
	app := newTestApp(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))

	resp, err := app.Test(httptest.NewRequest("GET", "/variants/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/variants/reconcile?key="+iconVar, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleReconcile_Single(t *testing.T) {
	db, mock := setupMockDB(t)
	s := seedStore(t)
	s.AddImage(iconVar, "sprite", 128, 64)
	app := newTestApp(NewService(s, variant.DefaultConfig(), ledger.NewRepository(db), zap.NewNop(), 0))

	rows := sqlmock.NewRows([]string{"id", "run_id", "source", "variant", "kind"}).
		AddRow(4, "run-9", iconPath, iconVar, "sprite")
	mock.ExpectQuery("SELECT \\* FROM `variant_records` WHERE variant = \\?").WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/variants/reconcile?key="+iconVar, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, true, result["ledger_present"])
	assert.Equal(t, true, result["storage_present"])
	assert.Equal(t, "run-9", result["run_id"])
}

func TestFeature(t *testing.T) {
	f := NewFeature(NewService(seedStore(t), variant.DefaultConfig(), nil, zap.NewNop(), 0))
	assert.Equal(t, "generator", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/variants/reconcile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
