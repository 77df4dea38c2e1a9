package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, env map[string]string) *App {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	app := NewApp()
	require.NoError(t, app.InitializeWith(context.Background(), config.FromEnv()))
	t.Cleanup(func() { app.Close() })
	return app
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestApp_Routes(t *testing.T) {
	app := newTestApp(t, map[string]string{"SEED_SOURCE": "embedded", "DEFAULT_VIEW_MODE": "table"})

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/healthz", "").Code)

	rec := serve(app, http.MethodGet, "/directory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"view_mode":"table"`)

	rec = serve(app, http.MethodPost, "/directory/sort/age", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(app, http.MethodPost, "/directory/sort/age", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(app, http.MethodGet, "/directory/employees", "")
	var env struct {
		Data []struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 4)
	assert.Equal(t, 4, env.Data[0].ID)

	assert.Equal(t, http.StatusBadRequest, serve(app, http.MethodPost, "/directory/sort/image", "").Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodPut, "/directory/search", `{"query":"bang"}`).Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodPut, "/directory/department", `{"department":"Design"}`).Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodPut, "/directory/view-mode", `{"mode":"cards"}`).Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/directory/statistics", "").Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/directory/departments", "").Code)
	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/directory/export", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/employees", "").Code)

	view := app.Service.Snapshot(context.Background())
	assert.Equal(t, "bang", view.SearchQuery)
	assert.Equal(t, domain.ViewCards, view.ViewMode)
}

func TestApp_BadDefaultViewModeFallsBack(t *testing.T) {
	app := newTestApp(t, map[string]string{"SEED_SOURCE": "embedded", "DEFAULT_VIEW_MODE": "grid"})
	assert.Equal(t, domain.ViewCards, app.Service.Snapshot(context.Background()).ViewMode)
}

func TestNewEmployeeSource(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded", func(t *testing.T) {
		src, closeFn, err := NewEmployeeSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedEmbedded})
		require.NoError(t, err)
		defer closeFn()
		employees, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, employees, 4)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("employees:\n  - id: 9\n    name: Solo\n    department: Ops\n"), 0o644))

		src, _, err := NewEmployeeSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile, SEED_FILE: path})
		require.NoError(t, err)
		employees, err := src.Load(ctx)
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "Solo", employees[0].Name)
	})

	t.Run("file without path", func(t *testing.T) {
		_, _, err := NewEmployeeSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedFile})
		assert.Error(t, err)
	})

	t.Run("elastic", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"hits":{"hits":[{"_id":"5","_source":{"id":5,"name":"Remote"}}]}}`))
		}))
		defer srv.Close()

		src, _, err := NewEmployeeSource(ctx, &config.EnvConfig{SEED_SOURCE: config.SeedElastic, ELASTIC_URL: srv.URL})
		require.NoError(t, err)
		_, ok := src.(*database.ElasticSearchClient)
		require.True(t, ok)
		employees, err := src.Load(ctx)
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "Remote", employees[0].Name)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := NewEmployeeSource(ctx, &config.EnvConfig{SEED_SOURCE: "mongo"})
		assert.ErrorContains(t, err, "mongo")
	})
}

func TestNewSeeder_UnknownTarget(t *testing.T) {
	_, _, err := NewSeeder(context.Background(), &config.EnvConfig{}, "mongo")
	assert.Error(t, err)
}

func TestRelease(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, "info")
	t.Cleanup(func() { logger.SetOutput(os.Stdout, "info") })

	Release(context.Background(), func() error { return errors.New("connection reset") })
	assert.Contains(t, buf.String(), "connection reset")

	buf.Reset()
	Release(context.Background(), func() error { return nil })
	Release(context.Background(), nil)
	assert.Empty(t, buf.String())
}
