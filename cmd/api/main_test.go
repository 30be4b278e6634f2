package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"article-inventory/internal/config"
	"article-inventory/internal/handler/http/auth"
	"article-inventory/internal/infra/db"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:               0,
		Env:                "test",
		APIKeySecret:       "cmd-secret",
		ShutdownTimeout:    5 * time.Second,
		MaxBodyBytes:       1 << 20,
		TraceSampleRatio:   0,
		CORSAllowedOrigins: []string{"*"},
		Database: config.Database{
			Driver:          db.DriverSQLite,
			Name:            filepath.Join(t.TempDir(), "articles.db"),
			PoolSize:        2,
			MonitorSchedule: "@every 1h",
		},
	}
}

func TestNewApp_MissingSecret(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.APIKeySecret = ""

	a, err := newApp(context.Background(), cfg, quietLogger(), true)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestNewApp_ServesArticles(t *testing.T) {
	ctx := context.Background()
	a, err := newApp(ctx, sqliteConfig(t), quietLogger(), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.release(context.Background()) })

	h := a.server.Handler

	req := httptest.NewRequest(http.MethodPost, "/api/articles",
		strings.NewReader(`{"name":"Mechanical Keyboard","brand":"LogiTech"}`))
	req.Header.Set(auth.HeaderAPIKey, "cmd-secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, gjson.Get(rec.Body.String(), "is_active").Bool())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles?name=Keyboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mechanical Keyboard", gjson.Get(rec.Body.String(), "active.0.name").String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", gjson.Get(rec.Body.String(), "checks.circuit_breaker.details.state").String())
}

func TestNewApp_ArticleProperties(t *testing.T) {
	a, err := newApp(context.Background(), sqliteConfig(t), quietLogger(), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.release(context.Background()) })

	call := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		}
		req.Header.Set(auth.HeaderAPIKey, "cmd-secret")
		rec := httptest.NewRecorder()
		a.server.Handler.ServeHTTP(rec, req)
		return rec
	}

	created := call(http.MethodPost, "/api/articles", `{"name":"Desk Lamp","brand":"Ikea"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	id := gjson.Get(created.Body.String(), "id").String()
	path := "/api/articles/" + id

	got := call(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, got.Code)
	for _, field := range []string{"name", "brand", "is_active", "modified_at"} {
		assert.Equal(t, gjson.Get(created.Body.String(), field).Value(), gjson.Get(got.Body.String(), field).Value(), field)
	}

	empty := call(http.MethodPatch, path, `{}`)
	require.Equal(t, http.StatusOK, empty.Code, empty.Body.String())
	assert.JSONEq(t, got.Body.String(), empty.Body.String())

	first := call(http.MethodPatch, path+"/deactivate", "")
	assert.Equal(t, http.StatusOK, first.Code)
	second := call(http.MethodPatch, path+"/deactivate", "")
	assert.Equal(t, http.StatusNotFound, second.Code)
	after := call(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, after.Code)
	assert.False(t, gjson.Get(after.Body.String(), "is_active").Bool())

	assert.Equal(t, http.StatusNotFound, call(http.MethodGet, "/api/articles/999999", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(http.MethodGet, "/api/articles/abc", "").Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, err := newApp(ctx, sqliteConfig(t), quietLogger(), true)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	_, err = a.pool.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, db.ErrPoolClosed)
}

func TestApp_ShutdownDrainsInFlightRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a, err := newApp(ctx, sqliteConfig(t), quietLogger(), true)
	require.NoError(t, err)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	next := a.server.Handler
	a.server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-proceed
		next.ServeHTTP(w, r)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- a.server.Serve(ln) }()

	type result struct {
		code int
		body string
		err  error
	}
	results := make(chan result, 1)
	go func() {
		req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/api/articles",
			strings.NewReader(`{"name":"Mechanical Keyboard","brand":"LogiTech"}`))
		if err != nil {
			results <- result{err: err}
			return
		}
		req.Header.Set(auth.HeaderAPIKey, "cmd-secret")
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			results <- result{err: err}
			return
		}
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		results <- result{code: res.StatusCode, body: string(body)}
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	// the signal arrives while the request is still in flight
	cancel()
	shutdownDone := make(chan error, 1)
	go func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		shutdownDone <- a.shutdown(sctx)
	}()
	time.Sleep(50 * time.Millisecond)
	close(proceed)

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, http.StatusCreated, res.code, res.body)
	assert.True(t, gjson.Get(res.body, "is_active").Bool())

	require.NoError(t, <-shutdownDone)
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
}

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	t.Setenv("DB_DRIVER", db.DriverSQLite)
	t.Setenv("DB_DATABASE", dbPath)
	t.Setenv("LOG_LEVEL", "error")

	for _, step := range []string{"up", "up", "down"} {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"migrate", step, "--env-file", filepath.Join(t.TempDir(), "missing.env")})

		require.NoError(t, rootCmd.ExecuteContext(context.Background()), step)
		assert.Contains(t, out.String(), "migrate "+step+": ok")
	}
}

func TestMigrateCommand_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", db.DriverMySQL)
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "70000")

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"migrate", "up", "--env-file", filepath.Join(t.TempDir(), "missing.env")})

	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
