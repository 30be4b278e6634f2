package http

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/handler/http/auth"
	"article-inventory/internal/handler/http/requestid"
	"article-inventory/internal/repository"
	artUC "article-inventory/internal/usecase/article"
)

const routerKey = "router-secret"

// memRepo is the smallest repository that lets requests reach the handlers.
type memRepo struct {
	rows map[int64]*repository.ArticleRecord
}

func (m *memRepo) Create(_ context.Context, in entity.CreateArticle) (*repository.ArticleRecord, error) {
	id := int64(len(m.rows) + 1)
	m.rows[id] = &repository.ArticleRecord{ID: id, Name: in.Name, Brand: in.Brand, ModifiedAt: time.Now(), IsActive: true}
	return m.rows[id], nil
}

func (m *memRepo) FindByID(_ context.Context, id int64) (*repository.ArticleRecord, error) {
	return m.rows[id], nil
}

func (m *memRepo) Find(context.Context, repository.ArticleFilter) ([]*repository.ArticleRecord, error) {
	out := []*repository.ArticleRecord{}
	for i := int64(1); i <= int64(len(m.rows)); i++ {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, id int64, _ entity.UpdateArticle) (*repository.ArticleRecord, error) {
	return m.rows[id], nil
}

func (m *memRepo) Deactivate(_ context.Context, id int64) (bool, error) {
	rec, ok := m.rows[id]
	if !ok {
		return false, nil
	}
	if active, _ := rec.IsActive.(bool); !active {
		return false, nil
	}
	rec.IsActive = false
	return true, nil
}

func newTestRouter(t *testing.T, mutate func(*RouterConfig)) http.Handler {
	t.Helper()
	logger := quietLogger()
	gate, err := auth.NewAPIKeyGate(routerKey, logger)
	require.NoError(t, err)

	cfg := RouterConfig{
		Articles:     artUC.Service{Repo: &memRepo{rows: map[int64]*repository.ArticleRecord{}}, Logger: logger},
		APIKey:       gate,
		Pool:         &stubPool{stats: sql.DBStats{MaxOpenConnections: 10}},
		CORS:         DefaultCORSConfig([]string{"*"}),
		MaxBodyBytes: 64,
		Version:      "test",
		Logger:       logger,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRouter(cfg)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_OperationalRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/", http.StatusOK, RootMessage},
		{"/health", http.StatusOK, `"healthy"`},
		{"/ready", http.StatusOK, `"database"`},
		{"/metrics", http.StatusOK, "http_requests_in_flight"},
		{DocsPath + "doc.json", http.StatusOK, "Article Inventory API"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	rec := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}

func TestRouter_ArticleLifecycle(t *testing.T) {
	h := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(`{"name":"Keyboard","brand":"Logi"}`))
	req.Header.Set(auth.HeaderAPIKey, routerKey)
	rec := serve(h, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/articles", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Keyboard", gjson.Get(rec.Body.String(), "active.0.name").String())

	req = httptest.NewRequest(http.MethodPatch, "/api/articles/1/deactivate", nil)
	req.Header.Set(auth.HeaderAPIKey, routerKey)
	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(`{"name":"Keyboard","brand":"Logi"}`))
	rec := serve(newTestRouter(t, nil), req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.MissingKeyMessage, gjson.Get(rec.Body.String(), "message").String())
}

func TestRouter_BodyTooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("k", 100) + `","brand":"Logi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(body))
	req.Header.Set(auth.HeaderAPIKey, routerKey)
	rec := serve(newTestRouter(t, nil), req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body exceeds 64 bytes", gjson.Get(rec.Body.String(), "message").String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/articles/1", nil)
	rec := serve(newTestRouter(t, nil), req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/articles/1", nil)
	req.Header.Set("Origin", "https://admin.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := serve(newTestRouter(t, nil), req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimited(t *testing.T) {
	h := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.Limiter = NewRateLimiter(0.001, 1, quietLogger())
	})

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
}
