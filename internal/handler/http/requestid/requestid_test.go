package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-inventory/internal/handler/http/requestid"
)

func serve(t *testing.T, incoming string) (header, seen string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header().Get(requestid.Header), seen
}

func TestMiddleware_Generates(t *testing.T) {
	header, seen := serve(t, "")
	require.NotEmpty(t, header)
	assert.Equal(t, header, seen)

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestMiddleware_PropagatesValidID(t *testing.T) {
	header, seen := serve(t, "client-req-42")
	assert.Equal(t, "client-req-42", header)
	assert.Equal(t, "client-req-42", seen)
}

func TestMiddleware_ReplacesInvalidID(t *testing.T) {
	for name, id := range map[string]string{
		"too long":  strings.Repeat("a", 129),
		"has space": "abc def",
		"non ascii": "идентификатор",
	} {
		t.Run(name, func(t *testing.T) {
			header, _ := serve(t, id)
			assert.NotEqual(t, id, header)
			_, err := uuid.Parse(header)
			assert.NoError(t, err)
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	assert.Empty(t, requestid.FromContext(context.Background()))
}
