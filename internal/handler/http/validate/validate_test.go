package validate_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	"article-inventory/internal/observability/metrics"
)

/* ───────── fixtures ───────── */

type widget struct {
	Name  *string `json:"name" validate:"required,min=3,max=10"`
	Count *int    `json:"count" validate:"omitnil,max=5"`
}

func (w *widget) Normalize() {
	if w.Name != nil {
		s := strings.TrimSpace(*w.Name)
		w.Name = &s
	}
}

type recordingErrors struct{ err error }

func (e *recordingErrors) Handle(w http.ResponseWriter, r *http.Request, err error) {
	e.err = err
	respond.Message(w, respond.StatusOf(err), err.Error())
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func bodyGate(errs validate.ErrorHandler, seen *widget) http.Handler {
	schema := validate.NewStructSchema[widget](map[string]string{"name.min": "Widget name is too short."})
	return validate.Gate[widget](schema, validate.Body, errs, quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, ok := validate.Value[widget](r, validate.Body)
			if !ok {
				w.WriteHeader(http.StatusTeapot)
				return
			}
			*seen = v
			w.WriteHeader(http.StatusNoContent)
		}))
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(body)))
	return rec
}

/* ───────── body ───────── */

func TestGate_Body_Valid(t *testing.T) {
	var seen widget
	rec := post(bodyGate(&recordingErrors{}, &seen), `{"name":"  gear  ","count":2}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen.Name)
	assert.Equal(t, "gear", *seen.Name, "strings are trimmed before the handler")
	assert.Equal(t, 2, *seen.Count)
}

func TestGate_Body_Violations(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		code    string
		message string
	}{
		{"missing", `{}`, "name", validate.CodeInvalidType, "Required"},
		{"empty body", ``, "name", validate.CodeInvalidType, "Required"},
		{"too short after trim", `{"name":"  ab  "}`, "name", validate.CodeTooSmall, "Widget name is too short."},
		{"too long", `{"name":"abcdefghijk"}`, "name", validate.CodeTooBig, "String must contain at most 10 character(s)"},
		{"optional too big", `{"name":"gear","count":9}`, "count", validate.CodeTooBig, "Number must be less than or equal to 5"},
		{"wrong type", `{"name":42}`, "name", validate.CodeInvalidType, "Expected string, received number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.ValidationRejectionsTotal.WithLabelValues("body"))
			var seen widget
			rec := post(bodyGate(&recordingErrors{}, &seen), tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := rec.Body.String()
			assert.Equal(t, validate.FailedMessage, gjson.Get(body, "message").String())
			assert.Equal(t, tt.path, gjson.Get(body, "errors.0.path.0").String())
			assert.Equal(t, tt.code, gjson.Get(body, "errors.0.code").String())
			assert.Equal(t, tt.message, gjson.Get(body, "errors.0.message").String())
			assert.Nil(t, seen.Name, "handler must not run")
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.ValidationRejectionsTotal.WithLabelValues("body")))
		})
	}
}

type labelled struct {
	Name  *string `json:"name" validate:"required,min=3"`
	Brand *string `json:"brand" validate:"required,min=2"`
}

func TestStructSchema_ListsEveryFieldViolation(t *testing.T) {
	schema := validate.NewStructSchema[labelled](nil)

	tests := []struct {
		name string
		body string
		want []validate.Violation
	}{
		{
			name: "wrong type and missing field",
			body: `{"name":1}`,
			want: []validate.Violation{
				{Path: []string{"name"}, Code: validate.CodeInvalidType, Message: "Expected string, received number"},
				{Path: []string{"brand"}, Code: validate.CodeInvalidType, Message: "Required"},
			},
		},
		{
			name: "two wrong types",
			body: `{"name":true,"brand":["x"]}`,
			want: []validate.Violation{
				{Path: []string{"name"}, Code: validate.CodeInvalidType, Message: "Expected string, received bool"},
				{Path: []string{"brand"}, Code: validate.CodeInvalidType, Message: "Expected string, received array"},
			},
		},
		{
			name: "wrong type and too short",
			body: `{"NAME":"ab","brand":7}`,
			want: []validate.Violation{
				{Path: []string{"brand"}, Code: validate.CodeInvalidType, Message: "Expected string, received number"},
				{Path: []string{"name"}, Code: validate.CodeTooSmall, Message: "String must contain at least 3 character(s)"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := schema.Parse(validate.Fragment{Body: []byte(tt.body)})
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Violations)
		})
	}
}

func TestStructSchema_TopLevelTypeMismatch(t *testing.T) {
	res := validate.NewStructSchema[labelled](nil).Parse(validate.Fragment{Body: []byte(`[1,2]`)})

	require.NoError(t, res.Err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, []string{}, res.Violations[0].Path)
	assert.Equal(t, "Expected object, received array", res.Violations[0].Message)
}

func TestGate_Body_MalformedJSON(t *testing.T) {
	errs := &recordingErrors{}
	var seen widget
	rec := post(bodyGate(errs, &seen), `{"name":`)

	require.Error(t, errs.err)
	assert.Equal(t, http.StatusBadRequest, respond.StatusOf(errs.err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, seen.Name)
}

func TestGate_Body_TooLarge(t *testing.T) {
	errs := &recordingErrors{}
	var seen widget
	h := bodyGate(errs, &seen)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(bytes.Repeat([]byte("a"), 64)))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	h.ServeHTTP(rec, req)

	require.Error(t, errs.err)
	var maxErr *http.MaxBytesError
	assert.True(t, errors.As(errs.err, &maxErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

/* ───────── params ───────── */

func paramsMux(t *testing.T) (*http.ServeMux, *int64) {
	t.Helper()
	var seen int64 = -1
	mux := http.NewServeMux()
	mux.Handle("GET /things/{id}", validate.Gate(validate.IDSchema, validate.Params, &recordingErrors{}, quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = validate.Value[int64](r, validate.Params)
		})))
	return mux, &seen
}

func TestGate_Params(t *testing.T) {
	mux, seen := paramsMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), *seen)
}

func TestGate_Params_Invalid(t *testing.T) {
	for _, id := range []string{"abc", "12abc", "1.5"} {
		t.Run(id, func(t *testing.T) {
			mux, seen := paramsMux(t)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t,
				`{"message":"Validation failed","errors":[{"path":["id"],"message":"Article ID must be a valid number.","code":"custom"}]}`,
				rec.Body.String())
			assert.Equal(t, int64(-1), *seen)
		})
	}
}

/* ───────── query ───────── */

func TestGate_Query(t *testing.T) {
	tests := []struct {
		url       string
		wantName  *string
		wantExact bool
	}{
		{"/things", nil, false},
		{"/things?name=", nil, false},
		{"/things?name=Key", ptr("Key"), false},
		{"/things?name=Key&exactMatch=true", ptr("Key"), true},
		{"/things?name=Key&exactMatch=TRUE", ptr("Key"), false},
		{"/things?exactMatch=1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			var seen validate.ListQuery
			h := validate.Gate(validate.ListQuerySchema, validate.Query, &recordingErrors{}, quietLogger())(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					seen, _ = validate.Value[validate.ListQuery](r, validate.Query)
				}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantName, seen.Name)
			assert.Equal(t, tt.wantExact, seen.ExactMatch)
		})
	}
}

func TestGate_SchemaError(t *testing.T) {
	boom := errors.New("schema exploded")
	schema := validate.SchemaFunc[string](func(validate.Fragment) validate.Result[string] {
		return validate.Failed[string](boom)
	})
	errs := &recordingErrors{}
	called := false
	h := validate.Gate[string](schema, validate.Query, errs, quietLogger())(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, errs.err, boom)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
}

func TestValue_Missing(t *testing.T) {
	_, ok := validate.Value[int64](httptest.NewRequest(http.MethodGet, "/", nil), validate.Params)
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
