package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"article-inventory/internal/handler/http/respond"
)

// Normalizer is implemented by bodies that clean their own fields (for
// example trimming strings) before the validation rules run.
type Normalizer interface {
	Normalize()
}

// StructSchema decodes a JSON body into T and checks its `validate` tags.
// Messages overrides violation messages by "field.tag", e.g. "name.min".
type StructSchema[T any] struct {
	Messages map[string]string
	v        *validator.Validate
}

// NewStructSchema builds a schema for T. Field paths use the json tag names.
func NewStructSchema[T any](messages map[string]string) *StructSchema[T] {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := jsonFieldName(f)
		if name == "-" {
			return ""
		}
		return name
	})
	return &StructSchema[T]{Messages: messages, v: v}
}

// Parse reports every field violation at once: a field holding the wrong
// JSON type is listed alongside the tag violations of the other fields.
func (s *StructSchema[T]) Parse(in Fragment) Result[T] {
	var out T
	var typeVs []Violation

	if len(bytes.TrimSpace(in.Body)) > 0 {
		if err := json.Unmarshal(in.Body, &out); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return Failed[T](respond.NewHTTPError(http.StatusBadRequest, "Malformed JSON body", err))
			}
			vs, ok := decodeFields(in.Body, &out)
			if !ok {
				return Invalid[T](typeViolation(typeErr))
			}
			typeVs = vs
		}
	}

	if n, ok := any(&out).(Normalizer); ok {
		n.Normalize()
	}

	vs := typeVs
	if err := s.v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Failed[T](err)
		}
		mistyped := make(map[string]bool, len(typeVs))
		for _, v := range typeVs {
			mistyped[v.Path[0]] = true
		}
		for _, fe := range verrs {
			v := s.violation(fe)
			if len(v.Path) > 0 && mistyped[v.Path[0]] {
				continue
			}
			vs = append(vs, v)
		}
	}
	if len(vs) > 0 {
		return Invalid[T](vs...)
	}

	return Valid(out)
}

// decodeFields decodes a JSON object into the struct behind out one field at a
// time. Fields with the wrong JSON type stay zero and come back as
// violations. ok is false when body is not an object or out is not a struct.
func decodeFields(body []byte, out any) (vs []Violation, ok bool) {
	rv := reflect.ValueOf(out).Elem()
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false
	}

	rv.SetZero()
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := jsonFieldName(f)
		if name == "-" {
			continue
		}
		msg, found := rawField(raw, name)
		if !found {
			continue
		}
		dst := reflect.New(f.Type)
		if err := json.Unmarshal(msg, dst.Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, false
			}
			v := typeViolation(typeErr)
			v.Path = append([]string{name}, v.Path...)
			vs = append(vs, v)
			continue
		}
		rv.FieldByIndex(f.Index).Set(dst.Elem())
	}
	return vs, len(vs) > 0
}

// rawField looks a key up the way encoding/json matches fields: exact name
// first, then case-insensitively.
func rawField(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if msg, ok := raw[name]; ok {
		return msg, true
	}
	for k, msg := range raw {
		if strings.EqualFold(k, name) {
			return msg, true
		}
	}
	return nil, false
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func (s *StructSchema[T]) violation(fe validator.FieldError) Violation {
	path := fieldPath(fe.Namespace())
	v := Violation{Path: path, Code: CodeCustom, Message: fe.Error()}

	switch fe.Tag() {
	case "required":
		v.Code = CodeInvalidType
		v.Message = "Required"
	case "min":
		v.Code = CodeTooSmall
		v.Message = boundMessage(fe.Kind(), "at least", "greater than or equal to", fe.Param())
	case "max":
		v.Code = CodeTooBig
		v.Message = boundMessage(fe.Kind(), "at most", "less than or equal to", fe.Param())
	}

	if msg, ok := s.Messages[strings.Join(path, ".")+"."+fe.Tag()]; ok {
		v.Message = msg
	}
	return v
}

func boundMessage(kind reflect.Kind, strBound, numBound, param string) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("String must contain %s %s character(s)", strBound, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("Must contain %s %s element(s)", strBound, param)
	default:
		return fmt.Sprintf("Number must be %s %s", numBound, param)
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		return parts[1:]
	}
	return parts
}

func typeViolation(e *json.UnmarshalTypeError) Violation {
	var path []string
	if e.Field != "" {
		path = strings.Split(e.Field, ".")
	} else {
		path = []string{}
	}
	return Violation{
		Path:    path,
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("Expected %s, received %s", jsonKind(e.Type), e.Value),
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
