package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	t.Parallel()

	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeConflict:        http.StatusConflict,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeForbidden:       http.StatusForbidden,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnknown:         http.StatusInternalServerError,
		9999:                     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Fatalf("HTTPStatusCode(%d) = %d want %d", code, got, want)
		}
	}
}

func TestError_WrapAndWire(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render %q", nilErr.Error())
	}

	src := stderrs.New("connection reset")
	e := Wrapf(src, ErrorCodeDB, "list %s", "kaizens")
	if e.Error() != "list kaizens: connection reset" || !stderrs.Is(e, src) || CodeOf(e) != ErrorCodeDB {
		t.Fatalf("wrap got %v", e)
	}
	if w := WireFrom(e); w.Code != ErrorCodeDB || w.Message != "list kaizens" {
		t.Fatalf("wire got %+v", w)
	}
	if w := WireFrom(src); w.Code != ErrorCodeUnknown || w.Message != "connection reset" {
		t.Fatalf("foreign wire got %+v", w)
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil wire should be zero")
	}

	outer := fmt.Errorf("report kaizen_counters: %w", NotFoundf("league %s not found", "L9"))
	if !IsCode(outer, ErrorCodeNotFound) || HTTPStatus(outer) != http.StatusNotFound {
		t.Fatalf("code through fmt wrap got %v", CodeOf(outer))
	}
	if Root(fmt.Errorf("a: %w", fmt.Errorf("b: %w", src))) != src {
		t.Fatal("root")
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := InvalidArgf("snapshot: organization_id is not a uuid")
	tagged := WithField(base, "organization_id")
	if e, _ := As(tagged); e.Field() != "organization_id" {
		t.Fatalf("field got %q", e.Field())
	}
	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatal("foreign error should pass through")
	}
}

func TestCodeOf_ContextErrors(t *testing.T) {
	t.Parallel()

	if CodeOf(context.Canceled) != ErrorCodeUnavailable || CodeOf(fmt.Errorf("x: %w", context.DeadlineExceeded)) != ErrorCodeUnavailable {
		t.Fatal("context errors should be unavailable")
	}
	if HTTPStatus(context.Canceled) != http.StatusServiceUnavailable {
		t.Fatal("context status")
	}
}

func TestSugar(t *testing.T) {
	t.Parallel()

	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("x"),
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeDuplicateKey:    DuplicateKeyf("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeForbidden:       New(ErrorCodeForbidden, "x"),
	}
	for code, err := range cases {
		if !IsCode(err, code) {
			t.Fatalf("%v got %v", err, CodeOf(err))
		}
	}
}
