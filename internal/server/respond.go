package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/finadvisor/finadvisor/internal/advisor"
	"github.com/finadvisor/finadvisor/internal/budget"
	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/output"
	"github.com/finadvisor/finadvisor/internal/storage"
)

const maxJSONBody = 1 << 20

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, calculation.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, budget.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, budget.ErrDuplicate), errors.Is(err, budget.ErrLastCategory):
		return http.StatusConflict
	case errors.Is(err, budget.ErrInvalidName),
		errors.Is(err, budget.ErrInvalidLimit),
		errors.Is(err, budget.ErrInvalidDuration),
		errors.Is(err, storage.ErrMissingFile),
		errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrTooLarge),
		errors.Is(err, advisor.ErrEmptyQuestion),
		errors.Is(err, output.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, advisor.ErrUnavailable), errors.Is(err, errUploadsDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps internal failure detail out of responses.
func publicMessage(status int, err error) string {
	switch {
	case status == http.StatusInternalServerError:
		return "Internal server error"
	case errors.Is(err, storage.ErrUnsupportedType):
		return "Only PDF files are allowed"
	case errors.Is(err, storage.ErrMissingFile):
		return "No file provided"
	case errors.Is(err, advisor.ErrEmptyQuestion):
		return "Question is required"
	default:
		return err.Error()
	}
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error().Err(err).Str("request_id", RequestIDFrom(r.Context())).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, publicMessage(status, err))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

// field is a form value sent either as a JSON string or a JSON number.
// Null and absent values decode to the empty string.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("field must be a string or number, got %s", b)
		}
		*f = field(b)
	}
	return nil
}

func (f field) String() string { return string(f) }

// formValue is a calculator form field. Strings and numbers keep their text;
// any other JSON value decodes to the empty string and is coerced to zero.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	var f field
	if err := f.UnmarshalJSON(b); err != nil {
		*v = ""
		return nil
	}
	*v = formValue(f)
	return nil
}

func (v formValue) String() string { return string(v) }
