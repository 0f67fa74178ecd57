package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"davechat/pkg/api"
)

type codedError struct {
	err    error
	status int
	field  string
	code   string
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(status int, err error) error {
	return &codedError{err: err, status: status}
}

func CodedErrorf(status int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), status: status}
}

// ConflictError reports a duplicate registration field as a 409 naming the
// offending column.
func ConflictError(field, message string) error {
	return &codedError{err: errors.New(message), status: http.StatusConflict, field: field}
}

// QuotaError is the 403 returned when a guest exhausts the free allowance.
func QuotaError(limit int) error {
	return &codedError{
		err:    fmt.Errorf("You've reached your limit of %d free messages. Please log in for unlimited access.", limit),
		status: http.StatusForbidden,
		code:   "LIMIT_EXCEEDED",
	}
}

func ParseRequest[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		slog.Error("error parsing request body", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request body")
	}
	return data, nil
}

func ParseRequestQueryParams[T any](r *http.Request) (T, error) {
	var data T
	if err := r.ParseForm(); err != nil {
		slog.Error("error parsing form", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&data, r.Form); err != nil {
		slog.Error("error decoding query params", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	return data, nil
}

// statusResponse wraps a body that should go out with a non-200 success
// status, e.g. 201 from /register.
type statusResponse struct {
	status int
	body   any
}

func Created(body any) any {
	return statusResponse{status: http.StatusCreated, body: body}
}

func RestHandler(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			var cerr *codedError
			if errors.As(err, &cerr) {
				if cerr.status == http.StatusInternalServerError {
					slog.Error("internal server error received in endpoint", "error", err)
				}
				writeErrorResponse(w, cerr.status, api.ErrorResponse{
					Error: cerr.Error(),
					Field: cerr.field,
					Code:  cerr.code,
				})
			} else {
				// Uncoded errors carry unknown detail; log it and keep the
				// response generic.
				slog.Error("received non coded error from endpoint", "error", err)
				writeErrorResponse(w, http.StatusInternalServerError, api.ErrorResponse{
					Error: "internal server error",
				})
			}
			return
		}

		if sr, ok := res.(statusResponse); ok {
			writeJsonResponse(w, sr.status, sr.body)
			return
		}

		if res == nil {
			res = struct{}{}
		}
		writeJsonResponse(w, http.StatusOK, res)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, body api.ErrorResponse) {
	writeJsonResponse(w, status, body)
}

func writeJsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error serializing response body", "error", err)
	}
}
