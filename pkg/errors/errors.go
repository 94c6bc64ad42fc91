package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// Well-known error references used across the dashboard.
const (
	RefFetchFailed   = "FETCH_FAILED"
	RefRepoNotFound  = "REPOSITORY_NOT_FOUND"
	RefStoreError    = "STORE_ERROR"
	RefStoreNotFound = "STORE_KEY_NOT_FOUND"
	RefOpInFlight    = "OPERATION_IN_FLIGHT"
	RefUnknown       = "UNKNOWN_ERROR"
)

type ApplicationError struct {
	Reference  string
	Title      string
	Detail     string
	RootCause  error
	Level      ErrorLevel
	HTTPStatus int
	OccurredAt time.Time
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:  ref,
		Title:      title,
		Detail:     detail,
		RootCause:  cause,
		Level:      level,
		OccurredAt: time.Now().UTC(),
	}
}

// FetchFailed marks a non-2xx response from a required GitHub endpoint. The
// upstream status is carried so handlers can surface it verbatim.
func FetchFailed(status int, statusText string) *ApplicationError {
	err := New(
		RefFetchFailed,
		"GitHub request failed",
		fmt.Sprintf("GitHub API returned %d %s", status, statusText),
		nil,
		LevelError,
	)
	err.HTTPStatus = status
	return err
}

// NotFound marks a local-consistency fault: the requested entity is absent
// from state already fetched, no network involved.
func NotFound(ref, what string) *ApplicationError {
	return New(ref, "Not found", what, nil, LevelInfo)
}

// Unknown wraps any unclassified failure inside a fetch sequence, passing the
// underlying message through.
func Unknown(cause error) *ApplicationError {
	return New(RefUnknown, "Unexpected error", "", cause, LevelError)
}

// IsRef reports whether err is an ApplicationError carrying the given reference.
func IsRef(err error, ref string) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.Reference == ref
}

type HTTPErrorResponse struct {
	Status    int       `json:"status"`
	ErrorRef  string    `json:"error_reference,omitempty"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    http.StatusInternalServerError,
		Title:     "An unexpected error occurred",
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
		resp.Detail = appErr.Detail

		switch {
		case appErr.HTTPStatus != 0:
			resp.Status = http.StatusBadGateway
		case appErr.Level == LevelInfo:
			resp.Status = http.StatusNotFound
		case appErr.Level == LevelWarning:
			resp.Status = http.StatusConflict
		case appErr.Level == LevelError:
			resp.Status = http.StatusBadRequest
		}
	} else {
		resp.Detail = err.Error()
	}

	logger.Error("%v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
