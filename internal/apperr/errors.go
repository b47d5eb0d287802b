package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Invalid is returned when input fails presence validation.
var Invalid = errors.New("invalid input")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Unauthorized indicates a missing, expired or rejected session.
var Unauthorized = errors.New("unauthorized")

// Conflict indicates a state conflict reported by the backend.
var Conflict = errors.New("conflict")

// Transport marks network-level failures: the request never got an answer.
var Transport = errors.New("transport failure")

// Upstream marks non-2xx answers from the Ruru API.
var Upstream = errors.New("upstream error")

// APIError is a non-2xx response from the Ruru API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Is lets errors.Is match an APIError against the sentinel for its status.
func (e *APIError) Is(target error) bool {
	switch target {
	case Upstream:
		return true
	case Unauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case NotFound:
		return e.Status == http.StatusNotFound
	case Conflict:
		return e.Status == http.StatusConflict
	case Invalid:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// MsgRequired is the per-field message for a missing value.
const MsgRequired = "This field is required."

// FieldErrors carries per-field validation messages keyed by form field name.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid input: " + strings.Join(keys, ", ")
}

// Is makes FieldErrors match Invalid.
func (fe FieldErrors) Is(target error) bool { return target == Invalid }

// Message reduces any error to the single human-readable string shown in
// the error banner.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if fe[k] != MsgRequired {
				return fe[k]
			}
		}
		return "Please fill in all required fields."
	}
	var ae *APIError
	if errors.As(err, &ae) {
		switch {
		case ae.Message != "":
			return ae.Message
		case ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden:
			return "Your session has expired. Please log in again."
		case ae.Status == http.StatusNotFound:
			return "The requested record was not found."
		default:
			return "The server could not process the request. Please try again."
		}
	}
	switch {
	case errors.Is(err, Transport):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, Unauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, Invalid):
		return "Please fill in all required fields."
	case errors.Is(err, NotFound):
		return "The requested record was not found."
	case errors.Is(err, Conflict):
		return "This action is no longer available for the record."
	}
	return "Something went wrong. Please try again."
}
