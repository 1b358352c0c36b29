// Package apierror normalizes failed storefront API responses into a single
// typed error carrying a user-facing message, the HTTP status, and per-field
// validation messages keyed by dotted field path.
package apierror

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a normalized API failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindValidation
	KindConflict
	KindPayload
	KindAuth
	KindNotFound
	KindRateLimit
	KindServer
	KindNetwork
)

// FieldErrors maps a dotted field path to its ordered validation messages.
type FieldErrors map[string][]string

// APIError is the normalized form of any failed backend call. It always
// carries Message and Status; FieldErrors is populated for validation and
// single-field conflict failures. Instances are never mutated after
// construction.
type APIError struct {
	Message     string
	Status      int
	FieldErrors FieldErrors
	// Data is the raw decoded response body, kept for caller inspection.
	Data map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// Kind reports the failure class of the error.
func (e *APIError) Kind() Kind {
	switch {
	case e.Status == http.StatusBadRequest && len(e.FieldErrors) > 0:
		return KindValidation
	case e.Status == http.StatusConflict:
		return KindConflict
	case e.Status == http.StatusRequestEntityTooLarge, e.Status == http.StatusUnsupportedMediaType:
		return KindPayload
	case e.Status == http.StatusUnauthorized:
		return KindAuth
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status == http.StatusTooManyRequests:
		return KindRateLimit
	case e.Status == http.StatusInternalServerError:
		return KindServer
	case e.Status == 0:
		return KindNetwork
	default:
		return KindGeneric
	}
}

const (
	uniqueConstraintMessage = "This entry already exists. Please use a different value."
	fileTooLargeMessage     = "File size too large. Maximum allowed size is 5MB."
	invalidFileTypeMessage  = "Invalid file type. Please upload a valid image file."
)

// FromResponse normalizes a failed HTTP response into an *APIError. It
// returns nil for 2xx responses; every other status yields a non-nil error,
// so callers can treat any returned error as terminal for the request.
func FromResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body := decodeBody(resp.Body)
	return FromStatus(resp.StatusCode, http.StatusText(resp.StatusCode), body)
}

// FromStatus builds the normalized error from an already-decoded body. It is
// the non-HTTP entry point for call paths that carry structurally equivalent
// data instead of a live response.
func FromStatus(status int, statusText string, body map[string]any) error {
	if body == nil {
		body = map[string]any{}
	}

	message, _ := body["message"].(string)
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, statusText)
	}

	params := errorParams(body)

	// Validation failures carry a nested field-error tree that is flattened
	// into dotted paths for form binding.
	if status == http.StatusBadRequest && params != nil {
		if rawFields, ok := params["field_errors"]; ok {
			fields := Flatten(rawFields)
			if len(fields) > 0 {
				message = validationMessage(fields)
			}
			return &APIError{Message: message, Status: status, FieldErrors: fields, Data: body}
		}
	}

	// Conflicts expose constraint metadata plus optional per-field messages.
	if status == http.StatusConflict && params != nil {
		if apiErr := conflictError(status, params, body); apiErr != nil {
			return apiErr
		}
		if constraintType, _ := params["constraint_type"].(string); constraintType == "unique" {
			message = uniqueConstraintMessage
		}
	}

	switch status {
	case http.StatusRequestEntityTooLarge:
		message = fileTooLargeMessage
	case http.StatusUnsupportedMediaType:
		message = invalidFileTypeMessage
	}

	return &APIError{Message: message, Status: status, Data: body}
}

// conflictError resolves a 409 whose params carry a field-level message.
// The reserved constraint keys are skipped; the first remaining string
// value wins, in lexicographic key order so the result is deterministic.
func conflictError(status int, params, body map[string]any) *APIError {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "constraint_type" || key == "constraint" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, ok := params[key].(string)
		if !ok {
			continue
		}
		return &APIError{
			Message:     value,
			Status:      status,
			FieldErrors: FieldErrors{key: {value}},
			Data:        body,
		}
	}
	return nil
}

// errorParams digs out body.error.params, tolerating any shape mismatch.
func errorParams(body map[string]any) map[string]any {
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		return nil
	}
	params, ok := errObj["params"].(map[string]any)
	if !ok {
		return nil
	}
	return params
}

// decodeBody drains and decodes a JSON response body. An unreadable or
// non-JSON body is treated as empty rather than failing the normalization.
func decodeBody(r io.Reader) map[string]any {
	if r == nil {
		return map[string]any{}
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return map[string]any{}
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

// validationMessage renders flattened field errors as a single sentence:
// "Validation failed: <field>: <messages>; <field>: <messages>".
func validationMessage(fields FieldErrors) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
