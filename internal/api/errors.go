package api

import (
	"context"
	"errors"
	"net/http"

	"fi-dashboard/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes. Data
// that exists but cannot be used maps to 422.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var load *domain.LoadError
	var schema *domain.SchemaError
	var dateParse *domain.DateParseError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &schema), errors.As(err, &dateParse), errors.As(err, &load):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Path    string   `json:"path,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Line    int      `json:"line,omitempty"`
}

// errorBody builds the response body for err. Internal errors are not echoed
// to the client.
func errorBody(status int, err error) Error {
	body := Error{Code: status, Message: err.Error()}
	if status == http.StatusInternalServerError {
		body.Message = "internal server error"
		return body
	}

	var notFound *domain.NotFoundError
	var load *domain.LoadError
	var schema *domain.SchemaError
	var dateParse *domain.DateParseError
	switch {
	case errors.As(err, &notFound):
		body.Path = notFound.Path
	case errors.As(err, &schema):
		body.Path = schema.Source
		body.Missing = schema.Missing
	case errors.As(err, &dateParse):
		body.Line = dateParse.Line
	case errors.As(err, &load):
		body.Path = load.Path
	}
	return body
}
