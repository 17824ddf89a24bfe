package ui

import (
	"context"
	"errors"
	"net/http"

	"fi-dashboard/internal/domain"
	"fi-dashboard/internal/middleware"
)

// renderServiceError replaces the whole page with an error page. Typed
// domain errors show their message; anything else is logged, and its
// message is hidden in production.
func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while loading this page."

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var schema *domain.SchemaError
	var dateParse *domain.DateParseError
	var load *domain.LoadError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		title = "Not Found"
		message = notFound.Error()
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	case errors.As(err, &schema):
		status = http.StatusUnprocessableEntity
		title = "Invalid Dataset"
		message = schema.Error()
	case errors.As(err, &dateParse):
		status = http.StatusUnprocessableEntity
		title = "Invalid Dataset"
		message = dateParse.Error()
	case errors.As(err, &load):
		status = http.StatusUnprocessableEntity
		title = "Failed to Load Data"
		message = load.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		title = "Timed Out"
		message = "Loading the data took too long."
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error("render page failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err)
	}
	if status == http.StatusInternalServerError && !h.Production {
		message = err.Error()
	}
	renderHTML(w, status, errorPage(title, message))
}
