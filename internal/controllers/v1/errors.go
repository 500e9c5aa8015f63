package v1

import (
	"errors"
	"net/http"

	"github.com/finanzas-app/backend/internal/advice"
	"github.com/finanzas-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, advice.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}

	if errors.Is(err, advice.ErrUnprocessable) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

var (
	errUserParameter = errors.New("the user parameter must be set")
	errNoSnapshot    = errors.New("there is no health score for this month yet, request the health score first")
)
