package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/cache"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/database"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/infra/integration/ghl"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto status codes. Configuration
// problems and a rejected credential are terminal for the request; the
// page decides what to show.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validationErr usecase.ValidationError
	var domainErr *usecase.DomainError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &domainErr):
		status = http.StatusBadRequest
	case errors.Is(err, ghl.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ghl.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, ghl.ErrUnreachable):
		status = http.StatusBadGateway
	case errors.Is(err, entity.ErrEntryNotFound),
		errors.Is(err, entity.ErrMetricNotFound),
		errors.Is(err, entity.ErrAttemptNotFound),
		errors.Is(err, entity.ErrAssignmentNotFound),
		errors.Is(err, database.ErrProfileNotFound),
		errors.Is(err, cache.ErrNoPipelines):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateProspect):
		status = http.StatusConflict
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
