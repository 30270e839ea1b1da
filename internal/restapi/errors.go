package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"pulseinsights.org/internal/logging"
	"pulseinsights.org/internal/models"
)

func (api *RestAPI) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, response interface{}) {
	setJSONResponseType(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err,
			slog.Int("status", status),
			slog.String("component", "restapi"))
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response. Its envelope
// carries version 1, unlike successful responses.
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	response := models.NewResponse(http.StatusUnauthorized, nil, "permission denied")
	response.Version = 1
	api.writeEnvelope(w, r, http.StatusUnauthorized, response)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "restapi"))

	response := models.NewResponse(http.StatusInternalServerError, nil, "internal server error")
	response.Version = 1
	api.writeEnvelope(w, r, http.StatusInternalServerError, response)
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}
	api.writeEnvelope(w, r, http.StatusBadRequest, response)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.writeEnvelope(w, r, http.StatusNotFound,
		models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}
