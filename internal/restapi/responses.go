package restapi

import (
	"net/http"

	"pulseinsights.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.writeEnvelope(w, r, response.Code, response)
}

func (api *RestAPI) sendOK(w http.ResponseWriter, r *http.Request, data interface{}) {
	api.sendResponse(w, r, models.NewOKResponse(data))
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}
