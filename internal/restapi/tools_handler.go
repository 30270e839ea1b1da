package restapi

import (
	"net/http"
	"strconv"
	"strings"

	"pulseinsights.org/internal/logging"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/stats"
	"pulseinsights.org/internal/utils"
)

func (api *RestAPI) formatHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("value"))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"value": {"value must be a number"}})
		return
	}
	api.sendOK(w, r, numfmt.NewLabel(value))
}

func (api *RestAPI) boundsHandler(w http.ResponseWriter, r *http.Request) {
	samples, err := utils.ParseSamples(r.URL.Query().Get("values"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"values": {err.Error()}})
		return
	}

	summary, err := stats.Summarize(samples)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	logging.LogRangeEstimate(logging.FromContext(r.Context()), "ad_hoc", summary)

	api.sendOK(w, r, models.BoundsData{
		Typical: summary.Typical(),
		Bound:   summary.Bound(),
		Summary: summary,
	})
}
