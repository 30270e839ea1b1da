package restapi

import (
	"errors"
	"net/http"

	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/utils"
	"pulseinsights.org/pulsedb"
)

func (api *RestAPI) headlineHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := api.PulseDB.TotalRegisteredUsers(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	transactions, err := api.PulseDB.TotalTransactions(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	insurance, err := api.PulseDB.TotalInsuranceCount(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendOK(w, r, models.NewHeadlineData(users, transactions, insurance))
}

func (api *RestAPI) trendsHandler(w http.ResponseWriter, r *http.Request) {
	dataset, err := pulsedb.ParseDataset(utils.PathParam(r, "dataset"))
	if err != nil {
		api.sendNotFound(w, r)
		return
	}

	points, err := api.PulseDB.Trends(r.Context(), dataset)
	if errors.Is(err, pulsedb.ErrUnknownDataset) {
		api.sendNotFound(w, r)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	data := models.TrendData{Dataset: string(dataset), Points: make([]models.TrendEntry, 0, len(points))}
	for _, p := range points {
		data.Points = append(data.Points, models.TrendEntry{
			Year:    p.Year,
			Quarter: p.Quarter,
			Count:   numfmt.NewLabel(float64(p.Count)),
			Amount:  numfmt.NewLabel(p.Amount),
		})
	}
	api.sendOK(w, r, data)
}
