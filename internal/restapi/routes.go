package restapi

import (
	"net/http"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

// validateAPIKey rejects requests without a configured key, then applies the
// per key rate limit.
func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	limited := http.Handler(http.HandlerFunc(finalHandler))
	if api.rateLimiter != nil {
		limited = api.rateLimiter.Handler(limited)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	handle := func(pattern string, h handlerFunc) {
		mux.Handle("GET /api/pulse/"+pattern, validateAPIKey(api, h))
	}

	handle("dimensions.json", api.dimensionsHandler)
	handle("headline.json", api.headlineHandler)
	handle("trends/{dataset}", api.trendsHandler)

	handle("users/states.json", api.usersByStateHandler)
	handle("users/districts.json", api.usersByDistrictHandler)
	handle("users/pincodes.json", api.usersByPincodeHandler)
	handle("users/brands.json", api.brandTotalsHandler)
	handle("users/brands/{brand}", api.brandUsageHandler)
	handle("users/app-open-rates.json", api.appOpenRatesHandler)
	handle("users/underutilized.json", api.underutilizedBrandsHandler)
	handle("users/locations.json", api.userLocationsHandler)

	handle("transactions/states.json", api.transactionsByStateHandler)
	handle("transactions/types.json", api.transactionTypesHandler)
	handle("transactions/rankings/{level}", api.transactionRankingsHandler)
	handle("transactions/rising-districts.json", api.risingDistrictsHandler)
	handle("transactions/hierarchy.json", api.transactionHierarchyHandler)

	handle("insurance/locations.json", api.insuranceLocationsHandler)
	handle("insurance/priorities.json", api.insurancePrioritiesHandler)

	handle("format.json", api.formatHandler)
	handle("bounds.json", api.boundsHandler)
}
