package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// PathParam returns a path parameter with any ".json" suffix removed. Routes
// served by httprouter and by http.ServeMux patterns are both supported.
func PathParam(r *http.Request, name string) string {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	if raw == "" {
		raw = r.PathValue(name)
	}
	return strings.TrimSuffix(raw, ".json")
}
