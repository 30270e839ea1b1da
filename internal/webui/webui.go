package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"pulseinsights.org/internal/app"
)

// WebUI serves HTML debug pages over the shared application state.
type WebUI struct {
	*app.Application
}

func New(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}

// Handler routes /debug/:dataType. Paths outside /debug are answered by the
// router's 404.
func (webUI *WebUI) Handler() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/debug/:dataType", webUI.debugIndexHandler)
	router.RedirectTrailingSlash = false
	return router
}

// SetWebUIRoutes mounts the debug pages on mux.
func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.Handle("GET /debug/", webUI.Handler())
}
