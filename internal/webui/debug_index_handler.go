package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"pulseinsights.org/internal/logging"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/utils"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"counts", "dimensions", "headline", "config"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

type redactedConfig struct {
	Env       string
	Port      int
	ApiKeys   int
	RateLimit int
	DBDriver  string
	DBHost    string
	DBPort    int
	DBName    string
	DBPath    string
	Migrate   bool
	Sample    bool
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       spew.Sdump(data),
		DataTypes: dataTypes,
	})
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render debug page", err,
			slog.String("component", "webui"))
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := utils.PathParam(r, "dataType")
	ctx := r.Context()

	var data interface{}
	var title string
	var err error

	switch dataType {
	case "counts":
		data, err = webUI.PulseDB.TableCounts(ctx)
		title = "Pulse Store - Table Counts"
	case "dimensions":
		dims := models.DimensionsData{}
		if dims.States, err = webUI.PulseDB.States(ctx); err == nil {
			if dims.Years, err = webUI.PulseDB.Years(ctx); err == nil {
				if dims.Quarters, err = webUI.PulseDB.Quarters(ctx); err == nil {
					dims.Districts, err = webUI.PulseDB.DistrictsByState(ctx)
				}
			}
		}
		data = dims
		title = "Pulse Store - Dimensions"
	case "headline":
		var users, txns, insurance int64
		if users, err = webUI.PulseDB.TotalRegisteredUsers(ctx); err == nil {
			if txns, err = webUI.PulseDB.TotalTransactions(ctx); err == nil {
				insurance, err = webUI.PulseDB.TotalInsuranceCount(ctx)
			}
		}
		data = models.NewHeadlineData(users, txns, insurance)
		title = "Pulse Store - Headline Totals"
	case "config":
		cfg := webUI.Config
		data = redactedConfig{
			Env:       cfg.Env.String(),
			Port:      cfg.Port,
			ApiKeys:   len(cfg.ApiKeys),
			RateLimit: cfg.RateLimit,
			DBDriver:  cfg.DBDriver,
			DBHost:    cfg.DBHost,
			DBPort:    cfg.DBPort,
			DBName:    cfg.DBName,
			DBPath:    cfg.DBPath,
			Migrate:   cfg.Migrate,
			Sample:    cfg.Sample,
		}
		title = "Application Config"
	default:
		data = map[string]string{
			"error": "Please use one of the following: counts, dimensions, headline, config.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		logging.LogError(logging.FromContext(ctx), "debug query failed", err,
			slog.String("data_type", dataType),
			slog.String("component", "webui"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	webUI.writeDebugData(w, r, title, data)
}
