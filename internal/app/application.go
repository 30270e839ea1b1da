package app

import (
	"log/slog"

	"pulseinsights.org/internal/appconf"
	"pulseinsights.org/pulsedb"
)

// Application holds the dependencies shared by the HTTP handlers, helpers
// and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	PulseDB *pulsedb.Client
}
