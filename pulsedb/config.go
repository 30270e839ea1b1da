package pulsedb

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"pulseinsights.org/internal/appconf"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds configuration options for the Client
type Config struct {
	Driver  string // DriverMySQL or DriverSQLite
	DSN     string // data source name understood by the driver
	Env     appconf.Environment
	Migrate bool // apply the embedded schema on startup
	Logger  *slog.Logger
	verbose bool
}

// NewMySQLConfig builds a Config for the pulse MySQL database.
func NewMySQLConfig(host string, port int, user, password, dbName string) Config {
	conf := mysql.NewConfig()
	conf.Net = "tcp"
	conf.Addr = fmt.Sprintf("%s:%d", host, port)
	conf.User = user
	conf.Passwd = password
	conf.DBName = dbName
	conf.ParseTime = true
	conf.Loc = time.Local
	return Config{
		Driver: DriverMySQL,
		DSN:    conf.FormatDSN(),
	}
}

// NewSQLiteConfig builds a Config for a SQLite file, or ":memory:".
func NewSQLiteConfig(path string) Config {
	return Config{
		Driver:  DriverSQLite,
		DSN:     path,
		Migrate: true,
	}
}

// FromAppConfig derives the database configuration from the application config.
func FromAppConfig(cfg appconf.Config, logger *slog.Logger) Config {
	var dbc Config
	switch cfg.DBDriver {
	case DriverSQLite:
		dbc = NewSQLiteConfig(cfg.DBPath)
	default:
		dbc = NewMySQLConfig(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	}
	dbc.Env = cfg.Env
	dbc.Migrate = dbc.Migrate || cfg.Migrate
	dbc.Logger = logger
	dbc.verbose = cfg.Env != appconf.Production
	return dbc
}
