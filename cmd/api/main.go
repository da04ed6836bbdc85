package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/app"
	"campus.hyuabot.org/internal/appconf"
	"campus.hyuabot.org/internal/holidays"
	"campus.hyuabot.org/internal/logging"
	"campus.hyuabot.org/internal/restapi"
	"campus.hyuabot.org/internal/timetable"
	"campus.hyuabot.org/internal/webui"
)

func main() {
	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if err := run(logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// A .env file may supply defaults for the flags below. Missing is fine.
	_ = godotenv.Load()

	fileCfg, err := appconf.LoadFileConfig(appconf.GetEnv("CONFIG_PATH", "config.yml"))
	if err != nil {
		return err
	}

	cfg, err := parseFlags(fileCfg)
	if err != nil {
		return err
	}

	loc, err := cfg.CampusLocation()
	if err != nil {
		return err
	}

	client, err := campusdb.NewClient(campusdb.NewConfig(cfg.DBPath, cfg.Env, true))
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(client, logger, "campus_database")

	if cfg.BusGTFS != "" {
		if err := importBusGTFS(client, cfg.BusGTFS, logger); err != nil {
			logger.Error("failed to import bus GTFS feed", "source", cfg.BusGTFS, "error", err)
		}
	}

	cal, err := holidays.NewCalendar(loc)
	if err != nil {
		return err
	}

	application := &app.Application{
		Config:    cfg,
		Logger:    logger,
		DataStore: client,
		Holidays:  cal,
		Resolver:  timetable.NewResolver(client.Queries, cal, loc),
		Location:  loc,
	}

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	mux := http.NewServeMux()
	webui.NewWebUI(application).SetWebUIRoutes(mux)
	mux.Handle("/", api.Router())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Middleware(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "timezone", loc.String())
	return srv.ListenAndServe()
}

// parseFlags builds the runtime config. Flags win over config.yml values,
// which in turn win over built-in defaults.
func parseFlags(fileCfg *appconf.FileConfig) (appconf.Config, error) {
	var cfg appconf.Config
	var envFlag, apiKeysFlag string

	port := fileCfg.Server.Port
	if port == 0 {
		port = 4000
	}
	rateLimit := fileCfg.Server.RateLimit
	if rateLimit == 0 {
		rateLimit = 100
	}
	dbPath := fileCfg.DBPath
	if dbPath == "" {
		dbPath = appconf.GetEnv("CAMPUS_DB_PATH", "campus.db")
	}

	flag.IntVar(&cfg.Port, "port", port, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", appconf.GetEnv("API_KEYS", "test"), "Comma separated API keys")
	flag.StringVar(&cfg.DBPath, "db-path", dbPath, "Path of the SQLite campus database")
	flag.StringVar(&cfg.Timezone, "timezone", fileCfg.Timezone, "Campus timezone (default Asia/Seoul)")
	flag.StringVar(&cfg.BusGTFS, "bus-gtfs", fileCfg.BusGTFS, "URL or path of a city-bus GTFS zip to import on startup")
	flag.IntVar(&cfg.RateLimit, "rate-limit", rateLimit, "Requests per second allowed per API key")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	cfg.ApiKeys = fileCfg.ApiKeys
	if apiKeysFlag != "" {
		cfg.ApiKeys = strings.Split(apiKeysFlag, ",")
		for i := range cfg.ApiKeys {
			cfg.ApiKeys[i] = strings.TrimSpace(cfg.ApiKeys[i])
		}
	}
	if len(cfg.ApiKeys) == 0 {
		return cfg, fmt.Errorf("at least one API key is required")
	}

	return cfg, nil
}

// importBusGTFS loads a GTFS zip from a local path or an http(s) URL and
// mirrors it into the bus tables.
func importBusGTFS(client *campusdb.Client, source string, logger *slog.Logger) error {
	var data []byte

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return fmt.Errorf("error downloading GTFS feed: %w", err)
		}
		defer logging.SafeCloseWithLogging(resp.Body, logger, "gtfs_download_body")

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("error downloading GTFS feed: unexpected status %d", resp.StatusCode)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("error reading GTFS feed: %w", err)
		}
	} else {
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("error reading GTFS file: %w", err)
		}
	}

	return client.ImportBusGTFS(context.Background(), data)
}
