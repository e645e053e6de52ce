package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgconfig"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgrouter"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgroutine"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkguid"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// configPath resolves the config file: CONFIG_PATH wins, then LOCAL=true
// selects the repository copy, otherwise the container mount is used.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := pkgconfig.NewViper(configPath())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	if tz := cfg.GetString("tz"); tz != "" {
		//nolint:errcheck,gosec // ignore error
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	var (
		sf  *pkguid.Snowflake
		err error
	)
	if nodeID := a.config.GetInt("treasury.node_id"); nodeID > 0 {
		sf, err = pkguid.NewSnowflakeNode(nodeID)
	} else {
		sf, err = pkguid.NewSnowflake()
	}
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	readHeader := a.config.GetDuration("server.timeout.read_header")
	if readHeader <= 0 {
		readHeader = 10 * time.Second
	}

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: readHeader,
		WriteTimeout:      a.config.GetDuration("server.timeout.write"),
	}
}

func (a *App) initClosers() {
	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
