package api

import (
	"log/slog"
	"net/http"
	"time"

	database "tasktracker/internal/adapter/database/sqlite"
	adapterhttp "tasktracker/internal/adapter/http"
	"tasktracker/internal/shared"
	"tasktracker/pkg"
)

func StartServer(metrics *shared.AppMetrics, logger *shared.LokiLogger) {
	StartServerWithConfig(metrics, logger, shared.GetDefaultConfig())
}

func StartServerWithConfig(metrics *shared.AppMetrics, logger *shared.LokiLogger, config *shared.AppConfig) {
	db, err := database.NewDB()

	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return
	}

	defer db.Close()

	container := adapterhttp.NewContainer(db, logger)

	router := SetupRouterWithConfig(HandlersConfig{
		AuthHandler: container.AuthHandler,
		TaskHandler: container.TaskHandler,
	}, metrics, logger, config)

	port := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", config.Environment,
		"rate_limit_enabled", config.RateLimitEnabled,
		"cache_enabled", config.CacheEnabled,
		"https_enforced", config.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
