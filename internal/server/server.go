// Package server boots every subsystem and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/soutoura/soutoura/app/jobs"
	"github.com/soutoura/soutoura/app/routes"
	"github.com/soutoura/soutoura/config"
	"github.com/soutoura/soutoura/pkg/cache"
	"github.com/soutoura/soutoura/pkg/database"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/metrics"
	"github.com/soutoura/soutoura/pkg/middleware"
	"github.com/soutoura/soutoura/pkg/orm"
	"github.com/soutoura/soutoura/pkg/queue"
	"github.com/soutoura/soutoura/pkg/reqid"
	"github.com/soutoura/soutoura/pkg/response"
	"github.com/soutoura/soutoura/pkg/router"
	"github.com/soutoura/soutoura/pkg/storage"
)

// Start boots config, database, cache, storage, queue workers and the HTTP
// server, then blocks until ctx is cancelled and shuts down gracefully.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	} else {
		orm.CacheStore = cache.Store{}
	}

	storage.Connect()

	jobs.Init()
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, config.QueueWorkers())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler assembles the middleware stack and mounts all routes.
func buildHandler() http.Handler {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	routes.RegisterAPI(r)

	return r.Handler()
}
