package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/time/rate"

	"github.com/yourusername/playersetup/setup"
	"github.com/yourusername/playersetup/web/handlers"
)

// App bundles the configuration and the long lived service components
type App struct {
	Logger     *logrus.Logger
	Config     config
	Normalizer *setup.Normalizer
	Cache      *cache
}

// NewApp wires the service components from cfg
func NewApp(cfg config, logger *logrus.Logger) *App {
	return &App{
		Logger: logger,
		Config: cfg,
		Normalizer: setup.New(cfg.Player.ScriptLocation,
			setup.WithLogger(logger),
			setup.WithSiteDefaults(cfg.Player.Defaults),
		),
		Cache: newCache(cfg.Server.CacheExpiration, logger),
	}
}

// Router builds the HTTP handler with all middleware attached
func (app *App) Router() *mux.Router {
	// Per client rate limiter
	clientRate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  app.Config.Server.RateLimit.PerClient,
	}
	clientLimiter := limiter.New(memory.NewStore(), clientRate)

	// Budget shared by all clients
	globalLimiter := rate.NewLimiter(rate.Limit(app.Config.Server.RateLimit.Global), app.Config.Server.RateLimit.GlobalBurst)

	r := mux.NewRouter()

	// Add security middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Security headers
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// CORS headers, embed pages call the API from any origin
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			// Rate limiting, keyed on the client address without its port
			context, err := clientLimiter.Get(r.Context(), clientLimiter.GetIPKey(r))
			if err != nil {
				app.Logger.WithError(err).Error("Rate limiter error")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))

			if context.Reached {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			if !globalLimiter.Allow() {
				app.Logger.WithField("remote_ip", r.RemoteAddr).Warn("Global request budget exhausted")
				http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Add request logging middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			app.Logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  r.RemoteAddr,
				"user_agent": r.UserAgent(),
				"duration":   time.Since(start),
			}).Info("Request processed")
		})
	})

	handlers.RegisterRoutes(r, &handlers.API{
		Normalizer: app.Normalizer,
		Cache:      app.Cache,
		Logger:     app.Logger,
	})

	return r
}

// Server starts the HTTP server and blocks until ctx is cancelled
func (app *App) Server(ctx context.Context) error {
	addr := app.Config.Server.Hostname

	app.Logger.WithFields(logrus.Fields{
		"addr":            addr,
		"script_location": app.Config.Player.ScriptLocation,
	}).Info("Starting server")

	// Add timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.Router(),
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go app.cleanCache(ctx)

	// Wait for context cancellation
	select {
	case err := <-errCh:
		return errors.Wrap(err, "server error")
	case <-ctx.Done():
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown error")
	}

	app.Logger.Info("Server stopped")
	return nil
}

// cleanCache periodically drops expired responses
func (app *App) cleanCache(ctx context.Context) {
	ticker := time.NewTicker(app.Config.Server.CacheExpiration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.Cache.CleanUp()
		}
	}
}
