package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"paiefacile/internal/domain/core"
	"paiefacile/internal/domain/payroll"
	"paiefacile/internal/platform/config"
	"paiefacile/internal/platform/db"
	"paiefacile/internal/transport/http/api"
	authhandler "paiefacile/internal/transport/http/handlers/auth"
	corehandler "paiefacile/internal/transport/http/handlers/core"
	documentshandler "paiefacile/internal/transport/http/handlers/documents"
	payrollhandler "paiefacile/internal/transport/http/handlers/payroll"
	uploadshandler "paiefacile/internal/transport/http/handlers/uploads"
	"paiefacile/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New builds a fully wired application: database pool, migrations and
// seed data when enabled, and the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, DB: pool}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	coreStore := core.NewStore(a.DB)
	payrollStore := payroll.NewStore(a.DB)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		authhandler.NewHandler(coreStore, a.Config.JWTSecret).RegisterRoutes(r)
		corehandler.NewHandler(coreStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollStore).RegisterRoutes(r)
		documentshandler.NewHandler(coreStore, payrollStore, a.Config.UploadsDir).RegisterRoutes(r)
		uploadshandler.NewHandler(a.Config.UploadsDir, a.Config.PublicBaseURL).RegisterRoutes(r)
	})

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", filesOnly(http.FileServer(http.Dir(a.Config.UploadsDir)))))

	return router
}

// filesOnly serves files but never directory listings.
func filesOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.DB.Ping(ctx); err != nil {
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "Database connection failed",
		})
		return
	}

	api.JSON(w, map[string]string{
		"status":    "ok",
		"message":   "Database connected successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run wires the application from the environment and serves until the
// process exits.
func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("PaieFacile server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
