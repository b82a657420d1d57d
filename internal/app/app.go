package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/cvadnais/qr-tracker/internal/config"
	"github.com/cvadnais/qr-tracker/internal/repositories"
	"github.com/cvadnais/qr-tracker/internal/services"
)

type App struct {
	cfg *config.Config
	db  *gorm.DB
	log *slog.Logger
}

func New(cfg *config.Config, db *gorm.DB, log *slog.Logger) *App {
	return &App{cfg: cfg, db: db, log: log}
}

// Router wires repositories, services and handlers into the chi router.
// Returns an error only when the QR overlay is configured but unloadable.
func (a *App) Router() (http.Handler, error) {
	linkRepo := repositories.NewLinkRepo(a.db)
	clickRepo := repositories.NewClickRepo(a.db)

	codeSvc := services.NewCodeService(a.cfg.CodeLength)
	qrSvc, err := services.NewQRService(a.cfg.QR.OverlayPath, a.cfg.QR.OverlaySize)
	if err != nil {
		return nil, err
	}

	svc := services.NewLinkService(a.log, linkRepo, clickRepo, codeSvc, qrSvc, a.cfg.QR.Size)
	h := NewHandlers(a.log, a.cfg, svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(NewRequestLogger(a.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.Health)

	r.Route("/api", func(api chi.Router) {
		api.Post("/shorten", h.Shorten)
		api.Get("/urls", h.ListURLs)
		api.Get("/urls/{code}/stats", h.Stats)
		api.Get("/urls/{code}/clicks", h.Clicks)
	})

	r.Get("/r/{code}", h.Redirect)

	return r, nil
}

func (a *App) Run() error {
	router, err := a.Router()
	if err != nil {
		return err
	}

	a.log.Info("starting server", slog.String("address", a.cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         a.cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  a.cfg.HTTPServer.Timeout,
		WriteTimeout: a.cfg.HTTPServer.Timeout,
		IdleTimeout:  a.cfg.HTTPServer.IdleTimeout,
	}

	return srv.ListenAndServe()
}
