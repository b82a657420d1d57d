package app

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/cvadnais/qr-tracker/internal/config"
	"github.com/cvadnais/qr-tracker/internal/dtos"
	"github.com/cvadnais/qr-tracker/internal/lib/api/response"
	"github.com/cvadnais/qr-tracker/internal/lib/logger/sl"
	"github.com/cvadnais/qr-tracker/internal/repositories"
	"github.com/cvadnais/qr-tracker/internal/services"
	"github.com/cvadnais/qr-tracker/internal/utils"
)

type Handlers struct {
	log *slog.Logger
	cfg *config.Config
	svc *services.LinkService
}

func NewHandlers(log *slog.Logger, cfg *config.Config, svc *services.LinkService) *Handlers {
	return &Handlers{log: log, cfg: cfg, svc: svc}
}

// Shorten creates a link and answers with JSON carrying a data-URI QR,
// or with the raw PNG when the client asks for image/png.
func (h *Handlers) Shorten(w http.ResponseWriter, r *http.Request) {
	const op = "app.handlers.Shorten"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req dtos.ShortenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.NewJSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	if err := validator.New().Struct(req); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.NewJSON(w, r, http.StatusBadRequest, response.Error("url is required"))
		return
	}

	result, err := h.svc.CreateShortLink(req.URL, h.cfg.BaseURL)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		response.NewJSON(w, r, http.StatusBadRequest, response.Error("url is required"))
		return
	case errors.Is(err, services.ErrCodeSpaceExhausted):
		log.Error("code space exhausted")
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("could not create link"))
		return
	case err != nil:
		log.Error("create failed", sl.Err(err))
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("could not create link"))
		return
	}

	log.Info("link created", slog.String("code", result.Code))

	if strings.Contains(r.Header.Get("Accept"), "image/png") {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusCreated)
		w.Write(result.PNG)
		return
	}

	response.NewJSON(w, r, http.StatusCreated, dtos.ShortenResponse{
		Code:     result.Code,
		ShortURL: result.ShortURL,
		QRBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(result.PNG),
	})
}

// Redirect resolves a code, records the click and 302s to the
// destination. An unknown code is a hard 404, never a fallback redirect.
func (h *Handlers) Redirect(w http.ResponseWriter, r *http.Request) {
	const op = "app.handlers.Redirect"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := chi.URLParam(r, "code")
	if code == "" {
		http.NotFound(w, r)
		return
	}

	dest, err := h.svc.Resolve(code, r.UserAgent(), utils.ClientAddr(r))
	if errors.Is(err, repositories.ErrLinkNotFound) {
		log.Info("code not found", slog.String("code", code))
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Error("resolve failed", sl.Err(err))
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("internal error"))
		return
	}

	http.Redirect(w, r, dest, http.StatusFound)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "app.handlers.Stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := chi.URLParam(r, "code")

	stats, err := h.svc.Stats(code)
	if errors.Is(err, repositories.ErrLinkNotFound) {
		response.NewJSON(w, r, http.StatusNotFound, response.Error("not found"))
		return
	}
	if err != nil {
		log.Error("stats failed", sl.Err(err))
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("internal error"))
		return
	}

	response.NewJSON(w, r, http.StatusOK, dtos.StatsResponse{
		URL:    stats.Destination,
		Clicks: stats.Clicks,
	})
}

// Clicks lists the raw ledger entries for one code, oldest first.
func (h *Handlers) Clicks(w http.ResponseWriter, r *http.Request) {
	const op = "app.handlers.Clicks"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := chi.URLParam(r, "code")

	events, err := h.svc.ClicksForCode(code)
	if errors.Is(err, repositories.ErrLinkNotFound) {
		response.NewJSON(w, r, http.StatusNotFound, response.Error("not found"))
		return
	}
	if err != nil {
		log.Error("clicks listing failed", sl.Err(err))
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("internal error"))
		return
	}

	out := make([]dtos.ClickItem, 0, len(events))
	for _, e := range events {
		out = append(out, dtos.ClickItem{
			Timestamp:  e.CreatedAt,
			UserAgent:  e.UserAgent,
			ClientAddr: e.ClientAddr,
		})
	}

	response.NewJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) ListURLs(w http.ResponseWriter, r *http.Request) {
	const op = "app.handlers.ListURLs"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	links, err := h.svc.ListAll()
	if err != nil {
		log.Error("list failed", sl.Err(err))
		response.NewJSON(w, r, http.StatusInternalServerError, response.Error("internal error"))
		return
	}

	out := make([]dtos.LinkListItem, 0, len(links))
	for _, l := range links {
		out = append(out, dtos.LinkListItem{
			Code:      l.Code,
			ShortURL:  strings.TrimRight(h.cfg.BaseURL, "/") + "/r/" + l.Code,
			URL:       l.Destination,
			Clicks:    l.Clicks,
			CreatedAt: l.CreatedAt,
		})
	}

	response.NewJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("Backend is alive"))
}
