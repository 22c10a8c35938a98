package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ledgerlab/pointd/internal/api/httpx"
	"github.com/ledgerlab/pointd/internal/api/validate"
	"github.com/ledgerlab/pointd/internal/config"
	"github.com/ledgerlab/pointd/internal/metrics"
	"github.com/ledgerlab/pointd/internal/middleware"
	"github.com/ledgerlab/pointd/internal/models"
	"github.com/ledgerlab/pointd/internal/services"
)

// NewRouter wires the HTTP surface. am may be nil, in which case the
// mutating endpoints are open.
func NewRouter(cfg config.Config, svc *services.PointService, am *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/points/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseUserID(w, r)
			if !ok {
				return
			}
			p, err := svc.Point(id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})

		r.Get("/points/{id}/histories", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseUserID(w, r)
			if !ok {
				return
			}
			hs, err := svc.Histories(id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if hs == nil {
				hs = []models.PointHistory{}
			}
			httpx.WriteJSON(w, http.StatusOK, hs)
		})

		r.Get("/points/{id}/audit", func(w http.ResponseWriter, r *http.Request) {
			id, ok := parseUserID(w, r)
			if !ok {
				return
			}
			ls, err := svc.AuditTrail(id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if ls == nil {
				ls = []models.AuditLog{}
			}
			httpx.WriteJSON(w, http.StatusOK, ls)
		})

		r.Group(func(r chi.Router) {
			if am != nil {
				r.Use(am.Auth)
			}

			r.Patch("/points/{id}/charge", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseUserID(w, r)
				if !ok {
					return
				}
				amount, ok := decodeAmount(w, r)
				if !ok {
					return
				}
				slog.Info("charge requested", "user_id", id, "amount", amount, "request_id", middleware.RequestIDFrom(r.Context()))
				p, err := svc.Charge(id, amount)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				slog.Info("charge committed", "user_id", p.ID, "point", p.Point)
				httpx.WriteJSON(w, http.StatusOK, p)
			})

			r.Patch("/points/{id}/use", func(w http.ResponseWriter, r *http.Request) {
				id, ok := parseUserID(w, r)
				if !ok {
					return
				}
				amount, ok := decodeAmount(w, r)
				if !ok {
					return
				}
				slog.Info("use requested", "user_id", id, "amount", amount, "request_id", middleware.RequestIDFrom(r.Context()))
				p, err := svc.Use(id, amount)
				if err != nil {
					writeServiceError(w, err)
					return
				}
				slog.Info("use committed", "user_id", p.ID, "point", p.Point)
				httpx.WriteJSON(w, http.StatusOK, p)
			})
		})
	})

	return r
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ef := validate.ParseID("id", chi.URLParam(r, "id"))
	if ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid user id", validate.Errs{*ef})
		return 0, false
	}
	return id, true
}

func decodeAmount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return 0, false
	}
	return req.Amount, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
	case errors.Is(err, services.ErrInsufficientPoints):
		httpx.WriteError(w, http.StatusBadRequest, "insufficient_points", err.Error(), nil)
	case errors.Is(err, services.ErrPointOverflow):
		httpx.WriteError(w, http.StatusUnprocessableEntity, "point_overflow", err.Error(), nil)
	default:
		slog.Error("point operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
