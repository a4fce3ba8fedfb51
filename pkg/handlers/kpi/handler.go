package kpi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	kpisvc "github.com/de-tools/sales-atlas/pkg/services/kpi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	dashboard dashboard.Service
}

func NewHandler(dashboard dashboard.Service) *Handler {
	return &Handler{dashboard: dashboard}
}

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	periods, err := h.dashboard.Periods(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list periods")
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapDomainPeriodsToAPI(periods))
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	period := chi.URLParam(r, "period")

	var week *int
	if raw := r.URL.Query().Get("week"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 53 {
			writeError(w, r, http.StatusBadRequest, errors.New("invalid 'week'. Expected an ISO week between 1 and 53"))
			return
		}
		week = &n
	}

	snap, err := h.dashboard.Snapshot(ctx, period, week)
	if err != nil {
		status := statusFor(err)
		logger.Error().
			Err(err).
			Str("period", period).
			Int("status", status).
			Msg("failed to compute snapshot")
		writeError(w, r, status, err)
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapDomainSnapshotToAPI(snap))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrPeriodNotFound):
		return http.StatusNotFound
	case errors.Is(err, kpisvc.ErrInvalidPeriodConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
