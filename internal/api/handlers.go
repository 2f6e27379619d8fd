package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/star/orbitalik/internal/httputil"
	"github.com/star/orbitalik/internal/metrics"
	"github.com/star/orbitalik/internal/report"
	"github.com/star/orbitalik/internal/service"
	"github.com/star/orbitalik/internal/tle"
)

// Refresher replaces the active TLE dataset on demand.
type Refresher interface {
	Refresh(ctx context.Context) (*tle.TLEDataset, error)
}

type handlers struct {
	svc        *service.Service
	refresher  Refresher
	limiter    *limiter
	trustProxy bool
	logger     *slog.Logger
	now        func() time.Time
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidParam), errors.Is(err, service.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, tle.ErrSatelliteNotFound):
		return http.StatusNotFound
	case errors.Is(err, tle.ErrTLELoading),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// limited wraps an expensive handler with the per-client concurrency cap.
func (h *handlers) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := httputil.ClientIP(r, h.trustProxy)
		if !h.limiter.acquire(ip) {
			metrics.IncComputationsRejected()
			h.logger.Warn("computation limit exceeded",
				"remote_ip", ip,
				"current_count", h.limiter.count(ip),
			)
			w.Header().Set("Retry-After", "5")
			writeError(w, http.StatusTooManyRequests, "too many concurrent computations")
			return
		}
		metrics.IncComputationsInFlight()
		defer func() {
			h.limiter.release(ip)
			metrics.DecComputationsInFlight()
		}()
		next(w, r)
	}
}

// satellites serves GET /api/v1/satellites.
func (h *handlers) satellites(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Satellites()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// satellite serves GET /api/v1/satellites/{name}?lat=&lon=&alt=.
func (h *handlers) satellite(w http.ResponseWriter, r *http.Request) {
	obs, err := parseObserver(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.svc.SatelliteData(r.Context(), r.PathValue("name"), obs, h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.NewSatelliteView(data))
}

// passes serves GET /api/v1/passes.
func (h *handlers) passes(w http.ResponseWriter, r *http.Request) {
	q, err := parsePassQuery(r.URL.Query(), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	found, err := h.svc.Passes(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.NewPassViews(found))
}

type refreshResponse struct {
	Source     string    `json:"source"`
	FetchedAt  time.Time `json:"fetched_at"`
	Satellites int       `json:"satellites"`
	EpochMin   time.Time `json:"epoch_min"`
	EpochMax   time.Time `json:"epoch_max"`
}

// refresh serves POST /api/v1/tle/refresh.
func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, http.StatusServiceUnavailable, "TLE fetching is disabled")
		return
	}
	ds, err := h.refresher.Refresh(r.Context())
	if err != nil {
		h.logger.Warn("manual TLE refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Source:     ds.Source,
		FetchedAt:  ds.FetchedAt.UTC(),
		Satellites: len(ds.Satellites),
		EpochMin:   ds.EpochRange.Min.UTC(),
		EpochMax:   ds.EpochRange.Max.UTC(),
	})
}
