package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/response"
)

// PingFunc checks one dependency, e.g. (*sql.DB).PingContext.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]PingFunc
}

func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, dto.StatusResp{Status: "ok"})
}

// Readyz pings every dependency with a short deadline.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ping := h.checks[name]
		if ping == nil {
			continue
		}
		if err := ping(ctx); err != nil {
			zlog.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			response.Fail(w, http.StatusServiceUnavailable, "not_ready", name+" unavailable", nil, response.RequestID(r))
			return
		}
	}
	response.Data(w, http.StatusOK, dto.StatusResp{Status: "ready"})
}
