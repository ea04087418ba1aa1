package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Pings the database and, when tokens live in Redis, the token store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gymsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	gymsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	tokens store.QRTokens,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &gymsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if p, ok := tokens.(pinger); ok {
			checks.TokenStore = "ok"
			if err := p.Ping(r.Context()); err != nil {
				checks.TokenStore = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, statusCode, gymsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
