package http

import (
	"net/http"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and the status of the database
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	taskapi.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	taskapi.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &taskapi.HealthChecks{
			Database: "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, taskapi.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
