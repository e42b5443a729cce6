package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// healthReport fills in the fields shared by both probes.
func healthReport(status string, started time.Time, version string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(started).Round(time.Second).String(),
		Version: version,
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Answers 200 while the process is serving requests. It never touches the database.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(started time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthReport("ok", started, version))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether the credential store answers. A failed ping answers 503 so the instance is taken out of rotation.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"credential store unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(started time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport("ok", started, version)
		report.Checks = &authsdk.HealthChecks{Database: "ok"}

		code := http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			report.Status = "degraded"
			report.Checks.Database = "error: " + err.Error()
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, report)
	}
}
