package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
	"github.com/akashm011/Auth/pkg/jwtx"
)

// Pinger is the part of the store the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// schemaVersioner is implemented by stores that track applied migrations.
type schemaVersioner interface {
	SchemaVersion() (uint, error)
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database, its schema and the session signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st Pinger,
	signer jwtx.Signer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Schema:   "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK
		degrade := func() {
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}

		// Check migrations were applied
		if sv, ok := st.(schemaVersioner); ok {
			v, err := sv.SchemaVersion()
			switch {
			case err != nil:
				checks.Schema = "error: " + err.Error()
				degrade()
			case v == 0:
				checks.Schema = "error: no migrations applied"
				degrade()
			default:
				checks.Schema = fmt.Sprintf("ok (version %d)", v)
			}
		}

		// Check the session signer has a usable key
		if signer == nil {
			checks.Signer = "error: no signer configured"
			degrade()
		} else if err := signer.Validate(); err != nil {
			checks.Signer = "error: " + err.Error()
			degrade()
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
