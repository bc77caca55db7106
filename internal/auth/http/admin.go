package http

import (
	"log/slog"
	"net/http"

	"github.com/akashm011/Auth/internal/auth/service"
	"github.com/akashm011/Auth/pkg/authsdk"
	"github.com/akashm011/Auth/pkg/httpx"
	"github.com/akashm011/Auth/pkg/slogx"
)

// requireActiveAdmin resumes the verified session against the stored user.
// The account must still exist, be active, hold its tenant grant when the
// session is tenant-bound and carry an admin role. The role claim in the
// token is not trusted on its own.
func requireActiveAdmin(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				authsdk.ErrInvalidToken.WriteError(w)
				return
			}

			session, err := sessions.Resume(r.Context(), claims)
			if err != nil {
				writeServiceError(w, r, err, "failed to resume admin session")
				return
			}
			if !session.User.Role.IsAdmin() {
				slogx.FromContext(r.Context()).Warn("admin route refused for non-admin account",
					slog.String("user_id", session.User.ID),
					slog.String("role", string(session.User.Role)),
				)
				authsdk.ErrUnauthorized.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
