package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/user"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
)

// RequireOrg rejects tokens that carry no organisation claim. Users in the
// pending role have not joined an organisation yet and cannot reach
// org-scoped routes.
func RequireOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrOrgIDRequired)
			return
		}

		orgID, ok := claims["org_id"].(string)
		if !ok || orgID == "" {
			response.HandleError(w, user.ErrOrgIDRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
