package middleware

import (
	"net/http"

	"github.com/fieldserve/rostering-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired verifies the device token minted by the external identity
// service. The token must carry a staff_id claim; roles and permissions are
// enforced upstream.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing device token")
				return
			}

			staffID, ok := claims["staff_id"].(string)
			if !ok || staffID == "" {
				response.Unauthorized(w, "Device token is missing staff identity")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
