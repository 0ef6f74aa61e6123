package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token lacks an owner uid.
// Tokens that carry a "type" claim must be access tokens.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if tokenType, ok := claims["type"]; ok && tokenType != "access" {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			if _, err := jwt.OwnerFromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
