package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

const invalidTokenMessage = "Invalid or missing access token"

// AuthRequired rejects requests whose verified token is missing or is not an
// access token. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, invalidTokenMessage)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.Unauthorized(w, invalidTokenMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Caller reads the user id and admin flag from the verified token.
func Caller(ctx context.Context) (userID string, isAdmin bool) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false
	}
	userID, _ = claims["user_id"].(string)
	isAdmin, _ = claims["is_admin"].(bool)
	return userID, isAdmin
}
