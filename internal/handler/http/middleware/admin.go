package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/manel-hris/attendance-payroll/internal/domain/holiday"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, invalidTokenMessage)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.HandleError(w, holiday.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
