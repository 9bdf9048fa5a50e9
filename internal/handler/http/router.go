package http

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/manel-hris/attendance-payroll/internal/handler/http/middleware"
	"github.com/manel-hris/attendance-payroll/internal/pkg/jwt"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Report     ReportHandler
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Sync       SyncHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/lookups", h.Report.Lookups)
				r.Post("/payment-sheet", h.Report.PaymentSheet)
				r.Post("/present-status", h.Report.PresentStatus)
				r.Post("/night-bill", h.Report.NightBill)
				r.Post("/security-payment", h.Report.SecurityPayment)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/status", h.Attendance.Status)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/manual", h.Attendance.AddManual)
					r.Delete("/manual/{id}", h.Attendance.DeleteManual)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Holiday.Get)
					r.Put("/", h.Holiday.Update)
					r.Delete("/", h.Holiday.Delete)
					r.Post("/process", h.Holiday.Process)
					r.Post("/finalize", h.Holiday.Finalize)
					r.Post("/reopen", h.Holiday.Reopen)
					r.Get("/records", h.Holiday.Records)
				})
			})

			r.Route("/sync", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/run", h.Sync.Run)
			})
		})
	})
	return r
}

// NewLogger builds the JSON request/service logger in the ECS layout.
func NewLogger(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-payroll"),
		slog.String("env", env),
	)
}
