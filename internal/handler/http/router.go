package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/middleware"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Site       SiteHandler
	Worker     WorkerHandler
	Attendance AttendanceHandler
	Payment    PaymentHandler
	Payout     PayoutHandler
	Events     EventsHandler
}

func NewRouter(JWTService jwt.Service, logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			// EventSource cannot set headers, so ?token= is accepted as well
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie, tokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.Site.List)
				r.Post("/", h.Site.Create)
				r.Get("/archived", h.Site.ListArchived)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Site.Get)
					r.Put("/", h.Site.Update)
					r.Delete("/", h.Site.Delete)
					r.Post("/archive", h.Site.Archive)
					r.Post("/restore", h.Site.Restore)
					r.Get("/events", h.Events.Stream)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.Post("/", h.Worker.Create)
				r.Get("/site/{siteId}", h.Worker.ListBySite)
				r.Get("/{id}", h.Worker.Get)
				r.Put("/{id}", h.Worker.Update)
				r.Delete("/{id}", h.Worker.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/site/{siteId}", h.Attendance.ListBySite)
				r.Post("/", h.Attendance.Mark)
				r.Post("/mark", h.Attendance.Mark)
				r.Post("/bulk", h.Attendance.BulkMark)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.Payment.Create)
				r.Get("/worker/{workerId}", h.Payment.ListByWorker)
				r.Get("/site/{siteId}", h.Payment.ListBySite)
				r.Get("/summary/{workerId}", h.Payout.WorkerSummary)
				r.Put("/{paymentId}", h.Payment.Update)
				r.Delete("/{paymentId}", h.Payment.Delete)
			})

			r.Route("/payouts", func(r chi.Router) {
				r.Get("/site/{siteId}", h.Payout.SitePayouts)
				r.Get("/site/{siteId}/summary", h.Payout.SiteSummary)
				r.Get("/worker/{workerId}", h.Payout.WorkerSalarySlip)
			})
		})
	})
	return r
}

func tokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}
