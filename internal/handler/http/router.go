package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(app config.AppConfig, calendarHandler CalendarHandler, leaveHandler LeaveHandler, importHandler ImportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       app.SlogLevel(),
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  app.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Locale)

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/calendar", calendarHandler.GetEmployeeCalendar)
			r.Get("/summary", calendarHandler.GetFleetSummary)

			r.Route("/imports", func(r chi.Router) {
				r.Post("/", importHandler.Upload)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", importHandler.Get)
					r.Delete("/", importHandler.Discard)
					r.Put("/mapping", importHandler.UpdateMapping)
					r.Post("/preview", importHandler.Preview)
					r.Post("/back", importHandler.Back)
					r.Post("/commit", importHandler.Commit)
				})
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/lanes", calendarHandler.GetLeaveLanes)

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", leaveHandler.ListRequests)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetRequest)
					r.Post("/approve", leaveHandler.ApproveRequest)
					r.Post("/reject", leaveHandler.RejectRequest)
					r.Post("/cancel", leaveHandler.CancelRequest)
				})
			})
		})
	})
	return r
}
