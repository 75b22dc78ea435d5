package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/middleware"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	// Logger receives access logs; nil selects slog.Default().
	Logger *slog.Logger
}

type Handlers struct {
	Auth         AuthHandler
	Activity     ActivityHandler
	Employee     EmployeeHandler
	Progress     ProgressHandler
	Report       ReportHandler
	Submission   SubmissionHandler
	Performance  PerformanceHandler
	Document     DocumentHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	base := cfg.Logger
	if base == nil {
		base = slog.Default()
	}
	logger := base.With(
		slog.String("app", "mutabaah"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// SSE streams stay open for minutes
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/notifications/stream"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/google", h.Auth.GoogleRedirect)
			r.Post("/google", h.Auth.LoginWithGoogle)
		})

		// SSE authenticates with a short-lived query token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/activities", h.Activity.List)

			r.Route("/employees", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Get("/", h.Employee.Me)
					r.Post("/activations", h.Employee.ActivateMe)
					r.Get("/readings", h.Employee.ListReadings)
					r.Post("/readings", h.Employee.AddReading)
				})

				r.With(middleware.RequirePermission(user.PermissionEmployeeActivate)).
					Post("/{id}/activations", h.Employee.Activate)
			})

			r.Route("/progress/{month}", func(r chi.Router) {
				r.Get("/", h.Progress.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Put("/days/{day}/activities/{activityID}", h.Progress.MarkCompleted)
					r.Delete("/", h.Progress.ResetMonth)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", h.Report.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/{month}/activities/{activityID}/entries", h.Report.AddEntry)
					r.Post("/{month}/activities/{activityID}/books", h.Report.AddBook)
				})
			})

			r.Route("/submissions", func(r chi.Router) {
				r.Post("/", h.Submission.Submit)
				r.Get("/me/{month}", h.Submission.GetMine)
				r.Get("/inbox", h.Submission.Inbox)
				r.Get("/{id}", h.Submission.Get)
				r.Post("/{id}/review", h.Submission.Review)
			})

			r.Route("/performance", func(r chi.Router) {
				r.Get("/monthly", h.Performance.Monthly)
				r.Get("/weekly", h.Performance.Weekly)
				r.Get("/yearly", h.Performance.Yearly)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/transcript", h.Document.Transcript)
				r.Get("/checklist", h.Document.Checklist)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/preferences", h.Notification.GetPreferences)
				r.Put("/preferences", h.Notification.UpdatePreference)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionDashboardView))
				r.Get("/", h.Dashboard.GetDashboard)
				r.Get("/submissions", h.Dashboard.SubmissionStats)
			})

			r.With(middleware.RequirePermission(user.PermissionReportCorrect)).
				Delete("/admin/employees/{employeeID}/reports/{month}/activities/{activityID}/entries/{date}", h.Report.RemoveEntry)
		})
	})
	return r
}
