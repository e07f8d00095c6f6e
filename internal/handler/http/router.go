package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/user"
	"github.com/railsafe/roster-backend-go/internal/handler/http/middleware"
	"github.com/railsafe/roster-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Project    ProjectHandler
	Roster     RosterHandler
	Compliance ComplianceHandler
	Fatigue    FatigueHandler
	Alert      AlertHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Events     EventsHandler
}

func NewRouter(JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "railsafe-roster"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Post("/employee-code", h.Auth.LoginWithEmployeeCode)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// The stream authenticates with its own short-lived token;
		// EventSource cannot send an Authorization header.
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", h.Events.GetSSEToken)

			// Org-scoped routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOrg)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Get("/{employeeId}/assignments", h.Roster.ListAssignmentsByEmployee)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionComplianceViewOwn))
						r.Get("/{employeeId}/compliance", h.Compliance.EvaluatePerson)
						r.Get("/{employeeId}/compliance/{date}", h.Compliance.ViolationsForCell)
						r.Get("/{employeeId}/fatigue", h.Fatigue.EvaluateEmployee)
						r.Get("/{employeeId}/alerts", h.Alert.ListForEmployee)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
						r.Get("/", h.Employee.ListEmployees)
						r.Post("/", h.Employee.CreateEmployee)
						r.Put("/{id}", h.Employee.UpdateEmployee)
						r.Delete("/{id}", h.Employee.DeleteEmployee)
					})
				})

				r.Route("/projects", func(r chi.Router) {
					r.Get("/", h.Project.List)
					r.Get("/{id}", h.Project.GetByID)
					r.Get("/{projectId}/assignments", h.Roster.ListAssignmentsByProject)
					r.Get("/{projectId}/teams", h.Roster.ListTeamsByProject)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionComplianceViewAll))
						r.Get("/{projectId}/compliance", h.Compliance.EvaluateProject)
						r.Get("/{projectId}/fatigue", h.Fatigue.EvaluateProject)
						r.Get("/{projectId}/alerts", h.Alert.ListForProject)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionProjectManage))
						r.Post("/", h.Project.Create)
						r.Put("/{id}", h.Project.Update)
						r.Delete("/{id}", h.Project.Delete)
					})
				})

				r.Route("/shift-patterns", func(r chi.Router) {
					r.Get("/", h.Roster.ListShiftPatterns)
					r.Get("/{id}", h.Roster.GetShiftPattern)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPatternManage))
						r.Post("/", h.Roster.CreateShiftPattern)
						r.Put("/{id}", h.Roster.UpdateShiftPattern)
						r.Delete("/{id}", h.Roster.DeleteShiftPattern)
					})
				})

				r.Route("/assignments", func(r chi.Router) {
					r.Get("/{id}", h.Roster.GetAssignment)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionRosterEdit))
						r.Post("/", h.Roster.CreateAssignment)
						r.Delete("/{id}", h.Roster.DeleteAssignment)
					})
				})

				r.Route("/teams", func(r chi.Router) {
					r.Get("/{id}", h.Roster.GetTeam)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTeamManage))
						r.Post("/", h.Roster.CreateTeam)
						r.Delete("/{id}", h.Roster.DeleteTeam)
					})
				})

				r.Route("/alerts", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAlertsView))
					r.Put("/{id}/read", h.Alert.MarkRead)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsExport))
					r.Get("/reports/compliance.csv", h.Report.ExportComplianceCSV)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Get("/dashboard", h.Dashboard.GetDashboard)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
