package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	appHTTP "github.com/railsafe/roster-backend-go/internal/handler/http"
	"github.com/railsafe/roster-backend-go/internal/pkg/cron"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
	"github.com/railsafe/roster-backend-go/internal/pkg/jwt"
	"github.com/railsafe/roster-backend-go/internal/pkg/oauth"
	"github.com/railsafe/roster-backend-go/internal/pkg/sse"
	"github.com/railsafe/roster-backend-go/internal/repository/postgresql"
	alertService "github.com/railsafe/roster-backend-go/internal/service/alert"
	serviceAuth "github.com/railsafe/roster-backend-go/internal/service/auth"
	complianceService "github.com/railsafe/roster-backend-go/internal/service/compliance"
	dashboardService "github.com/railsafe/roster-backend-go/internal/service/dashboard"
	employeeService "github.com/railsafe/roster-backend-go/internal/service/employee"
	fatigueService "github.com/railsafe/roster-backend-go/internal/service/fatigue"
	projectService "github.com/railsafe/roster-backend-go/internal/service/project"
	reportService "github.com/railsafe/roster-backend-go/internal/service/report"
	rosterService "github.com/railsafe/roster-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	orgRepo := postgresql.NewOrgRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	patternRepo := postgresql.NewShiftPatternRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	alertRepo := postgresql.NewAlertRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(db, userRepo, orgRepo, employeeRepo, JWTService, JWTRepository)
	alertSvc := alertService.NewAlertService(alertRepo, employeeRepo, hub)
	complianceSvc := complianceService.NewComplianceService(
		patternRepo,
		assignmentRepo,
		teamRepo,
		alertSvc,
		cfg.Compliance,
		cfg.Fatigue,
	)
	fatigueSvc := fatigueService.NewFatigueService(complianceSvc, cfg.Compliance)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	projectSvc := projectService.NewProjectService(projectRepo, assignmentRepo)
	rosterSvc := rosterService.NewRosterService(patternRepo, assignmentRepo, teamRepo, projectRepo, employeeRepo)
	reportSvc := reportService.NewReportService(complianceSvc, projectRepo, employeeRepo, cfg.Compliance)
	dashboardSvc := dashboardService.NewDashboardService(complianceSvc, projectRepo, employeeRepo, alertRepo)

	// Nightly recompute keeps alerts current without waiting for requests
	scheduler := cron.NewScheduler()
	complianceJobs := cron.NewComplianceJobs(projectRepo, complianceSvc)
	complianceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Project:    appHTTP.NewProjectHandler(projectSvc),
		Roster:     appHTTP.NewRosterHandler(rosterSvc),
		Compliance: appHTTP.NewComplianceHandler(complianceSvc),
		Fatigue:    appHTTP.NewFatigueHandler(fatigueSvc),
		Alert:      appHTTP.NewAlertHandler(alertSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Events:     appHTTP.NewEventsHandler(hub, JWTService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
