// Package app wires repositories and services over one database pool.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/config"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/dashboard"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/fixtures"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/cron"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/oauth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/writequeue"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/repository/postgresql"
	activityReportService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/activityreport"
	serviceAuth "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/auth"
	dashboardService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/dashboard"
	documentService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/document"
	employeeService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/employee"
	notificationService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/notification"
	performanceService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/performance"
	progressService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/progress"
	submissionService "github.com/rsi-mutabaah/mutabaah-backend-go/internal/service/submission"
)

type App struct {
	Config  *config.Config
	DB      *database.DB
	Catalog *activity.Catalog
	Now     func() time.Time

	EmployeeRepo employee.EmployeeRepository
	JWT          *jwt.JWTService

	Auth          auth.AuthService
	Employees     employee.EmployeeService
	Progress      *progressService.ProgressServiceImpl
	Reports       *activityReportService.ActivityReportServiceImpl
	Submissions   *submissionService.SubmissionServiceImpl
	Performance   *performanceService.PerformanceServiceImpl
	Documents     *documentService.DocumentServiceImpl
	Dashboard     dashboard.DashboardService
	Notifications notification.Service
	Reminders     *cron.ReminderJobs
}

// New loads the activity catalog, connects to the database and builds
// every service. Close releases the pool and flushes notifications.
func New(cfg *config.Config) (*App, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	catalog, err := fixtures.LoadCatalog(cfg.App.ActivityCatalogPath)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(context.Background(), cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokens := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	readingRepo := postgresql.NewReadingHistoryRepository(db)
	progressRepo := postgresql.NewDailyProgressRepository(db)
	reportRepo := postgresql.NewActivityReportRepository(db)
	submissionRepo := postgresql.NewSubmissionRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.IsProduction())
	notifSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})

	gate := progressService.NewMonthGate(employeeRepo, submissionRepo)
	reportSvc := activityReportService.NewActivityReportService(
		catalog,
		reportRepo,
		employeeRepo,
		gate,
		writequeue.Config{Window: cfg.Report.WriteWindow, Timeout: cfg.Report.WriteTimeout},
		now,
	)
	progressSvc := progressService.NewProgressService(
		catalog,
		progressRepo,
		employeeRepo,
		readingRepo,
		submissionRepo,
		reportSvc,
		gate,
		now,
	)
	performanceSvc := performanceService.NewPerformanceService(catalog, progressSvc, employeeRepo, submissionRepo, now)

	var google oauth.GoogleService
	if cfg.Google.Enabled() {
		google = oauth.NewGoogleService(oauth.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       cfg.Google.Scopes,
		})
	}

	return &App{
		Config:       cfg,
		DB:           db,
		Catalog:      catalog,
		Now:          now,
		EmployeeRepo: employeeRepo,
		JWT:          JWTService,

		Auth:      serviceAuth.NewAuthService(inTx, userRepo, JWTService, refreshTokens, google),
		Employees: employeeService.NewEmployeeService(employeeRepo, readingRepo, now),
		Progress:  progressSvc,
		Reports:   reportSvc,
		Submissions: submissionService.NewSubmissionService(
			inTx,
			submissionRepo,
			employeeRepo,
			notifSvc,
			submissionService.Config{OpenDay: cfg.Submission.OpenDay},
			now,
		),
		Performance:   performanceSvc,
		Documents:     documentService.NewDocumentService(catalog, performanceSvc, progressSvc, employeeRepo, now),
		Dashboard:     dashboardService.NewDashboardService(dashboardRepo, now),
		Notifications: notifSvc,
		Reminders:     cron.NewReminderJobs(employeeRepo, notifSvc, cfg.Submission.OpenDay, now),
	}, nil
}

func (a *App) Close() {
	a.Notifications.Stop()
	a.DB.Close()
}
