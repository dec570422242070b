package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/dheyaloali/dheya-backend-go/internal/config"
	appHTTP "github.com/dheyaloali/dheya-backend-go/internal/handler/http"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/cron"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/jwt"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/oauth"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/sse"
	"github.com/dheyaloali/dheya-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dheyaloali/dheya-backend-go/internal/service/attendance"
	authService "github.com/dheyaloali/dheya-backend-go/internal/service/auth"
	employeeService "github.com/dheyaloali/dheya-backend-go/internal/service/employee"
	notificationService "github.com/dheyaloali/dheya-backend-go/internal/service/notification"
	productService "github.com/dheyaloali/dheya-backend-go/internal/service/product"
	salesService "github.com/dheyaloali/dheya-backend-go/internal/service/sales"
	settingsService "github.com/dheyaloali/dheya-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	saleRepo := postgresql.NewSaleRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	systemClock := clock.System()

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	defer notifService.Stop()

	authSvc := authService.NewAuthService(txRunner, userRepo, refreshTokenRepo, jwtService, systemClock)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, settingsRepo, notifService, systemClock)
	salesSvc := salesService.NewSalesService(txRunner, assignmentRepo, saleRepo, employeeRepo, productRepo, notifService, systemClock, cfg.App.Timezone)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, notifService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	productSvc := productService.NewProductService(productRepo)

	scheduler := cron.NewScheduler()
	cron.NewSalesJobs(salesSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salesHandler := appHTTP.NewSalesHandler(salesSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, jwtService)
	directoryHandler := appHTTP.NewDirectoryHandler(employeeSvc, productSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		salesHandler,
		settingsHandler,
		notificationHandler,
		directoryHandler,
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
		},
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
