package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/sitecrew/sitecrew-backend-go/internal/config"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	appHTTP "github.com/sitecrew/sitecrew-backend-go/internal/handler/http"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/sse"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/memory"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/mongodb"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sitecrew/sitecrew-backend-go/internal/service/attendance"
	paymentService "github.com/sitecrew/sitecrew-backend-go/internal/service/payment"
	payoutService "github.com/sitecrew/sitecrew-backend-go/internal/service/payout"
	siteService "github.com/sitecrew/sitecrew-backend-go/internal/service/site"
	workerService "github.com/sitecrew/sitecrew-backend-go/internal/service/worker"
)

type repositories struct {
	site       site.SiteRepository
	worker     worker.WorkerRepository
	attendance attendance.AttendanceRepository
	payment    payment.PaymentRepository
	close      func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Error initializing storage: ", err)
	}
	defer func() {
		if err := repos.close(context.Background()); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	siteSvc := siteService.NewSiteService(repos.site)
	workerSvc := workerService.NewWorkerService(repos.worker, siteSvc)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, siteSvc, repos.worker, logger)
	paymentSvc := paymentService.NewPaymentService(repos.payment, siteSvc, workerSvc, repos.worker)
	payoutSvc := payoutService.NewPayoutService(
		payoutService.NewCalculator(logger),
		siteSvc,
		workerSvc,
		repos.worker,
		repos.attendance,
		repos.payment,
	)

	events := sse.NewHub()
	router := appHTTP.NewRouter(JWTService, logger, cfg.App.AllowedOrigins, appHTTP.Handlers{
		Site:       appHTTP.NewSiteHandler(siteSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, events),
		Payment:    appHTTP.NewPaymentHandler(paymentSvc, events),
		Payout:     appHTTP.NewPayoutHandler(payoutSvc),
		Events:     appHTTP.NewEventsHandler(siteSvc, events),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			site:       postgresql.NewSiteRepository(db),
			worker:     postgresql.NewWorkerRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			payment:    postgresql.NewPaymentRepository(db),
			close: func(context.Context) error {
				db.Close()
				return nil
			},
		}, nil

	case config.StorageMongoDB:
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		repos := &repositories{close: db.Close}
		if repos.site, err = mongodb.NewSiteRepository(ctx, db); err != nil {
			return nil, err
		}
		if repos.worker, err = mongodb.NewWorkerRepository(ctx, db); err != nil {
			return nil, err
		}
		if repos.attendance, err = mongodb.NewAttendanceRepository(ctx, db); err != nil {
			return nil, err
		}
		if repos.payment, err = mongodb.NewPaymentRepository(ctx, db); err != nil {
			return nil, err
		}
		return repos, nil

	case config.StorageMemory:
		store := memory.NewStore()
		slog.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			site:       store.Sites(),
			worker:     store.Workers(),
			attendance: store.Attendance(),
			payment:    store.Payments(),
			close:      func(context.Context) error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
