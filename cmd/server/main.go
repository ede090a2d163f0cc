package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/attendance"
	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/domain/notifications"
	"github.com/apardew63/crm-server/internal/domain/performance"
	"github.com/apardew63/crm-server/internal/domain/sales"
	"github.com/apardew63/crm-server/internal/domain/tasks"
	"github.com/apardew63/crm-server/internal/platform/config"
	"github.com/apardew63/crm-server/internal/platform/db"
	"github.com/apardew63/crm-server/internal/platform/email"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"

	attendancehandler "github.com/apardew63/crm-server/internal/transport/http/handlers/attendance"
	authhandler "github.com/apardew63/crm-server/internal/transport/http/handlers/auth"
	notificationshandler "github.com/apardew63/crm-server/internal/transport/http/handlers/notifications"
	performancehandler "github.com/apardew63/crm-server/internal/transport/http/handlers/performance"
	reportshandler "github.com/apardew63/crm-server/internal/transport/http/handlers/reports"
	saleshandler "github.com/apardew63/crm-server/internal/transport/http/handlers/sales"
	taskshandler "github.com/apardew63/crm-server/internal/transport/http/handlers/tasks"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("postgres connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	mdb, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer func() {
		if err := mdb.Close(context.Background()); err != nil {
			log.Printf("mongo close failed: %v", err)
		}
	}()

	userStore := auth.NewStore(pool)
	authService := auth.NewService(userStore, cfg.JWTSecret, cfg.TokenTTL)

	notificationStore, err := notifications.NewStore(ctx, mdb)
	if err != nil {
		log.Fatalf("notification store init failed: %v", err)
	}
	notifier := notifications.New(notificationStore, email.New(cfg), userStore, cfg.EmailEnabled, cfg.EmailFrom)

	taskStore, err := tasks.NewStore(ctx, mdb)
	if err != nil {
		log.Fatalf("task store init failed: %v", err)
	}
	taskService := tasks.NewService(taskStore, notifier, userStore)

	attendanceStore, err := attendance.NewStore(ctx, mdb)
	if err != nil {
		log.Fatalf("attendance store init failed: %v", err)
	}
	attendanceService := attendance.NewService(attendanceStore, attendance.Rules{
		WorkdayStart: cfg.WorkdayStart,
		WorkdayEnd:   cfg.WorkdayEnd,
		GraceMinutes: cfg.LateGraceMinutes,
	})

	salesStore, err := sales.NewStore(ctx, mdb)
	if err != nil {
		log.Fatalf("sales store init failed: %v", err)
	}
	salesService := sales.NewService(salesStore)

	performanceStore, err := performance.NewStore(ctx, mdb)
	if err != nil {
		log.Fatalf("performance store init failed: %v", err)
	}
	performanceService := performance.NewService(performanceStore, taskStore, attendanceService, salesService, notifier)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "postgres not ready", http.StatusServiceUnavailable)
			return
		}
		if err := mdb.Ping(ctx); err != nil {
			http.Error(w, "mongo not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		taskshandler.NewHandler(taskService).RegisterRoutes(r)
		performancehandler.NewHandler(performanceService).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService).RegisterRoutes(r)
		saleshandler.NewHandler(salesService).RegisterRoutes(r)
		notificationshandler.NewHandler(notifier).RegisterRoutes(r)
		reportshandler.NewHandler(performanceService, userStore).RegisterRoutes(r)
	})

	log.Printf("CRM server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
