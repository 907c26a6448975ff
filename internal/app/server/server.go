package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"intranet/internal/auth"
	"intranet/internal/domain/activities"
	"intranet/internal/domain/announcements"
	"intranet/internal/domain/employees"
	"intranet/internal/domain/inventory"
	"intranet/internal/domain/notifications"
	"intranet/internal/domain/receipts"
	"intranet/internal/domain/reports"
	"intranet/internal/domain/vacations"
	"intranet/internal/platform/config"
	"intranet/internal/platform/db"
	"intranet/internal/platform/email"
	"intranet/internal/platform/jobs"
	"intranet/internal/platform/storage"
	activitieshandler "intranet/internal/transport/http/handlers/activities"
	announcementshandler "intranet/internal/transport/http/handlers/announcements"
	authhandler "intranet/internal/transport/http/handlers/auth"
	employeeshandler "intranet/internal/transport/http/handlers/employees"
	fileshandler "intranet/internal/transport/http/handlers/files"
	inventoryhandler "intranet/internal/transport/http/handlers/inventory"
	notificationshandler "intranet/internal/transport/http/handlers/notifications"
	receiptshandler "intranet/internal/transport/http/handlers/receipts"
	reportshandler "intranet/internal/transport/http/handlers/reports"
	vacationshandler "intranet/internal/transport/http/handlers/vacations"
	"intranet/internal/transport/http/middleware"
)

// App carries the wired services so the CLI subcommands and the HTTP
// server share one composition root.
type App struct {
	Config    config.Config
	DB        *pgxpool.Pool
	Files     *storage.Postgres
	Notify    *notifications.Service
	Employees *employees.Service
	Vacations *vacations.Service
	Receipts  *receipts.Service
	Importer  *receipts.Importer
	Scheduler *jobs.Scheduler

	activityStore *activities.Store
	vacationStore *vacations.Store
}

// NewApp connects to the database and wires every service. Migrations and
// seed data run according to config.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	files := storage.NewPostgres(pool, cfg.AppURL, cfg.JWTSecret)
	dispatcher := email.New(cfg)
	notify := notifications.New(notifications.NewStore(pool), dispatcher)

	employeeStore := employees.NewStore(pool)
	employeeSvc := employees.NewService(employeeStore, notify, cfg.CompanyName)

	activityStore := activities.NewStore(pool)
	vacationStore := vacations.NewStore(pool)
	receiptStore := receipts.NewStore(pool)

	app := &App{
		Config:        cfg,
		DB:            pool,
		Files:         files,
		Notify:        notify,
		Employees:     employeeSvc,
		Vacations:     vacations.NewService(vacationStore, employeeStore, notify),
		Receipts:      receipts.NewService(receiptStore, files, notify),
		Importer:      receipts.NewImporter(receiptStore, files, notify, cfg.CompanyName),
		Scheduler:     jobs.NewScheduler(),
		activityStore: activityStore,
		vacationStore: vacationStore,
	}
	app.registerJobs(dispatcher)
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

// registerJobs sets up the two recurring jobs: the Friday 10:00 capture
// reminder and the January 1 00:01 vacation reset.
func (a *App) registerJobs(dispatcher notifications.Dispatcher) {
	a.Scheduler.Register(jobs.Job{
		ID:      jobs.JobWeeklyReminder,
		Trigger: jobs.Weekly{Weekday: time.Friday, Hour: 10},
		Run: func(ctx context.Context) error {
			_, err := activities.RunWeeklyReminder(ctx, a.activityStore, dispatcher, time.Now())
			return err
		},
	})
	a.Scheduler.Register(jobs.Job{
		ID:      jobs.JobAnnualReset,
		Trigger: jobs.Annual{Month: time.January, Day: 1, Minute: 1},
		Run: func(ctx context.Context) error {
			_, err := vacations.RunAnnualReset(ctx, a.vacationStore, a.Config.DefaultVacationDays, time.Now())
			return err
		},
	})
}

// Router assembles the chi router with the shared middleware stack.
func (a *App) Router() http.Handler {
	cfg := a.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(64 << 20))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	fileshandler.NewHandler(a.Files).RegisterRoutes(router)

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(auth.NewService(employees.NewStore(a.DB), cfg.JWTSecret), a.Employees).RegisterRoutes(r)
		employeeshandler.NewHandler(a.Employees).RegisterRoutes(r)
		activitieshandler.NewHandler(activities.NewService(a.activityStore)).RegisterRoutes(r)
		vacationshandler.NewHandler(a.Vacations, cfg.CompanyName).RegisterRoutes(r)
		receiptshandler.NewHandler(a.Receipts, a.Importer).RegisterRoutes(r)
		announcementshandler.NewHandler(announcements.NewService(announcements.NewStore(a.DB), a.Files)).RegisterRoutes(r)
		inventoryhandler.NewHandler(inventory.NewService(inventory.NewStore(a.DB))).RegisterRoutes(r)
		reportshandler.NewHandler(reports.NewService(a.DB)).RegisterRoutes(r)
		notificationshandler.NewHandler(a.Notify, cfg).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

// Run starts the scheduler and serves HTTP until SIGINT/SIGTERM.
func Run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.SchedulerEnabled {
		app.Scheduler.Start(context.Background())
		defer app.Scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("intranet server listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
