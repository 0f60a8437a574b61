package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"brandTracker/internal/backend"
	"brandTracker/internal/catalog"
	"brandTracker/internal/config"
	"brandTracker/internal/handlers"
	"brandTracker/internal/invite"
	"brandTracker/internal/logger"
	"brandTracker/internal/middleware"
	"brandTracker/internal/repository"
	"brandTracker/internal/repository/snapshot/inmemory"
	"brandTracker/internal/repository/snapshot/postgres"
	"brandTracker/internal/service"
	"brandTracker/internal/storage/local"
	"brandTracker/internal/views"
	"brandTracker/internal/worker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository repository.SnapshotRepository // интерфейс!
	worker     *worker.RefreshWorker
	shutdowns  []func() // функции для graceful shutdown, в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	store, err := local.Open(ctx, a.config.Storage.Path)
	if err != nil {
		return fmt.Errorf("локальное хранилище: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		if err := store.Close(); err != nil {
			logger.Error("Storage: Ошибка закрытия", err)
		}
	})

	var opts []backend.Option
	if a.config.Backend.Timeout > 0 {
		opts = append(opts, backend.WithTimeout(a.config.Backend.Timeout))
	}
	client := backend.New(a.config.Backend.BaseURL, store, opts...)

	taskService := service.NewTaskService(client, a.config.Backend.TasksPath)
	brandService := service.NewBrandService(client, a.config.Backend.BrandsPath)

	seed, err := catalog.Load(a.config.Catalog.Path)
	if err != nil {
		return fmt.Errorf("каталог: %w", err)
	}
	engine := views.NewEngine(time.Now, seed.Users, seed.Brands)

	if err := a.initRepository(ctx); err != nil {
		return err
	}

	workflow := invite.NewWorkflow(
		invite.SimulatedInviter{Delay: a.config.Invite.SendDelay},
		invite.LogNotifier{},
		a.config.Invite.CloseDelay,
	)

	handler := handlers.New(handlers.Deps{
		Tasks:     taskService,
		Brands:    brandService,
		Snapshots: a.repository,
		Tokens:    store,
		Invites:   workflow,
		Engine:    engine,
	})

	a.router = chi.NewRouter()
	a.router.Use(chimw.Recoverer)
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logging)
	a.router.Use(middleware.RateLimit(a.config.RateLimit.RequestsPerMinute))
	handler.Routes(a.router)

	if a.config.Worker.Enabled {
		interval := a.config.Worker.Interval
		a.worker = worker.NewRefreshWorker(taskService, brandService, a.repository, &interval, time.Now)
	}

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Приложение инициализировано",
		zap.String("addr", a.server.Addr),
		zap.String("repository", a.config.Repository.Type),
		zap.Bool("worker", a.worker != nil))
	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		if a.config.Repository.ResetOnStart {
			logger.Warn("Сброс снимков PostgreSQL при старте")
			if err := storage.Down(ctx); err != nil {
				storage.Close()
				return err
			}
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return err
		}
		a.repository = storage
		a.shutdowns = append(a.shutdowns, storage.Close)
	default:
		a.repository = inmemory.NewSnapshotStorage()
	}
	return nil
}

func (a *App) Router() http.Handler {
	return a.router
}

// Run обслуживает HTTP и фоновое обновление до отмены ctx, затем
// корректно останавливается.
func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	var wg conc.WaitGroup
	if a.worker != nil {
		wg.Go(func() { a.worker.Start(workerCtx) })
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("http сервер: %w", err)
		}
	}

	cancelWorker()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	a.Shutdown(shutdownCtx)

	return runErr
}

func (a *App) Shutdown(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			logger.Error("Ошибка остановки сервера", err)
		}
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
