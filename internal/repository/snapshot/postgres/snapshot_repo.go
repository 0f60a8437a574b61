package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brandTracker/internal/config"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	repo "brandTracker/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	kindTasks  = "tasks"
	kindBrands = "brands"
)

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connString: cfg.URL}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) ReplaceTasks(ctx context.Context, tasks []task.Task) error {
	return s.replace(ctx, kindTasks, tasks, len(tasks))
}

func (s *Storage) Tasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := s.load(ctx, kindTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Storage) ReplaceBrands(ctx context.Context, brands []brand.Brand) error {
	return s.replace(ctx, kindBrands, brands, len(brands))
}

func (s *Storage) Brands(ctx context.Context) ([]brand.Brand, error) {
	var brands []brand.Brand
	if err := s.load(ctx, kindBrands, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// replace перезаписывает единственную строку kind, список заменяется целиком.
func (s *Storage) replace(ctx context.Context, kind string, items any, count int) error {
	start := time.Now()

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("кодирование снимка %s: %w", kind, err)
	}

	query := `INSERT INTO snapshots (kind, revision, payload, item_count, updated_at)
				VALUES ($1, $2, $3, $4, NOW())
				ON CONFLICT (kind) DO UPDATE
				SET revision = EXCLUDED.revision,
					payload = EXCLUDED.payload,
					item_count = EXCLUDED.item_count,
					updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, kind, uuid.New(), payload, count); err != nil {
		logger.Error("Repository: Не удалось сохранить снимок", err,
			zap.String("kind", kind),
			zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("сохранение снимка %s: %w", kind, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.String("kind", kind), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) load(ctx context.Context, kind string, out any) error {
	start := time.Now()

	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM snapshots WHERE kind = $1`, kind).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	if err != nil {
		logger.Error("Repository: Не удалось получить снимок", err,
			zap.String("kind", kind),
			zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("получение снимка %s: %w", kind, err)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("разбор снимка %s: %w", kind, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.String("kind", kind), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций")

	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Не удалось применить миграции", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	logger.Info("Repository: Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Repository: Откат миграций")

	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Не удалось откатить миграции", err)
		return fmt.Errorf("откат миграций: %w", err)
	}
	return nil
}

func (s *Storage) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(s.connString))
	if err != nil {
		return nil, fmt.Errorf("инициализация migrate: %w", err)
	}
	return m, nil
}

// migrateURL меняет схему на ту, под которой зарегистрирован драйвер migrate для pgx/v5.
func migrateURL(conn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(conn, prefix) {
			return "pgx5://" + strings.TrimPrefix(conn, prefix)
		}
	}
	return conn
}
