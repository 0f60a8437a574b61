package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brandTracker/internal/logger"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// TokenKey - фиксированный ключ, под которым хранится bearer токен.
const TokenKey = "token"

var ErrNotFound = errors.New("local: ключ не найден")

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store - постоянное хранилище ключ/значение клиента на sqlite.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("путь к локальному хранилищу обязателен")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("применение схемы: %w", err)
	}

	logger.Info("Storage: Локальное хранилище открыто", zap.String("path", path))
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("запись ключа %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("удаление ключа %s: %w", key, err)
	}
	return nil
}

// Token реализует backend.TokenSource; отсутствие токена не ошибка.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.Get(ctx, TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.Set(ctx, TokenKey, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.Delete(ctx, TokenKey)
}
