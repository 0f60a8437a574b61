package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BRANDTRACKER"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Invite     InviteConfig     `mapstructure:"invite"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BackendConfig описывает REST backend с брендами и задачами.
type BackendConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	BrandsPath string `mapstructure:"brands_path"`
	TasksPath  string `mapstructure:"tasks_path"`
	// 0 оставляет таймаут на усмотрение транспорта
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig: локальное хранилище клиента (токен).
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type RepositoryConfig struct {
	Type string `mapstructure:"type"` // "postgres" или "inmemory"
	// откатить и заново применить миграции при старте, снимки при этом теряются
	ResetOnStart bool `mapstructure:"reset_on_start"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int32         `mapstructure:"max_connections"`
	MinConnections int32         `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"` // пусто: встроенный каталог
}

type WorkerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type InviteConfig struct {
	CloseDelay time.Duration `mapstructure:"close_delay"`
	SendDelay  time.Duration `mapstructure:"send_delay"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.brands_path", "/brands")
	v.SetDefault("backend.tasks_path", "/api/task")
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("storage.path", "brandtracker.db")
	v.SetDefault("repository.type", "inmemory")
	v.SetDefault("repository.reset_on_start", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.idle_timeout", 5*time.Minute)
	v.SetDefault("logging.development", true)
	v.SetDefault("catalog.path", "")
	v.SetDefault("worker.enabled", false)
	v.SetDefault("worker.interval", time.Minute)
	v.SetDefault("invite.close_delay", 1500*time.Millisecond)
	v.SetDefault("invite.send_delay", time.Second)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.requests_per_minute", 100)
}

// Load читает config.yml (если есть) и переменные окружения BRANDTRACKER_*.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case "inmemory":
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url обязателен для repository.type=postgres")
		}
	default:
		return fmt.Errorf("неизвестный repository.type %q", c.Repository.Type)
	}
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url не может быть пустым")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
