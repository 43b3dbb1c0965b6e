package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Exam     ExamConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MigrationsPath is the directory of the SQL migrations
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig holds Redis connection settings. Modes: single, sentinel, cluster.
type RedisConfig struct {
	Mode  string   `mapstructure:"mode"`
	Addrs []string `mapstructure:"addrs"`
	// Addr is used in single mode when Addrs is empty
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// MasterName is required in sentinel mode
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // ms
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // ms

	// KeyPrefix namespaces the cache keys
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SessionConfig holds cookie session settings
type SessionConfig struct {
	Name   string
	Secret string
	MaxAge int  `mapstructure:"max_age"` // seconds
	Secure bool `mapstructure:"secure"`
}

// JWTConfig holds bearer token settings
type JWTConfig struct {
	Secret        string
	ExpirationHrs int `mapstructure:"expirationHrs"`
}

// StorageConfig holds the encrypted file store settings
type StorageConfig struct {
	// Root is the directory holding soal_files/ and jawaban/
	Root string
	// AppKey derives the AES key of question and answer files
	AppKey string `mapstructure:"app_key"`
}

// ExamConfig holds the exam subsystem tunables
type ExamConfig struct {
	Concurrency      int           `mapstructure:"concurrency"`
	PerPage          int           `mapstructure:"per_page"`
	SelectedCountTTL time.Duration `mapstructure:"selected_count_ttl"`
	DashboardTTL     time.Duration `mapstructure:"dashboard_ttl"`
}

// PostgresConnectionString builds the PostgreSQL DSN
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL builds the postgres:// URL used by the migrations CLI
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// Load reads the configuration from configPath and the environment and validates it
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads the configuration without validating it. Tools that only need the
// database settings use it directly.
func Read(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 60)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.key_prefix", "sekolah")
	vip.SetDefault("session.name", "sekolah_session")
	vip.SetDefault("session.max_age", 7200)
	vip.SetDefault("jwt.expirationHrs", 24)
	vip.SetDefault("storage.root", "storage/app")
	vip.SetDefault("exam.concurrency", 8)
	vip.SetDefault("exam.per_page", 15)
	vip.SetDefault("exam.selected_count_ttl", "10m")
	vip.SetDefault("exam.dashboard_ttl", "1m")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("session.secret", "SESSION_SECRET")
	vip.BindEnv("session.secure", "SESSION_SECURE")
	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")
	vip.BindEnv("storage.root", "STORAGE_ROOT")
	vip.BindEnv("storage.app_key", "APP_KEY")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || errors.Is(err, fs.ErrNotExist) {
				log.Printf("Config file '%s' not found, using environment and defaults.", configPath)
			} else {
				log.Printf("Warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Loaded configuration ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database User: %s", cfg.Database.User)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Storage Root: %s", cfg.Storage.Root)
		log.Printf("App Key Set: %t", cfg.Storage.AppKey != "")
		log.Printf("Session Secret Set: %t", cfg.Session.Secret != "")
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("----------------------------")
	}

	return &cfg, nil
}

// Validate checks the required settings
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Storage.AppKey == "" {
		return fmt.Errorf("APP_KEY is required to encrypt question and answer files")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	if c.JWT.Secret == "" {
		log.Println("Warning: JWT_SECRET is not set, bearer tokens are signed with SESSION_SECRET.")
		c.JWT.Secret = c.Session.Secret
	}
	return nil
}
