package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
)

type Config struct {
	HTTP_ADDRESS     string
	DB_HOST          string
	DB_PORT          string
	DB_USER          string
	DB_PASSWORD      string
	DB_NAME          string
	ES_URL           string
	ES_USER          string
	ES_PASSWORD      string
	JWT_SECRET       string
	TOKEN_LIFETIME   string
	REFRESH_LIFETIME string
	KAFKA_ADDRESS    string
	REDIS_ADDRESS    string
	CACHE_TTL        string
	BASE_URL         string
	LOG_LEVEL        string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDRESS:     getenvDefault("HTTP_ADDRESS", ":8080"),
		DB_HOST:          os.Getenv("DB_HOST"),
		DB_PORT:          os.Getenv("DB_PORT"),
		DB_USER:          os.Getenv("DB_USER"),
		DB_PASSWORD:      os.Getenv("DB_PASSWORD"),
		DB_NAME:          os.Getenv("DB_NAME"),
		ES_URL:           os.Getenv("ES_URL"),
		ES_USER:          os.Getenv("ES_USER"),
		ES_PASSWORD:      os.Getenv("ES_PASSWORD"),
		JWT_SECRET:       os.Getenv("JWT_SECRET"),
		TOKEN_LIFETIME:   getenvDefault("TOKEN_LIFETIME", "45s"),
		REFRESH_LIFETIME: getenvDefault("REFRESH_LIFETIME", "4320h"),
		KAFKA_ADDRESS:    os.Getenv("KAFKA_ADDRESS"),
		REDIS_ADDRESS:    os.Getenv("REDIS_ADDRESS"),
		CACHE_TTL:        getenvDefault("CACHE_TTL", "10m"),
		BASE_URL:         getenvDefault("BASE_URL", "http://localhost:8080"),
		LOG_LEVEL:        getenvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// TokenLifetime is the access token validity window.
func (c *Config) TokenLifetime() time.Duration {
	return parseDurationDefault(c.TOKEN_LIFETIME, 45*time.Second)
}

// RefreshLifetime is the refresh token validity window.
func (c *Config) RefreshLifetime() time.Duration {
	return parseDurationDefault(c.REFRESH_LIFETIME, 180*24*time.Hour)
}

// CacheTTL bounds how long cached list/get responses are served.
func (c *Config) CacheTTL() time.Duration {
	return parseDurationDefault(c.CACHE_TTL, 10*time.Minute)
}

func parseDurationDefault(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserClaim{},
		&models.RefreshToken{},
		&models.Post{},
		&models.PostTag{},
		&models.Tag{},
	); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	return nil
}
