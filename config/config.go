package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config carries every tunable the service needs. It is built once in main
// and handed to each component at construction; nothing reads the
// environment after startup.
type Config struct {
	Addr       string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret     string
	TokenLifetime time.Duration

	CSVPath         string
	ImagesDir       string
	PlaceholderPath string

	// Rate limiting, per client IP. RateLimitRPS is the sustained
	// requests-per-second budget, RateLimitBurst the bucket size.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; deployments may set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getenv("ADDR", ":8080"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getenv("DB_NAME", "cereal"),
		DBPort:          getenv("DB_PORT", "5432"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenLifetime:   3 * time.Hour,
		CSVPath:         getenv("CSV_PATH", "data/cereal.csv"),
		ImagesDir:       getenv("IMAGES_DIR", "data/images"),
		PlaceholderPath: getenv("PLACEHOLDER_PATH", "data/images/placeholder"),
		RateLimitRPS:    getenvFloat("RATE_LIMIT_RPS", 0.12), // ~100 requests per 15 minutes
		RateLimitBurst:  getenvInt("RATE_LIMIT_BURST", 20),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// OpenDB connects to postgres and migrates the schema.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Cereal{}, &models.User{}); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
