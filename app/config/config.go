package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	Port      string
	JWTSecret string

	// AutoGenerateFees enables the monthly fee-generation cron job.
	AutoGenerateFees bool
}

var AppConfig *Config

// Load reads the environment (optionally from a .env file), opens the
// database pool and populates AppConfig.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}

	AppConfig = &Config{
		DB:               db,
		Port:             getenv("PORT", "8080"),
		JWTSecret:        getenv("JWT_SECRET", ""),
		AutoGenerateFees: os.Getenv("AUTO_GENERATE_FEES") == "true",
	}
	log.Println("Database connected successfully")
	return AppConfig, nil
}

func openDB() (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", ""),
			getenv("DB_NAME", "machad"),
			getenv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
