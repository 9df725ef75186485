package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"moodfm/config"

	_ "github.com/go-sql-driver/mysql"
)

// DB is the global raw database handle, used for schema bootstrap and
// health checks. Repositories go through GORM (see gorm.go).
var DB *sql.DB

// ConnectDB establishes the MySQL connection.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	DB.SetMaxIdleConns(10)
	DB.SetMaxOpenConns(100)
	DB.SetConnMaxLifetime(time.Hour)

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB creates the schema if it does not exist.
func InitDB() error {
	createFavorites := `
	CREATE TABLE IF NOT EXISTS favorites (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		track_id VARCHAR(64) NOT NULL,
		user_id BIGINT NOT NULL,
		title VARCHAR(255),
		artist VARCHAR(255),
		thumbnail_url VARCHAR(512),
		image_url VARCHAR(512),
		duration_ms BIGINT DEFAULT 0,
		saved_at DATETIME(3) NOT NULL,
		UNIQUE KEY uniq_track (track_id),
		KEY idx_user (user_id),
		KEY idx_saved_at (saved_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	if _, err := DB.Exec(createFavorites); err != nil {
		return fmt.Errorf("failed to create favorites table: %w", err)
	}

	log.Println("Database schema initialized.")
	return nil
}
