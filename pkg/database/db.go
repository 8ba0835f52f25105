package database

import (
	"log"
	"os"
	"time"

	"github.com/arnavshah/shiftdesk-api-go/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table: HMAC service keys for machine
// callers of the planning endpoint.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table: per-key, per-day counters for the
// planning endpoint.
type APIUsage struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	KeyID            uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date             string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount     int    `gorm:"default:0" json:"request_count"`
	TotalSlots       int    `gorm:"default:0" json:"total_slots"`
	TotalAssignments int    `gorm:"default:0" json:"total_assignments"`
}

// InitDB initializes the database connection and migrates the schema.
// Postgres when DATABASE_URL is set, a local sqlite file otherwise.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "shiftdesk.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Availability{},
		&models.ShiftSlot{},
		&models.Shift{},
		&models.Override{},
		&APIKey{},
		&APIUsage{},
	)

	return db
}
