package database

import (
	"log"

	"github.com/smartpark/smartpark/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ParkingZone{},
		&models.ParkingSlot{},
		&models.Reservation{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: the database itself refuses two active
	// reservations on the same slot with intersecting [start, end) ranges,
	// so a racing writer that slipped past the row lock still cannot
	// double-book.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_no_overlap`)
	db.Exec(`
		ALTER TABLE reservations
		ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (slot_id WITH =, tstzrange(start_time, end_time) WITH &&)
		WHERE (status = 'active')
	`)

	return db
}
