package storage

import (
	"hotel-server/models"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func connectToDB(dsn string) *gorm.DB {
	if dsn == "" {
		log.Panic("DATABASE_URL is not set in the environment variables")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if dbError != nil {
		log.Printf("[error] failed to initialize database, got error %v", dbError)
		log.Panic("Error connecting to the database")
	}

	DB = db
	return db
}

// schemaConstraints keep the no-overlap and date-order invariants in the
// database as well, so concurrent writers that skip the application lock still
// cannot double-book a room. Room numbers are unique among live rooms only.
var schemaConstraints = []string{
	`DROP INDEX IF EXISTS idx_rooms_room_number`,
	`CREATE UNIQUE INDEX IF NOT EXISTS rooms_room_number_live ON rooms (lower(room_number)) WHERE deleted_at IS NULL`,
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_dates_ordered') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_dates_ordered CHECK (check_out_date > check_in_date);
		END IF;
	END $$`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
				room_id WITH =,
				daterange(check_in_date, check_out_date, '[)') WITH &&
			) WHERE (status <> 'Cancelled' AND deleted_at IS NULL);
		END IF;
	END $$`,
}

func performMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	for _, stmt := range schemaConstraints {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func InitializeDB(dsn string, migrate bool) *gorm.DB {
	db := connectToDB(dsn)
	if migrate {
		if err := performMigrations(db); err != nil {
			log.Panicf("database migration failed: %v", err)
		}
		log.Println("database migrations applied")
	} else {
		log.Println("database migrations skipped (RUN_MIGRATIONS=false)")
	}
	return db
}
