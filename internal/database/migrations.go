package database

import (
	"github.com/coastalrides/bikerental-backend/internal/data"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Bike{},
		&models.Booking{},
		&models.Payment{},
		&models.AdminRole{},
		&models.AdminUser{},
	)
	if err != nil {
		return err
	}

	// Closed status sets enforced at the datastore as well as in handlers
	if db.Migrator().HasTable(&models.Bike{}) {
		db.Exec(`ALTER TABLE bikes DROP CONSTRAINT IF EXISTS bikes_status_check`)
		db.Exec(`ALTER TABLE bikes ADD CONSTRAINT bikes_status_check CHECK (status IN ('available', 'rented', 'maintenance', 'unavailable'))`)
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'active', 'completed', 'cancelled'))`)
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_period_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_period_check CHECK (end_date > start_date)`)
	}

	// Seed the default admin role
	var roleCount int64
	db.Model(&models.AdminRole{}).Count(&roleCount)
	if roleCount == 0 {
		role := models.AdminRole{
			Name:        "super_admin",
			Description: "Full access to vehicles, bookings and payment tracking",
			Permissions: `{"vehicles": "write", "bookings": "write", "payments": "read"}`,
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}

	// Seed the catalog on a fresh install
	var bikeCount int64
	db.Model(&models.Bike{}).Count(&bikeCount)
	if bikeCount == 0 {
		seed := make([]models.Bike, len(data.FallbackBikes))
		copy(seed, data.FallbackBikes)
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
	}

	return nil
}
