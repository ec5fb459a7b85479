package handlers

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Bike{},
		&models.Booking{},
		&models.Payment{},
		&models.AdminRole{},
		&models.AdminUser{},
	))
	return db
}

// setupTestRedis points the package-level client at a miniredis instance for
// the duration of the test.
func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	prev := services.RedisClient
	services.RedisClient = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		services.RedisClient = prev
	})
	return mr
}

// asUser injects the authenticated user id the way the auth middleware does.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func createTestBike(t *testing.T, db *gorm.DB) *models.Bike {
	t.Helper()

	bike := &models.Bike{
		Name:        "Honda Activa 6G",
		Brand:       "Honda",
		BikeModel:   "Activa 6G",
		Type:        "scooter",
		PricePerDay: 400,
		Location:    "Udupi",
		Status:      models.BikeStatusAvailable,
	}
	require.NoError(t, db.Create(bike).Error)
	return bike
}
