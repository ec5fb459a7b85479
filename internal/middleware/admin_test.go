package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAdminDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AdminRole{}, &models.AdminUser{}))
	return db
}

func adminRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping",
		func(c *gin.Context) { c.Set("userId", userID); c.Next() },
		AdminMiddleware(db),
		func(c *gin.Context) { c.JSON(200, gin.H{"role": c.GetString("adminRole")}) },
	)
	return r
}

func TestAdminMiddleware(t *testing.T) {
	db := setupAdminDB(t)

	role := models.AdminRole{Name: "super_admin"}
	require.NoError(t, db.Create(&role).Error)
	admin := models.AdminUser{UserID: 1, RoleID: role.ID, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	inactive := models.AdminUser{UserID: 2, RoleID: role.ID, IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)

	t.Run("rejects non-admins and inactive admins", func(t *testing.T) {
		for _, userID := range []uint{2, 3} {
			w := httptest.NewRecorder()
			adminRouter(db, userID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
			assert.Equal(t, 403, w.Code)
		}
	})

	t.Run("admits active admins and exposes the role", func(t *testing.T) {
		w := httptest.NewRecorder()
		adminRouter(db, 1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"role": "super_admin"}`, w.Body.String())
	})

	t.Run("activity timestamp is throttled", func(t *testing.T) {
		r := adminRouter(db, 1)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
		require.Equal(t, 200, w.Code)

		var first models.AdminUser
		require.NoError(t, db.First(&first, admin.ID).Error)
		require.NotNil(t, first.LastSeenAt)

		// A poll right after must not rewrite the timestamp
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
		require.Equal(t, 200, w.Code)

		var second models.AdminUser
		require.NoError(t, db.First(&second, admin.ID).Error)
		require.NotNil(t, second.LastSeenAt)
		assert.True(t, first.LastSeenAt.Equal(*second.LastSeenAt))

		// A stale timestamp is refreshed
		stale := time.Now().Add(-time.Hour)
		require.NoError(t, db.Model(&models.AdminUser{}).Where("id = ?", admin.ID).Update("last_seen_at", &stale).Error)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
		require.Equal(t, 200, w.Code)

		var third models.AdminUser
		require.NoError(t, db.First(&third, admin.ID).Error)
		require.NotNil(t, third.LastSeenAt)
		assert.True(t, third.LastSeenAt.After(stale))
	})
}
