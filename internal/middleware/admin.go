package middleware

import (
	"time"

	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// adminSeenInterval limits how often the activity timestamp is rewritten, so
// a dashboard polling every few seconds does not turn into a write per
// request.
const adminSeenInterval = time.Minute

// AdminMiddleware gates back-office routes behind an active admin_users row.
// Must run after AuthMiddleware so userId is set. The role name is exposed to
// handlers via the context; there is no role claim inside the JWT.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var admin models.AdminUser
		if err := db.Preload("Role").
			Where("user_id = ? AND is_active = ?", userId, true).
			First(&admin).Error; err != nil {
			c.JSON(403, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		now := time.Now()
		if admin.LastSeenAt == nil || now.Sub(*admin.LastSeenAt) > adminSeenInterval {
			db.Model(&admin).Update("last_seen_at", &now)
		}

		c.Set("adminRole", admin.Role.Name)
		c.Next()
	}
}
