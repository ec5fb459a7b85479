package models

import (
	"time"

	"gorm.io/gorm"
)

type AdminRole struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Permissions string `json:"permissions" gorm:"type:text"` // JSON blob, opaque to the backend
}

// AdminUser links an authenticated user to a back-office role. Absence of an
// active row means no admin access; there is no role claim inside the JWT.
type AdminUser struct {
	gorm.Model
	UserID     uint       `json:"userId" gorm:"unique;not null"`
	User       User       `json:"-"`
	RoleID     uint       `json:"roleId" gorm:"not null"`
	Role       AdminRole  `json:"role"`
	IsActive   bool       `json:"isActive" gorm:"not null;default:true"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}
