// file: internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleTreasurer = "treasurer"
	RoleGuardian  = "guardian"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`

	UserName     string `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail    string `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:varchar(100);not null" json:"-"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'guardian'" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;not null;default:now()" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;not null;default:now()" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
