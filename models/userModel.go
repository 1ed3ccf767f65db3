package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User never serializes its password hash or salt.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Salt         string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type ChangeEmailDTO struct {
	CurrentEmail string `json:"currentEmail" binding:"required,email"`
	NewEmail     string `json:"newEmail" binding:"required,email"`
}

type UpdateRoleDTO struct {
	Role Role `json:"role" binding:"required,user_role"`
}

type UserFilter struct {
	Role   Role   `form:"role" binding:"omitempty,user_role"`
	Search string `form:"search"`
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
}
