package models

import "gorm.io/gorm"

// Role defines the access level of a user account.
type Role string

const (
	RoleGamer Role = "GAMER"
	RoleAdmin Role = "ADMIN"
)

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:'GAMER';index"`
	AvatarURL    string
	Bio          string
}
