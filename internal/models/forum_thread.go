package models

import "gorm.io/gorm"

// ForumThread is a discussion thread attached to a game.
type ForumThread struct {
	gorm.Model
	GameID  uint   `gorm:"not null;index"`
	UserID  uint   `gorm:"not null;index"`
	Title   string `gorm:"size:255;not null"`
	Content string `gorm:"not null"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
