package models

import "gorm.io/gorm"

// Review is a user's rating of a game. One review per (user, game) pair,
// enforced by the composite unique index; the review-create transaction
// treats a violation as a conflict, not a server error.
type Review struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex:idx_review_user_game"`
	GameID  uint `gorm:"not null;uniqueIndex:idx_review_user_game"`
	Rating  int  `gorm:"not null;check:rating >= 1 AND rating <= 10"`
	Comment string

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Game Game `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
