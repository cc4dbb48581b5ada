package models

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a game in the catalog.
type Game struct {
	gorm.Model
	Title         string `gorm:"size:255;not null"`
	Description   string
	Developer     string `gorm:"size:255"`
	Publisher     string `gorm:"size:255"`
	ReleaseDate   *time.Time
	CoverImageURL string

	// AverageRating is derived from the game's reviews. It is written only by
	// the review-create transaction, never directly by clients.
	AverageRating float64 `gorm:"type:decimal(4,2);not null;default:0"`
}
