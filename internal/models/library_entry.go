package models

import "gorm.io/gorm"

// LibraryStatus defines a user's relationship to a game in their library.
type LibraryStatus string

const (
	StatusPlaying   LibraryStatus = "PLAYING"
	StatusCompleted LibraryStatus = "COMPLETED"
	StatusDropped   LibraryStatus = "DROPPED"
	StatusWishlist  LibraryStatus = "WISHLIST"
)

// ValidLibraryStatus reports whether s is one of the defined library statuses.
func ValidLibraryStatus(s LibraryStatus) bool {
	switch s {
	case StatusPlaying, StatusCompleted, StatusDropped, StatusWishlist:
		return true
	}
	return false
}

// LibraryEntry records that a user has added a game to their library.
// A user cannot add the same game twice.
type LibraryEntry struct {
	gorm.Model
	UserID uint          `gorm:"not null;uniqueIndex:idx_library_user_game"`
	GameID uint          `gorm:"not null;uniqueIndex:idx_library_user_game"`
	Status LibraryStatus `gorm:"size:20;not null;default:'PLAYING'"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Game Game `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
