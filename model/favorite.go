package model

import "time"

// Favorite is a saved track, keyed by the catalog track ID.
type Favorite struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TrackID      string    `json:"trackId" gorm:"uniqueIndex;size:64;not null"`
	UserID       int64     `json:"userId" gorm:"index;not null"`
	Title        string    `json:"title" gorm:"size:255"`
	Artist       string    `json:"artist" gorm:"size:255"`
	ThumbnailURL string    `json:"thumbnailUrl" gorm:"size:512"`
	ImageURL     string    `json:"imageUrl" gorm:"size:512"`
	DurationMs   int64     `json:"durationMs"`
	SavedAt      time.Time `json:"savedAt" gorm:"index"`
}

// TableName fixes the table name for GORM.
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteFromTrack builds a Favorite record from a resolved track.
func FavoriteFromTrack(userID int64, t Track) Favorite {
	return Favorite{
		TrackID:      t.TrackID,
		UserID:       userID,
		Title:        t.Title,
		Artist:       t.Artist,
		ThumbnailURL: t.ThumbnailURL,
		ImageURL:     t.ImageURL,
		DurationMs:   t.DurationMs,
		SavedAt:      time.Now(),
	}
}

// Track converts a Favorite back into the track shape used by the player.
func (f Favorite) Track() Track {
	return Track{
		Title:        f.Title,
		Artist:       f.Artist,
		ThumbnailURL: f.ThumbnailURL,
		ImageURL:     f.ImageURL,
		TrackID:      f.TrackID,
		DurationMs:   f.DurationMs,
	}
}
