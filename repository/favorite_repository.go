package repository

import (
	"fmt"
	"time"

	"moodfm/db"
	"moodfm/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the favorites store operations.
type FavoriteRepository interface {
	Upsert(favorite *model.Favorite) error
	DeleteByTrackID(trackID string) error
	Exists(trackID string) (bool, error)
	GetByTrackID(trackID string) (*model.Favorite, error)
	ListAll(userID int64) ([]model.Favorite, error)
	ListByDateRange(userID int64, start, end time.Time) ([]model.Favorite, error)
	Recent(limit int) ([]model.Favorite, error)
	Count(userID int64) (int64, error)
}

type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a GORM-backed favorites repository.
func NewFavoriteRepository() FavoriteRepository {
	return &gormFavoriteRepository{db: db.GormDB}
}

// NewFavoriteRepositoryWithDB creates a repository over an explicit
// connection, for tests.
func NewFavoriteRepositoryWithDB(conn *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: conn}
}

// Upsert inserts a favorite, replacing the record when the track ID already
// exists.
func (r *gormFavoriteRepository) Upsert(favorite *model.Favorite) error {
	if favorite.TrackID == "" {
		return fmt.Errorf("favorite track ID must not be empty")
	}
	if favorite.SavedAt.IsZero() {
		favorite.SavedAt = time.Now()
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "track_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "title", "artist", "thumbnail_url", "image_url", "duration_ms", "saved_at",
		}),
	}).Create(favorite).Error
	if err != nil {
		return fmt.Errorf("failed to upsert favorite %s: %w", favorite.TrackID, err)
	}
	return nil
}

// DeleteByTrackID removes a favorite by its track ID.
func (r *gormFavoriteRepository) DeleteByTrackID(trackID string) error {
	if err := r.db.Where("track_id = ?", trackID).Delete(&model.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", trackID, err)
	}
	return nil
}

// Exists reports whether a track is favorited.
func (r *gormFavoriteRepository) Exists(trackID string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Favorite{}).Where("track_id = ?", trackID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", trackID, err)
	}
	return count > 0, nil
}

// GetByTrackID fetches one favorite, or nil when absent.
func (r *gormFavoriteRepository) GetByTrackID(trackID string) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("track_id = ?", trackID).First(&favorite).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite %s: %w", trackID, err)
	}
	return &favorite, nil
}

// ListAll returns the user's favorites, most recently saved first.
func (r *gormFavoriteRepository) ListAll(userID int64) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Where("user_id = ?", userID).Order("saved_at DESC").Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// ListByDateRange returns favorites saved within [start, end], most recent
// first.
func (r *gormFavoriteRepository) ListByDateRange(userID int64, start, end time.Time) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Where("user_id = ? AND saved_at BETWEEN ? AND ?", userID, start, end).
		Order("saved_at DESC").Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites by range: %w", err)
	}
	return favorites, nil
}

// Recent returns the most recently saved favorites across users, for cache
// warm-up.
func (r *gormFavoriteRepository) Recent(limit int) ([]model.Favorite, error) {
	if limit <= 0 {
		limit = 50
	}
	var favorites []model.Favorite
	err := r.db.Order("saved_at DESC").Limit(limit).Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent favorites: %w", err)
	}
	return favorites, nil
}

// Count returns the user's favorite count.
func (r *gormFavoriteRepository) Count(userID int64) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
