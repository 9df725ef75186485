package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moodfm/db"
	"moodfm/logger"
	"moodfm/model"

	"github.com/redis/go-redis/v9"
)

// favoriteTTL bounds how long cached favorite entries live; the repository
// stays the source of truth.
const favoriteTTL = 24 * time.Hour

// favoriteKey builds the Redis key for one favorited track.
func favoriteKey(trackID string) string {
	return fmt.Sprintf("favorite:%s", trackID)
}

// PutFavorite caches a favorite record.
func PutFavorite(ctx context.Context, favorite model.Favorite) error {
	if db.RedisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if favorite.TrackID == "" {
		return fmt.Errorf("favorite track ID must not be empty")
	}

	payload, err := json.Marshal(favorite)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}

	if err := db.RedisClient.Set(ctx, favoriteKey(favorite.TrackID), payload, favoriteTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache favorite %s: %w", favorite.TrackID, err)
	}
	return nil
}

// GetFavorite fetches a cached favorite, or nil on a miss.
func GetFavorite(ctx context.Context, trackID string) (*model.Favorite, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	payload, err := db.RedisClient.Get(ctx, favoriteKey(trackID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached favorite %s: %w", trackID, err)
	}

	var favorite model.Favorite
	if err := json.Unmarshal(payload, &favorite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached favorite %s: %w", trackID, err)
	}
	return &favorite, nil
}

// RemoveFavorite drops a favorite from the cache.
func RemoveFavorite(ctx context.Context, trackID string) error {
	if db.RedisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}
	if err := db.RedisClient.Del(ctx, favoriteKey(trackID)).Err(); err != nil {
		return fmt.Errorf("failed to remove cached favorite %s: %w", trackID, err)
	}
	return nil
}

// HasFavorite is the existence fast path. It only answers definitively on a
// cache hit; a miss means "ask the repository".
func HasFavorite(ctx context.Context, trackID string) (bool, error) {
	if db.RedisClient == nil {
		return false, fmt.Errorf("redis client not initialized")
	}
	count, err := db.RedisClient.Exists(ctx, favoriteKey(trackID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cached favorite %s: %w", trackID, err)
	}
	return count > 0, nil
}

// WarmUpFavorites preloads the cache with recent favorites at startup.
func WarmUpFavorites(ctx context.Context, favorites []model.Favorite) {
	warmed := 0
	for _, favorite := range favorites {
		if favorite.TrackID == "" {
			continue
		}
		if err := PutFavorite(ctx, favorite); err != nil {
			logger.Warn("[FavoriteCache] warm-up entry failed",
				logger.String("trackId", favorite.TrackID),
				logger.ErrorField(err))
			continue
		}
		warmed++
	}
	logger.Info("[FavoriteCache] warm-up complete", logger.Int("entries", warmed))
}
