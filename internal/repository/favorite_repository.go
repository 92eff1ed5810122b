package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// FavoriteRepository keeps one Redis set of class ids per device.
type FavoriteRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewFavoriteRepository constructs the repository. Sets expire ttl after the
// last write; a zero ttl keeps them forever.
func NewFavoriteRepository(client redis.UniversalClient, ttl time.Duration) *FavoriteRepository {
	return &FavoriteRepository{client: client, ttl: ttl}
}

func favoritesKey(deviceID string) string {
	return "favorites:" + deviceID
}

// Add marks classID as favorited for deviceID.
func (r *FavoriteRepository) Add(ctx context.Context, deviceID, classID string) error {
	key := favoritesKey(deviceID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, classID)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove unmarks classID for deviceID.
func (r *FavoriteRepository) Remove(ctx context.Context, deviceID, classID string) error {
	if err := r.client.SRem(ctx, favoritesKey(deviceID), classID).Err(); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// Contains reports whether classID is favorited for deviceID.
func (r *FavoriteRepository) Contains(ctx context.Context, deviceID, classID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, favoritesKey(deviceID), classID).Result()
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

// List returns the favorited class ids for deviceID in lexical order.
func (r *FavoriteRepository) List(ctx context.Context, deviceID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, favoritesKey(deviceID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
