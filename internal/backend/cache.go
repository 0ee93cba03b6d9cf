package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/redis/go-redis/v9"
)

const roomKeyPrefix = "room:"

// RoomCache is a read-through Redis cache in front of a RoomLoader. Room
// descriptors are the same for every user, so entries are keyed by room only.
// Cache failures are logged and fall through to the loader.
type RoomCache struct {
	loader domain.RoomLoader
	redis  redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewRoomCache(loader domain.RoomLoader, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RoomCache {
	return &RoomCache{
		loader: loader,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func roomKey(roomID int) string {
	return fmt.Sprintf("%s%d", roomKeyPrefix, roomID)
}

func (c *RoomCache) GetRoom(ctx context.Context, cred domain.Credential, roomID int) (*domain.Room, error) {
	key := roomKey(roomID)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var room domain.Room
		if err := json.Unmarshal(data, &room); err == nil {
			return &room, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cached room", "room_id", roomID)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "room cache read failed", "room_id", roomID, "error", err)
	}

	room, err := c.loader.GetRoom(ctx, cred, roomID)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(room)
	if err != nil {
		return nil, err
	}

	err = c.redis.Set(ctx, key, data, c.ttl).Err()
	if err != nil {
		c.logger.WarnContext(ctx, "room cache write failed", "room_id", roomID, "error", err)
	}

	return room, nil
}

// Invalidate drops the cached descriptor so the next load sees fresh
// availability.
func (c *RoomCache) Invalidate(ctx context.Context, roomID int) error {
	return c.redis.Del(ctx, roomKey(roomID)).Err()
}
