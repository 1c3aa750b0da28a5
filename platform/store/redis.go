package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/cache"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/gomodule/redigo/redis"
)

const (
	fieldMeta    = "roomMeta"
	fieldState   = "gameState"
	fieldQueue   = "roomQueue"
	fieldDoubles = "doublesCount"
	fieldDice    = "dicePair"
)

// RedisStore keeps one hash per room with a JSON value per field, so each
// part of a room is read and written independently.
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

func NewRedisStore(pool *redis.Pool) *RedisStore {
	return &RedisStore{pool: pool, prefix: "twoworlds:room:"}
}

func (s *RedisStore) key(roomId string) string {
	return s.prefix + roomId
}

func (s *RedisStore) conn(ctx context.Context, op string) (redis.Conn, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}
	return conn, nil
}

func encodePatch(patch models.RoomPatch) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	put := func(name string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fields[name] = raw
		return nil
	}
	if patch.Meta != nil {
		if err := put(fieldMeta, patch.Meta); err != nil {
			return nil, err
		}
	}
	if patch.State != nil {
		if err := put(fieldState, patch.State); err != nil {
			return nil, err
		}
	}
	if patch.Queue != nil {
		if err := put(fieldQueue, patch.Queue); err != nil {
			return nil, err
		}
	}
	if patch.DoublesCount != nil {
		if err := put(fieldDoubles, patch.DoublesCount); err != nil {
			return nil, err
		}
	}
	if patch.Dice != nil {
		if err := put(fieldDice, patch.Dice); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func decodeRoom(roomId string, fields map[string]string) (models.Room, error) {
	room := models.Room{Id: roomId}
	targets := map[string]interface{}{
		fieldMeta:    &room.Meta,
		fieldState:   &room.State,
		fieldQueue:   &room.Queue,
		fieldDoubles: &room.DoublesCount,
		fieldDice:    &room.Dice,
	}
	for name, target := range targets {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return models.Room{}, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return room, nil
}

func (s *RedisStore) Create(ctx context.Context, room models.Room) error {
	const op = "store.Create"
	conn, err := s.conn(ctx, op)
	if err != nil {
		return err
	}
	defer conn.Close()

	fields, err := encodePatch(models.RoomPatch{
		Meta:         &room.Meta,
		State:        &room.State,
		Queue:        &room.Queue,
		DoublesCount: &room.DoublesCount,
		Dice:         &room.Dice,
	})
	if err != nil {
		return errs.Wrap(op, err)
	}
	created, err := cache.HSETNX(s.key(room.Id), fieldMeta, fields[fieldMeta], conn)
	if err != nil {
		return errs.Wrap(op, err)
	}
	if !created {
		return errs.NewInvalidTransition(op, fmt.Sprintf("room %s already exists", room.Id))
	}
	delete(fields, fieldMeta)
	return errs.Wrap(op, cache.HMSET(s.key(room.Id), fields, conn))
}

func (s *RedisStore) Load(ctx context.Context, roomId string) (models.Room, error) {
	const op = "store.Load"
	conn, err := s.conn(ctx, op)
	if err != nil {
		return models.Room{}, err
	}
	defer conn.Close()
	return s.load(conn, op, roomId)
}

func (s *RedisStore) load(conn redis.Conn, op, roomId string) (models.Room, error) {
	fields, err := cache.HGETALL(s.key(roomId), conn)
	if err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	if len(fields) == 0 {
		return models.Room{}, errs.NewNotFound(op, fmt.Sprintf("room %s does not exist", roomId))
	}
	room, err := decodeRoom(roomId, fields)
	if err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	return room, nil
}

func (s *RedisStore) Update(ctx context.Context, roomId string, patch models.RoomPatch) (models.Room, error) {
	const op = "store.Update"
	conn, err := s.conn(ctx, op)
	if err != nil {
		return models.Room{}, err
	}
	defer conn.Close()

	exists, err := cache.Exists(s.key(roomId), conn)
	if err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	if !exists {
		return models.Room{}, errs.NewNotFound(op, fmt.Sprintf("room %s does not exist", roomId))
	}
	fields, err := encodePatch(patch)
	if err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	if err := cache.HMSET(s.key(roomId), fields, conn); err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	return s.load(conn, op, roomId)
}

func (s *RedisStore) Delete(ctx context.Context, roomId string) error {
	const op = "store.Delete"
	conn, err := s.conn(ctx, op)
	if err != nil {
		return err
	}
	defer conn.Close()
	return errs.Wrap(op, cache.Del(s.key(roomId), conn))
}
