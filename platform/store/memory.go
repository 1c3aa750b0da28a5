package store

import (
	"context"
	"fmt"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/sasha-s/go-deadlock"
)

type MemoryStore struct {
	mutex deadlock.RWMutex
	rooms map[string]models.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]models.Room)}
}

func (s *MemoryStore) Create(_ context.Context, room models.Room) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.rooms[room.Id]; ok {
		return errs.NewInvalidTransition("store.Create", fmt.Sprintf("room %s already exists", room.Id))
	}
	s.rooms[room.Id] = models.RoomPatch{State: &room.State, Queue: &room.Queue}.Apply(room)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, roomId string) (models.Room, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	room, ok := s.rooms[roomId]
	if !ok {
		return models.Room{}, errs.NewNotFound("store.Load", fmt.Sprintf("room %s does not exist", roomId))
	}
	return models.RoomPatch{State: &room.State, Queue: &room.Queue}.Apply(room), nil
}

func (s *MemoryStore) Update(_ context.Context, roomId string, patch models.RoomPatch) (models.Room, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	room, ok := s.rooms[roomId]
	if !ok {
		return models.Room{}, errs.NewNotFound("store.Update", fmt.Sprintf("room %s does not exist", roomId))
	}
	room = patch.Apply(room)
	s.rooms[roomId] = room
	return models.RoomPatch{State: &room.State, Queue: &room.Queue}.Apply(room), nil
}

func (s *MemoryStore) Delete(_ context.Context, roomId string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.rooms, roomId)
	return nil
}
