// Package store holds per-room records keyed by room id.
package store

import (
	"context"

	"github.com/DedS3t/twoworlds-backend/app/models"
)

// Store reads and updates rooms. Load returns an errs.NotFound error for
// unknown ids; backend failures come back as errs.Internal.
type Store interface {
	Create(ctx context.Context, room models.Room) error
	Load(ctx context.Context, roomId string) (models.Room, error)
	// Update applies a shallow partial merge and returns the merged room.
	Update(ctx context.Context, roomId string, patch models.RoomPatch) (models.Room, error)
	Delete(ctx context.Context, roomId string) error
}
