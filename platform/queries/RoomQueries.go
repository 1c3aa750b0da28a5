package queries

import (
	"context"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/go-pg/pg/v10"
)

const (
	StatusStarted = "in progress"
	StatusEnded   = "ended"
)

// RoomRecords keeps the durable history of rooms in Postgres. Live game
// state lives in the room store.
type RoomRecords struct {
	db *pg.DB
}

func NewRoomRecords(db *pg.DB) *RoomRecords {
	return &RoomRecords{db: db}
}

func (r *RoomRecords) CreateRoom(ctx context.Context, roomId, host string, players []string) error {
	rec := &models.RoomRecord{
		Id:      roomId,
		Host:    host,
		Players: players,
		Status:  StatusStarted,
	}
	_, err := r.db.ModelContext(ctx, rec).OnConflict("(id) DO NOTHING").Insert()
	return errs.Wrap("queries.CreateRoom", err)
}

func (r *RoomRecords) VerifyRoom(ctx context.Context, roomId string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*models.RoomRecord)(nil)).Where("id = ?", roomId).Exists()
	return exists, errs.Wrap("queries.VerifyRoom", err)
}

// EndRoom marks the room finished and stores the final net worths.
func (r *RoomRecords) EndRoom(ctx context.Context, roomId string, worths []models.NetWorth) error {
	const op = "queries.EndRoom"
	return errs.Wrap(op, r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, &models.RoomRecord{Id: roomId}).
			Set("status = ?", StatusEnded).
			WherePK().
			Update()
		if err != nil {
			return err
		}
		if len(worths) == 0 {
			return nil
		}
		results := make([]models.ResultRecord, 0, len(worths))
		for _, w := range worths {
			results = append(results, models.ResultRecord{RoomId: roomId, PlayerId: w.PlayerId, NetWorth: w.Value})
		}
		_, err = tx.ModelContext(ctx, &results).OnConflict("(room_id, player_id) DO UPDATE").Set("net_worth = EXCLUDED.net_worth").Insert()
		return err
	}))
}
