package game

import (
	"context"
	"time"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/engine"
	"github.com/DedS3t/twoworlds-backend/platform/logging"
	"github.com/DedS3t/twoworlds-backend/platform/queues"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
)

// Disconnected starts the abandon timer of the room when the player holds
// the turn. A reconnect or any intent for the room stops it.
func (s *Service) Disconnected(ctx context.Context, roomId, playerId string) {
	if s.opts.AbandonTimeout <= 0 {
		return
	}
	room, err := s.store.Load(ctx, roomId)
	if err != nil || room.Meta.IsEnded {
		return
	}
	current, ok := room.State.InTurn()
	if !ok || current.Id != playerId {
		return
	}

	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if old, ok := s.timers[roomId]; ok {
		old.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(s.opts.AbandonTimeout, func() {
		s.timersMu.Lock()
		if s.timers[roomId] != timer {
			s.timersMu.Unlock()
			return
		}
		delete(s.timers, roomId)
		s.timersMu.Unlock()

		if err := s.Abandon(context.Background(), roomId, playerId); err != nil {
			logging.Room(roomId, playerId).WithError(err).Warn("abandoning turn failed")
		}
	})
	s.timers[roomId] = timer
	logging.Room(roomId, playerId).WithField("timeout", s.opts.AbandonTimeout).Info("player disconnected in turn")
}

func (s *Service) cancelAbandon(roomId string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[roomId]; ok {
		timer.Stop()
		delete(s.timers, roomId)
	}
}

// Abandon settles the pending invoices of the player without their
// optional legs and ends the turn. It does nothing when the player no
// longer holds the turn.
func (s *Service) Abandon(ctx context.Context, roomId, playerId string) error {
	const op = "game.Abandon"
	unlock := s.locks.lock(roomId)
	defer unlock()

	t, err := s.begin(ctx, op, roomId, playerId, true)
	if err != nil {
		if errs.Is(err, errs.InvalidTransition) {
			return nil
		}
		return err
	}
	for queues.PendingPayments(t.room.Queue) > 0 {
		queue, invoice, _ := queues.DequeuePayment(t.room.Queue)
		state := engine.Settle(s.board, t.room.State, t.idx, invoice, false)
		if err := t.save(models.RoomPatch{State: &state, Queue: &queue}); err != nil {
			return errs.Wrap(op, err)
		}
	}
	t.publishState()
	logging.Room(roomId, playerId).Info("turn abandoned")
	return errs.Wrap(op, t.end())
}
