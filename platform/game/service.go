// Package game runs rooms. Every intent for a room is serialized on the
// room's lock for the whole load, transition, persist and publish cycle.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/platform/engine"
	"github.com/DedS3t/twoworlds-backend/platform/logging"
	"github.com/DedS3t/twoworlds-backend/platform/store"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/sasha-s/go-deadlock"
	uuid "github.com/satori/go.uuid"
)

const MaxPlayers = 4

// Records keeps durable room history. Failures are logged and never
// abort a game.
type Records interface {
	CreateRoom(ctx context.Context, roomId, host string, players []string) error
	EndRoom(ctx context.Context, roomId string, worths []models.NetWorth) error
}

type Options struct {
	StepDelay      time.Duration
	AbandonTimeout time.Duration
	// Shuffle orders the seats of a new room.
	Shuffle func([]string)
	// Draw picks a chance card id.
	Draw func() string
}

type Service struct {
	store      store.Store
	board      *board.Registry
	dispatcher *engine.Dispatcher
	pub        Publisher
	records    Records
	opts       Options

	locks *roomLocks

	timersMu deadlock.Mutex
	timers   map[string]*time.Timer
}

func NewService(st store.Store, reg *board.Registry, pub Publisher, records Records, opts Options) *Service {
	if opts.Shuffle == nil {
		opts.Shuffle = func(ids []string) {
			rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		}
	}
	dispatcher := engine.NewDispatcher(reg)
	if opts.Draw != nil {
		dispatcher.Draw = opts.Draw
	}
	return &Service{
		store:      st,
		board:      reg,
		dispatcher: dispatcher,
		pub:        pub,
		records:    records,
		opts:       opts,
		locks:      newRoomLocks(),
		timers:     make(map[string]*time.Timer),
	}
}

// CreateRoom seats the players in a shuffled order and starts the game.
// An empty roomId gets a generated one.
func (s *Service) CreateRoom(ctx context.Context, roomId string, playerIds []string) (models.Room, error) {
	const op = "game.CreateRoom"
	if len(playerIds) == 0 || len(playerIds) > MaxPlayers {
		return models.Room{}, errs.NewConstraintViolation(op, fmt.Sprintf("a room seats 1 to %d players", MaxPlayers))
	}
	seen := make(map[string]bool, len(playerIds))
	for _, id := range playerIds {
		if id == "" || seen[id] {
			return models.Room{}, errs.NewConstraintViolation(op, "player ids must be unique and non-empty")
		}
		seen[id] = true
	}
	if roomId == "" {
		roomId = uuid.NewV4().String()
	}

	seats := append([]string(nil), playerIds...)
	s.opts.Shuffle(seats)
	room := models.Room{
		Id: roomId,
		Meta: models.RoomMeta{
			HostId:    playerIds[0],
			Guests:    append([]string{}, playerIds[1:]...),
			MaxGuests: MaxPlayers - 1,
			IsStarted: true,
		},
		State: engine.NewGameState(roomId, seats),
		Queue: models.RoomQueue{
			Chances:  models.ChanceQueue{Queue: []string{}},
			Payments: models.PaymentQueue{Queue: []models.PaymentInvoice{}},
		},
	}

	unlock := s.locks.lock(roomId)
	defer unlock()
	if err := s.store.Create(ctx, room); err != nil {
		return models.Room{}, errs.Wrap(op, err)
	}
	if s.records != nil {
		if err := s.records.CreateRoom(ctx, roomId, room.Meta.HostId, seats); err != nil {
			logging.Room(roomId, "").WithError(err).Warn("recording room failed")
		}
	}
	logging.Room(roomId, "").WithField("players", seats).Info("room created")
	return room, nil
}

// Room returns the stored room.
func (s *Service) Room(ctx context.Context, roomId string) (models.Room, error) {
	return s.store.Load(ctx, roomId)
}

type JoinResult struct {
	Room       models.Room
	IsPlayable bool
}

// Join looks a room up for a connecting client. Spectators may join; only
// seated players are playable.
func (s *Service) Join(ctx context.Context, roomId, playerId string) (JoinResult, error) {
	unlock := s.locks.lock(roomId)
	defer unlock()

	room, err := s.store.Load(ctx, roomId)
	if err != nil {
		return JoinResult{}, errs.Wrap("game.Join", err)
	}
	playable := room.State.PlayerIndex(playerId) >= 0
	if playable {
		s.cancelAbandon(roomId)
	}
	logging.Room(roomId, playerId).WithField("playable", playable).Debug("joined")
	return JoinResult{Room: room, IsPlayable: playable}, nil
}

// turn carries a room through one serialized intent.
type turn struct {
	s    *Service
	ctx  context.Context
	room models.Room
	idx  int
}

func (t *turn) player() models.Player {
	return t.room.State.Players[t.idx]
}

func (t *turn) save(patch models.RoomPatch) error {
	room, err := t.s.store.Update(t.ctx, t.room.Id, patch)
	if err != nil {
		return err
	}
	t.room = room
	return nil
}

func (t *turn) saveState(state models.GameState) error {
	if err := t.save(models.RoomPatch{State: &state}); err != nil {
		return err
	}
	t.publishState()
	return nil
}

func (t *turn) publishState() {
	t.s.pub.BroadcastToRoom(t.room.Id, EventUpdateGameState, GameStateEvent{GameState: t.room.State})
}

func (t *turn) publishQueue(kind string, payload interface{}) {
	t.s.pub.BroadcastToRoom(t.room.Id, EventSyncQueue, SyncQueueEvent{Kind: kind, Queues: t.room.Queue, Payload: payload})
}

// begin loads an active room and locates the player. inTurn additionally
// requires the player to hold the turn.
func (s *Service) begin(ctx context.Context, op, roomId, playerId string, inTurn bool) (*turn, error) {
	room, err := s.store.Load(ctx, roomId)
	if err != nil {
		return nil, errs.Wrap(op, err)
	}
	if !room.Meta.IsStarted || room.Meta.IsEnded {
		return nil, errs.NewInvalidTransition(op, fmt.Sprintf("room %s is not in play", roomId))
	}
	idx := room.State.PlayerIndex(playerId)
	if idx < 0 {
		return nil, errs.NewNotFound(op, fmt.Sprintf("player %s is not seated in room %s", playerId, roomId))
	}
	if inTurn && room.State.Players[idx].Icon != room.State.TurnIndex {
		return nil, errs.NewInvalidTransition(op, fmt.Sprintf("it is not %s's turn", playerId))
	}
	return &turn{s: s, ctx: ctx, room: room, idx: idx}, nil
}

// intent runs fn under the room lock. Any intent cancels a pending
// abandon timer of the room.
func (s *Service) intent(ctx context.Context, op, roomId, playerId string, inTurn bool, fn func(t *turn) error) error {
	unlock := s.locks.lock(roomId)
	defer unlock()
	s.cancelAbandon(roomId)

	t, err := s.begin(ctx, op, roomId, playerId, inTurn)
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return errs.Wrap(op, err)
	}
	return nil
}

// rolled reports whether the doubles check of the last roll is still
// outstanding. The dice are cleared once it has run.
func (t *turn) rolled() bool {
	return t.room.Dice != models.DicePair{}
}

// checkDouble keeps the turn with the roller after a double and ends it
// otherwise.
func (t *turn) checkDouble() error {
	doubles, again := engine.AfterRoll(t.room.DoublesCount, t.room.Dice)
	if !again {
		return t.end()
	}
	var cleared models.DicePair
	if err := t.save(models.RoomPatch{DoublesCount: &doubles, Dice: &cleared}); err != nil {
		return err
	}
	t.s.pub.BroadcastToRoom(t.room.Id, EventRefreshDoubles, DoublesEvent{Count: doubles})
	t.s.pub.BroadcastToRoom(t.room.Id, EventTurnBegin, TurnBeginEvent{
		PlayerId:     t.player().Id,
		DoublesCount: doubles,
	})
	return nil
}

// end passes the turn on, or finishes the game once every player has
// completed the cycle limit.
func (t *turn) end() error {
	state := engine.NextTurn(t.room.State)
	zero := 0
	var cleared models.DicePair
	if err := t.save(models.RoomPatch{State: &state, DoublesCount: &zero, Dice: &cleared}); err != nil {
		return err
	}
	t.s.pub.BroadcastToRoom(t.room.Id, EventNext, nil)
	t.publishState()
	t.s.pub.BroadcastToRoom(t.room.Id, EventRefreshDoubles, DoublesEvent{})

	if engine.IsGameOver(state, engine.CycleLimit) {
		return t.finish()
	}
	next, ok := state.InTurn()
	if !ok {
		return errs.NewNotFound("game.end", fmt.Sprintf("no player holds icon %d", state.TurnIndex))
	}
	t.s.pub.BroadcastToRoom(t.room.Id, EventTurnBegin, TurnBeginEvent{
		PlayerId:     next.Id,
		AskJailbreak: next.RemainingJailTurns > 0,
	})
	logging.Room(t.room.Id, next.Id).Debug("turn begins")
	return nil
}

func (t *turn) finish() error {
	worths := engine.NetWorths(t.room.State)
	meta := t.room.Meta
	meta.IsEnded = true
	if err := t.save(models.RoomPatch{Meta: &meta}); err != nil {
		return err
	}
	if t.s.records != nil {
		if err := t.s.records.EndRoom(t.ctx, t.room.Id, worths); err != nil {
			logging.Room(t.room.Id, "").WithError(err).Warn("recording results failed")
		}
	}
	t.s.pub.BroadcastToRoom(t.room.Id, EventEndGame, EndGameEvent{FinalNetWorths: worths})
	logging.Room(t.room.Id, "").WithField("worths", worths).Info("game ended")
	return nil
}
