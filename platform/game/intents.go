package game

import (
	"context"
	"fmt"
	"time"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/platform/engine"
	"github.com/DedS3t/twoworlds-backend/platform/logging"
	"github.com/DedS3t/twoworlds-backend/platform/queues"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
)

type Roll struct {
	RoomId        string `json:"roomId"`
	PlayerId      string `json:"playerId"`
	Dice1         int    `json:"dice1"`
	Dice2         int    `json:"dice2"`
	FlagJailbreak bool   `json:"flagJailbreak"`
}

func (r Roll) Dice() models.DicePair {
	return models.DicePair{Dice1: r.Dice1, Dice2: r.Dice2}
}

// RollDice runs the roll, move, cell action pipeline for the player in turn.
// A jailed player's roll only serves the sentence and ends the turn.
func (s *Service) RollDice(ctx context.Context, roll Roll) error {
	const op = "game.RollDice"
	return s.intent(ctx, op, roll.RoomId, roll.PlayerId, true, func(t *turn) error {
		dice := roll.Dice()
		if !engine.ValidDice(dice) {
			return errs.NewConstraintViolation(op, fmt.Sprintf("invalid dice %d,%d", dice.Dice1, dice.Dice2))
		}
		if n := queues.PendingPayments(t.room.Queue); n > 0 {
			return errs.NewInvalidTransition(op, fmt.Sprintf("%d payments are still pending", n))
		}
		jailed := t.player().RemainingJailTurns > 0
		if roll.FlagJailbreak && !jailed {
			return errs.NewInvalidTransition(op, "player is not in jail")
		}

		queue := queues.Flush(t.room.Queue)
		if err := t.save(models.RoomPatch{Queue: &queue, Dice: &dice}); err != nil {
			return err
		}
		t.s.pub.BroadcastToRoom(t.room.Id, EventShowDices, dice)
		logging.Room(t.room.Id, roll.PlayerId).WithField("dice", dice).Debug("rolled")

		if jailed {
			return t.serveJail(dice)
		}
		return t.advance(engine.ForwardBy(dice.Dice1 + dice.Dice2))
	})
}

func (t *turn) serveJail(dice models.DicePair) error {
	state := t.room.State.Clone()
	remaining := engine.JailRoll(state.Players[t.idx].RemainingJailTurns, dice)
	state.Players[t.idx].RemainingJailTurns = remaining
	if err := t.saveState(state); err != nil {
		return err
	}
	t.s.pub.BroadcastToRoom(t.room.Id, EventCheckJailbreak, JailbreakEvent{RemainingJailTurns: remaining})
	return t.end()
}

// advance moves the player, pays salary and runs the landed cell.
func (t *turn) advance(m engine.Movement) error {
	state, res, err := t.move(t.room.State, m)
	if err != nil {
		return err
	}
	if res.SalaryEligible {
		state = engine.PaySalary(state, t.idx)
	}
	if err := t.saveState(state); err != nil {
		return err
	}
	return t.cellAction()
}

// move paces the display location over the intermediate steps and returns
// the committed state. Only the committed state is persisted.
func (t *turn) move(state models.GameState, m engine.Movement) (models.GameState, engine.MoveResult, error) {
	res := engine.Plan(state.Players[t.idx].Location, m)
	for i, pos := range res.Steps {
		if i == len(res.Steps)-1 {
			break
		}
		state = engine.StepDisplay(state, t.idx, pos)
		t.s.pub.BroadcastToRoom(t.room.Id, EventUpdateGameState, GameStateEvent{GameState: state})
		if err := t.s.pause(t.ctx); err != nil {
			return state, res, err
		}
	}
	return engine.CommitMove(state, t.idx, res), res, nil
}

func (s *Service) pause(ctx context.Context) error {
	if s.opts.StepDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.StepDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *turn) dispatch() (engine.Task, error) {
	task, err := t.s.dispatcher.CellAction(t.room.State, t.room.Queue, t.player().Id)
	if err != nil {
		return task, err
	}
	if err := t.save(models.RoomPatch{State: &task.State, Queue: &task.Queue}); err != nil {
		return task, err
	}
	t.publishState()
	switch {
	case task.Chance != nil:
		t.publishQueue(SyncChance, task.Chance)
	case task.Invoice != nil:
		t.publishQueue(SyncPayments, task.Invoice)
	}
	return task, nil
}

// cellAction applies the rule of the landed cell. A moving chance card
// sends the player on a paced move whose destination rule then runs as
// well. The turn waits while an invoice is pending.
func (t *turn) cellAction() error {
	task, err := t.dispatch()
	if err != nil {
		return err
	}
	if task.Forced != nil {
		return t.advance(*task.Forced)
	}
	if task.Invoice != nil {
		return nil
	}
	return t.checkDouble()
}

// PayInvoice settles the invoice at the head of the payment queue. The
// turn continues once no payment is left.
func (s *Service) PayInvoice(ctx context.Context, roomId, playerId string, acceptOptional bool) error {
	const op = "game.PayInvoice"
	return s.intent(ctx, op, roomId, playerId, true, func(t *turn) error {
		if queues.PendingPayments(t.room.Queue) == 0 {
			return errs.NewInvalidTransition(op, "no payment is pending")
		}
		return t.pay(acceptOptional)
	})
}

func (t *turn) pay(acceptOptional bool) error {
	queue, invoice, _ := queues.DequeuePayment(t.room.Queue)
	state := engine.Settle(t.s.board, t.room.State, t.idx, invoice, acceptOptional)
	if err := t.save(models.RoomPatch{State: &state, Queue: &queue}); err != nil {
		return err
	}
	t.publishState()
	t.publishQueue(SyncPayments, nil)
	logging.Room(t.room.Id, t.player().Id).
		WithField("cell", invoice.CellId).
		WithField("accepted", acceptOptional).
		Debug("invoice settled")

	if queues.PendingPayments(t.room.Queue) > 0 {
		return nil
	}
	return t.checkDouble()
}

// Skip declines the pending invoice. With nothing pending it only
// continues a roll whose doubles check is still outstanding.
func (s *Service) Skip(ctx context.Context, roomId, playerId string) error {
	const op = "game.Skip"
	return s.intent(ctx, op, roomId, playerId, true, func(t *turn) error {
		if queues.PendingPayments(t.room.Queue) > 0 {
			return t.pay(false)
		}
		if !t.rolled() {
			return errs.NewInvalidTransition(op, "nothing to skip: roll the dice first")
		}
		return t.checkDouble()
	})
}

// AckChance marks the oldest unacknowledged chance card as seen.
func (s *Service) AckChance(ctx context.Context, roomId, playerId string) error {
	const op = "game.AckChance"
	return s.intent(ctx, op, roomId, playerId, false, func(t *turn) error {
		queue, id, ok := queues.DequeueChance(t.room.Queue)
		if !ok {
			return errs.NewInvalidTransition(op, "no chance card is pending")
		}
		if err := t.save(models.RoomPatch{Queue: &queue}); err != nil {
			return err
		}
		t.publishQueue(SyncChance, id)
		return nil
	})
}

type TransactionKind string

const (
	Construct TransactionKind = "construct"
	Sell      TransactionKind = "sell"
)

type Transaction struct {
	Type     TransactionKind `json:"type"`
	RoomId   string          `json:"roomId"`
	PlayerId string          `json:"playerId"`
	CellId   int             `json:"cellId"`
	Amount   int             `json:"amount"`
}

// ReportTransaction builds on or sells from a property of the player.
func (s *Service) ReportTransaction(ctx context.Context, tx Transaction) error {
	const op = "game.ReportTransaction"
	return s.intent(ctx, op, tx.RoomId, tx.PlayerId, false, func(t *turn) error {
		var (
			state models.GameState
			err   error
		)
		switch tx.Type {
		case Construct:
			state, err = engine.Construct(t.s.board, t.room.State, tx.PlayerId, tx.CellId)
		case Sell:
			state, err = engine.Deconstruct(t.s.board, t.room.State, tx.PlayerId, tx.CellId, tx.Amount)
		default:
			return errs.NewConstraintViolation(op, fmt.Sprintf("unknown transaction %q", tx.Type))
		}
		if err != nil {
			return err
		}
		return t.saveState(state)
	})
}

// RequestBasicIncome pays the government pool out to every player.
func (s *Service) RequestBasicIncome(ctx context.Context, roomId string) error {
	const op = "game.RequestBasicIncome"
	unlock := s.locks.lock(roomId)
	defer unlock()
	s.cancelAbandon(roomId)

	room, err := s.store.Load(ctx, roomId)
	if err != nil {
		return errs.Wrap(op, err)
	}
	if room.Meta.IsEnded {
		return errs.NewInvalidTransition(op, fmt.Sprintf("room %s has ended", roomId))
	}
	t := &turn{s: s, ctx: ctx, room: room}
	return errs.Wrap(op, t.saveState(engine.DistributeBasicIncome(room.State)))
}

// JailbreakByMoney buys the player in turn out of jail and ends the turn.
func (s *Service) JailbreakByMoney(ctx context.Context, roomId, playerId string) error {
	return s.intent(ctx, "game.JailbreakByMoney", roomId, playerId, true, func(t *turn) error {
		cost := board.JailBuyOut
		if jail, ok := t.s.board.FirstOfKind(models.KindJail); ok {
			if info, ok := jail.Payment(models.P2M); ok {
				cost = info.Cost.Additional
			}
		}
		state, err := engine.BuyOutOfJail(t.room.State, t.idx, cost)
		if err != nil {
			return err
		}
		if err := t.saveState(state); err != nil {
			return err
		}
		return t.end()
	})
}
