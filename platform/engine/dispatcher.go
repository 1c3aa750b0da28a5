package engine

import (
	"fmt"
	"math/rand"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/platform/queues"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
)

// Task is the outcome of a cell action.
type Task struct {
	State        models.GameState
	Queue        models.RoomQueue
	CellKind     models.CellKind
	TurnFinished bool

	// Set when a chance card was drawn.
	Chance *ChanceCard
	// Set when a payment invoice was queued.
	Invoice *models.PaymentInvoice
	// Set when the action moved the player (transportation).
	Move *MoveResult
	// Set when a chance card sends the player elsewhere. The move is not
	// applied to State yet.
	Forced *Movement
}

type Dispatcher struct {
	Board *board.Registry
	// Draw picks a chance card id.
	Draw func() string
}

func NewDispatcher(reg *board.Registry) *Dispatcher {
	return &Dispatcher{
		Board: reg,
		Draw: func() string {
			return ChanceIds[rand.Intn(len(ChanceIds))]
		},
	}
}

// CellAction applies the rule of the cell the player currently stands on.
func (d *Dispatcher) CellAction(state models.GameState, queue models.RoomQueue, playerId string) (Task, error) {
	idx := state.PlayerIndex(playerId)
	if idx < 0 {
		return Task{}, errs.NewNotFound("engine.CellAction", fmt.Sprintf("player %s is not seated", playerId))
	}
	cell := d.Board.Cell(state.Players[idx].Location)
	task := Task{State: state.Clone(), Queue: queue.Clone(), CellKind: cell.Kind}

	switch cell.Kind {
	case models.KindStart, models.KindPark:
		task.TurnFinished = true
	case models.KindUniversity:
		task.State.Players[idx].University = AdvanceUniversity(task.State.Players[idx].University)
		task.TurnFinished = true
	case models.KindChance:
		card, ok := ChanceCards[d.Draw()]
		if !ok {
			return Task{}, errs.NewConstraintViolation("engine.CellAction", "unknown chance card")
		}
		task.State, task.Forced = ApplyChance(d.Board, task.State, idx, card.Id)
		task.Queue = queues.EnqueueChance(task.Queue, card.Id)
		task.Chance = &card
	case models.KindTransportation:
		var res MoveResult
		task.State, res = Move(task.State, idx, WarpTo(cell.Dest))
		task.Move = &res
		task.TurnFinished = true
	case models.KindJail:
		task.State = EnterJail(task.State, idx)
		task.TurnFinished = true
	case models.KindLand, models.KindIndustrial, models.KindInfrastructure, models.KindLotto,
		models.KindCharity, models.KindHospital, models.KindConcert:
		var invoice models.PaymentInvoice
		task.State, invoice = Invoice(d.Board, task.State, idx, cell)
		task.Queue = queues.EnqueuePayment(task.Queue, invoice)
		task.Invoice = &invoice
	default:
		return Task{}, errs.NewConstraintViolation("engine.CellAction", fmt.Sprintf("cell %d has unknown kind %q", cell.Id, cell.Kind))
	}
	return task, nil
}
