package engine

import (
	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
)

type Direction int

const (
	Warp Direction = iota
	Forward
	Backward
)

// Movement is a movement intent. Forward and Backward either step by
// Amount or navigate to Dest; Warp always jumps straight to Dest.
type Movement struct {
	Direction  Direction
	NavigateTo bool
	Amount     int
	Dest       int
}

func WarpTo(dest int) Movement { return Movement{Direction: Warp, Dest: dest} }
func ForwardBy(n int) Movement { return Movement{Direction: Forward, Amount: n} }
func ForwardTo(dest int) Movement { return Movement{Direction: Forward, NavigateTo: true, Dest: dest} }
func BackwardBy(n int) Movement { return Movement{Direction: Backward, Amount: n} }
func BackwardTo(dest int) Movement { return Movement{Direction: Backward, NavigateTo: true, Dest: dest} }

type MoveResult struct {
	Begin int
	Dest  int
	// Steps are the cells passed through, in order. The last one is Dest
	// unless the move is a warp or covers no distance.
	Steps          []int
	SalaryEligible bool
}

// Plan computes where a player standing on begin ends up.
func Plan(begin int, m Movement) MoveResult {
	res := MoveResult{Begin: begin}
	switch m.Direction {
	case Warp:
		res.Dest = board.Wrap(m.Dest)
	case Forward:
		var amount int
		if m.NavigateTo {
			res.Dest = board.Wrap(m.Dest)
			amount = res.Dest - begin
		} else {
			res.Dest = board.Wrap(begin + m.Amount)
			amount = m.Amount % board.Size
			if amount == 0 && m.Amount > 0 {
				amount = board.Size
			}
		}
		for n := 1; n <= amount; n++ {
			res.Steps = append(res.Steps, board.Wrap(begin+n))
		}
		res.SalaryEligible = amount != 0 && res.Dest <= begin
	case Backward:
		var amount int
		if m.NavigateTo {
			res.Dest = board.Wrap(m.Dest)
			amount = board.Wrap(begin - res.Dest)
		} else {
			res.Dest = board.Wrap(begin - m.Amount)
			amount = m.Amount
		}
		for n := 1; n <= amount; n++ {
			res.Steps = append(res.Steps, board.Wrap(begin-n))
		}
		res.SalaryEligible = amount != 0 && res.Dest >= begin
	}
	return res
}

// StepDisplay moves only the display location of the player at idx.
func StepDisplay(state models.GameState, idx, pos int) models.GameState {
	out := state.Clone()
	out.Players[idx].DisplayLocation = board.Wrap(pos)
	return out
}

// CommitMove sets both the authoritative and the display location.
func CommitMove(state models.GameState, idx int, res MoveResult) models.GameState {
	out := state.Clone()
	out.Players[idx].Location = res.Dest
	out.Players[idx].DisplayLocation = res.Dest
	return out
}

// Move plans m for the player at idx and commits the final location.
func Move(state models.GameState, idx int, m Movement) (models.GameState, MoveResult) {
	res := Plan(state.Players[idx].Location, m)
	return CommitMove(state, idx, res), res
}
