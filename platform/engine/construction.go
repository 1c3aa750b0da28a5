package engine

import (
	"fmt"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
)

// Construct builds one more unit on a property the player owns.
func Construct(reg *board.Registry, state models.GameState, playerId string, cellId int) (models.GameState, error) {
	const op = "engine.Construct"
	idx := state.PlayerIndex(playerId)
	if idx < 0 {
		return state, errs.NewNotFound(op, fmt.Sprintf("player %s is not seated", playerId))
	}
	cell, err := reg.GetByPos(cellId)
	if err != nil {
		return state, errs.NewNotFound(op, err.Error())
	}
	propIdx := state.PropertyIndex(cellId)
	if propIdx < 0 || state.Properties[propIdx].OwnerId != playerId {
		return state, errs.NewConstraintViolation(op, fmt.Sprintf("cell %d is not owned by %s", cellId, playerId))
	}
	if cell.MaxBuildable == 0 || state.Properties[propIdx].BuiltCount >= cell.MaxBuildable {
		return state, errs.NewConstraintViolation(op, fmt.Sprintf("cell %d cannot be built any further", cellId))
	}

	out := state.Clone()
	out.Players[idx].Cash -= ConstructionCost
	out.Properties[propIdx].BuiltCount++
	return out, nil
}

// Deconstruct sells up to amount units back for ConstructionCost each.
// Properties left without units are released.
func Deconstruct(reg *board.Registry, state models.GameState, playerId string, cellId, amount int) (models.GameState, error) {
	const op = "engine.Deconstruct"
	idx := state.PlayerIndex(playerId)
	if idx < 0 {
		return state, errs.NewNotFound(op, fmt.Sprintf("player %s is not seated", playerId))
	}
	cell, err := reg.GetByPos(cellId)
	if err != nil {
		return state, errs.NewNotFound(op, err.Error())
	}
	propIdx := state.PropertyIndex(cellId)
	if propIdx < 0 || state.Properties[propIdx].OwnerId != playerId {
		return state, errs.NewConstraintViolation(op, fmt.Sprintf("cell %d is not owned by %s", cellId, playerId))
	}
	if cell.MaxBuildable == 0 || state.Properties[propIdx].BuiltCount <= 0 || amount <= 0 {
		return state, errs.NewConstraintViolation(op, fmt.Sprintf("nothing to sell on cell %d", cellId))
	}

	sold := amount
	if built := state.Properties[propIdx].BuiltCount; sold > built {
		sold = built
	}
	out := state.Clone()
	out.Players[idx].Cash += ConstructionCost * sold
	out.Properties[propIdx].BuiltCount -= sold

	kept := out.Properties[:0]
	for _, p := range out.Properties {
		if p.BuiltCount > 0 {
			kept = append(kept, p)
		}
	}
	out.Properties = kept
	return out, nil
}
