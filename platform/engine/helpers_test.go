package engine

import (
	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
)

var testBoard = board.MustLoad()

func newTestState() models.GameState {
	return NewGameState("room-1", []string{"alice", "bob", "carol", "dave"})
}

func withProperty(state models.GameState, owner string, cellId, built int) models.GameState {
	out := state.Clone()
	out.Properties = append(out.Properties, models.Property{OwnerId: owner, CellId: cellId, BuiltCount: built})
	return out
}

func at(state models.GameState, idx, location int) models.GameState {
	out := state.Clone()
	out.Players[idx].Location = location
	out.Players[idx].DisplayLocation = location
	return out
}
