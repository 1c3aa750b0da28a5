package models

type Property struct {
	OwnerId    string `json:"ownerId"`
	CellId     int    `json:"cellId"`
	BuiltCount int    `json:"count"`
}

type Sidecars struct {
	LimitRentsTurnsRemaining int `json:"limitRents"`
}

type GameState struct {
	RoomId           string     `json:"roomId"`
	Players          []Player   `json:"players"`
	Properties       []Property `json:"properties"`
	TurnIndex        int        `json:"nowInTurn"`
	GovernmentIncome int        `json:"govIncome"`
	CharityIncome    int        `json:"charityIncome"`
	Sidecars         Sidecars   `json:"sidecars"`
}

// Clone returns a copy that shares no slices with s.
func (s GameState) Clone() GameState {
	out := s
	out.Players = cloneSlice(s.Players)
	out.Properties = cloneSlice(s.Properties)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// PlayerIndex returns the slice index of the player with the given id or -1.
func (s GameState) PlayerIndex(playerId string) int {
	for i, p := range s.Players {
		if p.Id == playerId {
			return i
		}
	}
	return -1
}

// IndexOfIcon returns the slice index of the player holding icon or -1.
func (s GameState) IndexOfIcon(icon int) int {
	for i, p := range s.Players {
		if p.Icon == icon {
			return i
		}
	}
	return -1
}

func (s GameState) PropertyIndex(cellId int) int {
	for i, p := range s.Properties {
		if p.CellId == cellId {
			return i
		}
	}
	return -1
}

// InTurn returns the player whose icon matches TurnIndex.
func (s GameState) InTurn() (Player, bool) {
	idx := s.IndexOfIcon(s.TurnIndex)
	if idx < 0 {
		return Player{}, false
	}
	return s.Players[idx], true
}
