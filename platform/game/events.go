package game

import "github.com/DedS3t/twoworlds-backend/app/models"

// Outbound event names.
const (
	EventUpdateGameState = "updateGameState"
	EventTurnBegin       = "turnBegin"
	EventNext            = "next"
	EventSyncQueue       = "syncQueue"
	EventEndGame         = "endGame"
	EventCheckJailbreak  = "checkJailbreak"
	EventShowDices       = "showDices"
	EventRefreshDoubles  = "refreshDoubles"
)

const (
	SyncChance   = "notifyChanceCardAcquisition"
	SyncPayments = "notifyPayments"
)

// Publisher delivers an event to every connection joined to a room.
type Publisher interface {
	BroadcastToRoom(roomId, event string, payload interface{})
}

type GameStateEvent struct {
	Fresh      bool             `json:"fresh"`
	GameState  models.GameState `json:"gameState"`
	IsPlayable *bool            `json:"isPlayable,omitempty"`
}

type TurnBeginEvent struct {
	PlayerId     string `json:"playerId"`
	DoublesCount int    `json:"doublesCount"`
	AskJailbreak bool   `json:"askJailbreak"`
}

type SyncQueueEvent struct {
	Kind    string           `json:"kind"`
	Queues  models.RoomQueue `json:"queues"`
	Payload interface{}      `json:"payload,omitempty"`
}

type EndGameEvent struct {
	FinalNetWorths []models.NetWorth `json:"finalNetWorths"`
}

type JailbreakEvent struct {
	RemainingJailTurns int `json:"remainingJailTurns"`
}

type DoublesEvent struct {
	Count int `json:"count"`
}
