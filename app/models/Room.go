package models

import "time"

type RoomMeta struct {
	HostId    string   `json:"hostId"`
	Guests    []string `json:"guests"`
	MaxGuests int      `json:"maxGuests"`
	IsStarted bool     `json:"isStarted"`
	IsEnded   bool     `json:"isEnded"`
}

type DicePair struct {
	Dice1 int `json:"dice1"`
	Dice2 int `json:"dice2"`
}

// Room is everything stored under one room id.
type Room struct {
	Id           string    `json:"roomId"`
	Meta         RoomMeta  `json:"roomMeta"`
	State        GameState `json:"gameState"`
	Queue        RoomQueue `json:"roomQueue"`
	DoublesCount int       `json:"doublesCount"`
	Dice         DicePair  `json:"dicePair"`
}

// RoomPatch is a shallow partial update: nil fields are left untouched.
type RoomPatch struct {
	Meta         *RoomMeta
	State        *GameState
	Queue        *RoomQueue
	DoublesCount *int
	Dice         *DicePair
}

func (p RoomPatch) Apply(r Room) Room {
	if p.Meta != nil {
		r.Meta = *p.Meta
	}
	if p.State != nil {
		r.State = p.State.Clone()
	}
	if p.Queue != nil {
		r.Queue = p.Queue.Clone()
	}
	if p.DoublesCount != nil {
		r.DoublesCount = *p.DoublesCount
	}
	if p.Dice != nil {
		r.Dice = *p.Dice
	}
	return r
}

type CreateRoomDto struct {
	RoomId  string `json:"roomId"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Player3 string `json:"player3"`
	Player4 string `json:"player4"`
}

func (d CreateRoomDto) PlayerIds() []string {
	var ids []string
	for _, id := range []string{d.Player1, d.Player2, d.Player3, d.Player4} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

type VerifyRoomDto struct {
	Code string `query:"code"`
}

// RoomRecord is the Postgres row kept per room.
type RoomRecord struct {
	tableName struct{} `pg:"rooms"`

	Id        string    `pg:",pk"`
	Host      string
	Players   []string  `pg:",array"`
	Status    string
	CreatedAt time.Time `pg:"default:now()"`
}

type ResultRecord struct {
	tableName struct{} `pg:"room_results"`

	RoomId   string `pg:",pk"`
	PlayerId string `pg:",pk"`
	NetWorth int    `pg:",use_zero"`
}
