package models

type UniversityState string

const (
	NotYet        UniversityState = "notYet"
	Undergraduate UniversityState = "undergraduate"
	Graduated     UniversityState = "graduated"
)

type Tickets struct {
	DiscountRent int  `json:"discountRent"`
	Bonus        bool `json:"bonus"`
	DoubleLotto  int  `json:"doubleLotto"`
}

type Player struct {
	Id                 string          `json:"id"`
	Icon               int             `json:"icon"`
	Location           int             `json:"location"`
	DisplayLocation    int             `json:"displayLocation"`
	Cash               int             `json:"cash"`
	CyclesCompleted    int             `json:"cycles"`
	University         UniversityState `json:"university"`
	Tickets            Tickets         `json:"tickets"`
	RemainingJailTurns int             `json:"remainingJailTurns"`
}

type NetWorth struct {
	PlayerId string `json:"playerId"`
	Value    int    `json:"value"`
}
