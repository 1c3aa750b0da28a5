package engine

import (
	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
)

const (
	FreeLotto    = "free-lotto"
	Scholarship  = "scholarship"
	DiscountRent = "discountRent"
	Bonus        = "bonus"
	DoubleLotto  = "doubleLotto"
	LimitRents   = "limitRents"
)

const (
	FreeLottoPrize  = 1000000
	LimitRentsTurns = 4
)

type ChanceCard struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IsMoving    bool   `json:"-"`
}

// ChanceIds is the deck in draw order.
var ChanceIds = []string{FreeLotto, Scholarship, DiscountRent, Bonus, DoubleLotto, LimitRents}

var ChanceCards = map[string]ChanceCard{
	FreeLotto: {
		Id:          FreeLotto,
		DisplayName: "Lottery Win",
		Description: "Congratulations on winning the lottery! Receive 1,000,000.",
	},
	Scholarship: {
		Id:          Scholarship,
		DisplayName: "Scholarship",
		Description: "Your hard work earned a scholarship. Go to the university, tuition free.",
		IsMoving:    true,
	},
	DiscountRent: {
		Id:          DiscountRent,
		DisplayName: "Rent Discount",
		Description: "A stimulus coupon was issued. Your next rent payment is halved.",
	},
	Bonus: {
		Id:          Bonus,
		DisplayName: "Bonus",
		Description: "Your company went public. Your next salary is doubled.",
	},
	DoubleLotto: {
		Id:          DoubleLotto,
		DisplayName: "Double Lotto",
		Description: "Your next lotto prize is doubled.",
	},
	LimitRents: {
		Id:          LimitRents,
		DisplayName: "Rent Control",
		Description: "Speculation is out of hand. Rents are waived for one round.",
	},
}

// ApplyChance applies the card effect for the player at idx. Moving cards
// leave the location untouched and return the movement the caller still
// has to perform.
func ApplyChance(reg *board.Registry, state models.GameState, idx int, chanceId string) (models.GameState, *Movement) {
	out := state.Clone()
	p := &out.Players[idx]
	switch chanceId {
	case FreeLotto:
		p.Cash += FreeLottoPrize
	case Scholarship:
		university, ok := reg.FirstOfKind(models.KindUniversity)
		if !ok {
			return out, nil
		}
		m := ForwardTo(university.Id)
		return out, &m
	case DiscountRent:
		p.Tickets.DiscountRent++
	case Bonus:
		p.Tickets.Bonus = true
	case DoubleLotto:
		p.Tickets.DoubleLotto++
	case LimitRents:
		out.Sidecars.LimitRentsTurnsRemaining += LimitRentsTurns
	}
	return out, nil
}
