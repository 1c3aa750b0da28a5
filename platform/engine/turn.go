package engine

import (
	"fmt"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/DedS3t/twoworlds-backend/pkg/ledger"
)

const (
	StartingCash          = 6000000
	ConstructionCost      = 300000
	Salary                = 2000000
	GraduateBonus         = 1000000
	GovernmentSalaryShare = 1000000
	MaxDoubles            = 3
	CycleLimit            = 4
	JailSentence          = 3
	NetWorthUnit          = 300000
)

// IsDouble reports whether both dice are non-zero and equal.
func IsDouble(d models.DicePair) bool {
	return d.Dice1 != 0 && d.Dice2 != 0 && d.Dice1 == d.Dice2
}

func ValidDice(d models.DicePair) bool {
	return d.Dice1 >= 1 && d.Dice1 <= 6 && d.Dice2 >= 1 && d.Dice2 <= 6
}

// CommitDoubles bumps the doubles counter. A counter already at the cap
// resets to zero, which ends the turn.
func CommitDoubles(count int) int {
	if count >= MaxDoubles {
		return 0
	}
	if count < 0 {
		count = 0
	}
	return count + 1
}

// AfterRoll decides whether the roller keeps the turn. It returns the new
// doubles counter and true when the same player rolls again.
func AfterRoll(doubles int, dice models.DicePair) (int, bool) {
	if !IsDouble(dice) {
		return 0, false
	}
	next := CommitDoubles(doubles)
	return next, next > 0
}

// EnterJail applies a landing on the jail cell.
func EnterJail(state models.GameState, idx int) models.GameState {
	out := state.Clone()
	p := &out.Players[idx]
	if p.RemainingJailTurns <= 0 {
		p.RemainingJailTurns = JailSentence
	} else {
		p.RemainingJailTurns--
	}
	return out
}

// JailRoll serves one turn of a sentence; a double clears it.
func JailRoll(remaining int, dice models.DicePair) int {
	if dice.Dice1 == dice.Dice2 {
		return 0
	}
	if remaining <= 1 {
		return 0
	}
	return remaining - 1
}

// BuyOutOfJail clears the sentence of the player at idx for cost. Cash
// never drops below zero.
func BuyOutOfJail(state models.GameState, idx, cost int) (models.GameState, error) {
	if state.Players[idx].RemainingJailTurns <= 0 {
		return state, errs.NewInvalidTransition("engine.BuyOutOfJail", fmt.Sprintf("player %s is not in jail", state.Players[idx].Id))
	}
	out := state.Clone()
	p := &out.Players[idx]
	p.Cash -= cost
	if p.Cash < 0 {
		p.Cash = 0
	}
	p.RemainingJailTurns = 0
	return out, nil
}

// ApplyLedger adds each ledger slot to the matching player or treasury.
func ApplyLedger(state models.GameState, l ledger.Ledger) models.GameState {
	flat := l.Flatten()
	out := state.Clone()
	for i := range out.Players {
		icon := out.Players[i].Icon
		if icon >= 0 && icon < ledger.Players {
			out.Players[i].Cash += flat.PlayerDeltas[icon]
		}
	}
	out.GovernmentIncome += flat.Government
	out.CharityIncome += flat.Charity
	return out
}

// distributionLedger pays pool evenly to every seated player and drains
// the paid shares from the government. The remainder of an uneven split
// stays with the government.
func distributionLedger(state models.GameState, pool int) ledger.Ledger {
	var seated []int
	for _, p := range state.Players {
		if p.Icon >= 0 && p.Icon < ledger.Players {
			seated = append(seated, p.Icon)
		}
	}
	var l ledger.Ledger
	if len(seated) == 0 {
		return l
	}
	share := pool / len(seated)
	l.Government = -share * len(seated)
	for _, icon := range seated {
		l.Players[icon] = share
	}
	return l
}

// PaySalary pays the player at idx for passing Start. The government adds
// its share to the pool and the whole pool is then split between the seated
// players.
func PaySalary(state models.GameState, idx int) models.GameState {
	p := state.Players[idx]
	amount := Salary
	if p.University == models.Graduated {
		amount += GraduateBonus
	}
	if p.Tickets.Bonus {
		amount *= 2
	}
	salary := ledger.Unidirectional(p.Icon, amount)
	salary.Government = GovernmentSalaryShare

	pool := state.GovernmentIncome + GovernmentSalaryShare
	out := ApplyLedger(state, salary.Merge(distributionLedger(state, pool)))
	out.Players[idx].CyclesCompleted++
	out.Players[idx].Tickets.Bonus = false
	return out
}

// DistributeBasicIncome hands the government pool out to the seated players.
func DistributeBasicIncome(state models.GameState) models.GameState {
	return ApplyLedger(state, distributionLedger(state, state.GovernmentIncome))
}

func AdvanceUniversity(u models.UniversityState) models.UniversityState {
	if u == models.NotYet || u == "" {
		return models.Undergraduate
	}
	return models.Graduated
}

// NextTurn passes the turn to the next icon and ticks the room timers.
func NextTurn(state models.GameState) models.GameState {
	out := state.Clone()
	seats := len(out.Players)
	if seats == 0 {
		seats = ledger.Players
	}
	out.TurnIndex = (out.TurnIndex + 1) % seats
	if out.Sidecars.LimitRentsTurnsRemaining > 0 {
		out.Sidecars.LimitRentsTurnsRemaining--
	}
	return out
}

// IsGameOver reports whether every player completed the cycle limit.
func IsGameOver(state models.GameState, limit int) bool {
	if len(state.Players) == 0 {
		return false
	}
	for _, p := range state.Players {
		if p.CyclesCompleted < limit {
			return false
		}
	}
	return true
}

// NetWorths values each player as cash plus built units at NetWorthUnit.
func NetWorths(state models.GameState) []models.NetWorth {
	out := make([]models.NetWorth, 0, len(state.Players))
	for _, p := range state.Players {
		value := p.Cash
		for _, prop := range state.Properties {
			if prop.OwnerId == p.Id {
				value += prop.BuiltCount * NetWorthUnit
			}
		}
		out = append(out, models.NetWorth{PlayerId: p.Id, Value: value})
	}
	return out
}

// NewGameState seats the players in the given order with icons 0..3.
func NewGameState(roomId string, playerIds []string) models.GameState {
	state := models.GameState{RoomId: roomId, Properties: []models.Property{}}
	for icon, id := range playerIds {
		state.Players = append(state.Players, models.Player{
			Id:         id,
			Icon:       icon,
			Cash:       StartingCash,
			University: models.NotYet,
		})
	}
	return state
}
