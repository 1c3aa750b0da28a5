package engine

import (
	"testing"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/DedS3t/twoworlds-backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDouble(t *testing.T) {
	assert.True(t, IsDouble(models.DicePair{Dice1: 4, Dice2: 4}))
	assert.False(t, IsDouble(models.DicePair{Dice1: 4, Dice2: 3}))
	assert.False(t, IsDouble(models.DicePair{}))
}

func TestDoublesCap(t *testing.T) {
	double := models.DicePair{Dice1: 2, Dice2: 2}
	count := 0
	for i := 1; i <= 3; i++ {
		var again bool
		count, again = AfterRoll(count, double)
		require.True(t, again, "roll %d", i)
		assert.Equal(t, i, count)
	}

	count, again := AfterRoll(count, double)
	assert.False(t, again)
	assert.Equal(t, 0, count)

	count, again = AfterRoll(2, models.DicePair{Dice1: 1, Dice2: 6})
	assert.False(t, again)
	assert.Equal(t, 0, count)
}

func TestSalaryScenario(t *testing.T) {
	state := at(newTestState(), 0, 50)
	state.GovernmentIncome = 400000

	moved, res := Move(state, 0, ForwardBy(3+4))
	require.Equal(t, 3, res.Dest)
	require.True(t, res.SalaryEligible)

	paid := PaySalary(moved, 0)
	pooled := 400000 + GovernmentSalaryShare
	assert.Equal(t, StartingCash+Salary+pooled/4, paid.Players[0].Cash)
	for _, p := range paid.Players[1:] {
		assert.Equal(t, StartingCash+pooled/4, p.Cash)
	}
	assert.Equal(t, 0, paid.GovernmentIncome)
	assert.Equal(t, 1, paid.Players[0].CyclesCompleted)
}

func TestSalaryGraduateAndBonus(t *testing.T) {
	state := newTestState()
	state.Players[1].University = models.Graduated
	state.Players[1].Tickets.Bonus = true

	paid := PaySalary(state, 1)
	assert.Equal(t, StartingCash+2*(Salary+GraduateBonus)+GovernmentSalaryShare/4, paid.Players[1].Cash)
	assert.False(t, paid.Players[1].Tickets.Bonus)
}

func TestDistributeBasicIncome(t *testing.T) {
	state := newTestState()
	state.GovernmentIncome = 1200000
	out := DistributeBasicIncome(state)
	for _, p := range out.Players {
		assert.Equal(t, StartingCash+300000, p.Cash)
	}
	assert.Equal(t, 0, out.GovernmentIncome)
}

func totalMoney(state models.GameState) int {
	total := state.GovernmentIncome + state.CharityIncome
	for _, p := range state.Players {
		total += p.Cash
	}
	return total
}

func TestDistributionConservesMoneyForPartialRooms(t *testing.T) {
	state := NewGameState("room-2", []string{"alice", "bob"})
	state.GovernmentIncome = 400000
	before := totalMoney(state)

	paid := PaySalary(state, 0)
	assert.Equal(t, before+Salary+GovernmentSalaryShare, totalMoney(paid))
	pooled := 400000 + GovernmentSalaryShare
	assert.Equal(t, StartingCash+Salary+pooled/2, paid.Players[0].Cash)
	assert.Equal(t, StartingCash+pooled/2, paid.Players[1].Cash)
	assert.Equal(t, 0, paid.GovernmentIncome)

	state = NewGameState("room-3", []string{"alice", "bob", "carol"})
	state.GovernmentIncome = 1000000
	out := DistributeBasicIncome(state)
	assert.Equal(t, totalMoney(state), totalMoney(out))
	assert.Equal(t, 1, out.GovernmentIncome, "the uneven remainder stays with the government")
	for _, p := range out.Players {
		assert.Equal(t, StartingCash+333333, p.Cash)
	}
}

func TestJail(t *testing.T) {
	state := newTestState()
	state = EnterJail(state, 2)
	assert.Equal(t, JailSentence, state.Players[2].RemainingJailTurns)
	state = EnterJail(state, 2)
	assert.Equal(t, JailSentence-1, state.Players[2].RemainingJailTurns)

	assert.Equal(t, 0, JailRoll(3, models.DicePair{Dice1: 5, Dice2: 5}))
	assert.Equal(t, 2, JailRoll(3, models.DicePair{Dice1: 5, Dice2: 1}))
	assert.Equal(t, 0, JailRoll(1, models.DicePair{Dice1: 5, Dice2: 1}))
}

func TestApplyLedger(t *testing.T) {
	state := newTestState()
	out := ApplyLedger(state, ledger.MergeAll(ledger.P2G(0, 100000), ledger.P2C(3, 50000)))
	assert.Equal(t, StartingCash-100000, out.Players[0].Cash)
	assert.Equal(t, StartingCash-50000, out.Players[3].Cash)
	assert.Equal(t, 100000, out.GovernmentIncome)
	assert.Equal(t, 50000, out.CharityIncome)
	assert.Equal(t, StartingCash, state.Players[0].Cash)
}

func TestNextTurnAndGameOver(t *testing.T) {
	state := newTestState()
	state.TurnIndex = 3
	state.Sidecars.LimitRentsTurnsRemaining = 1
	next := NextTurn(state)
	assert.Equal(t, 0, next.TurnIndex)
	assert.Equal(t, 0, next.Sidecars.LimitRentsTurnsRemaining)

	assert.False(t, IsGameOver(state, CycleLimit))
	for i := range state.Players {
		state.Players[i].CyclesCompleted = CycleLimit
	}
	assert.True(t, IsGameOver(state, CycleLimit))
}

func TestNetWorths(t *testing.T) {
	state := withProperty(newTestState(), "bob", 2, 2)
	state = withProperty(state, "bob", 35, 1)
	worths := NetWorths(state)
	require.Len(t, worths, 4)
	assert.Equal(t, models.NetWorth{PlayerId: "bob", Value: StartingCash + 3*NetWorthUnit}, worths[1])
	assert.Equal(t, models.NetWorth{PlayerId: "alice", Value: StartingCash}, worths[0])
}

func TestNextTurnWrapsOnSeatCount(t *testing.T) {
	state := newTestState()
	state.Players = state.Players[:2]
	state.TurnIndex = 1
	assert.Equal(t, 0, NextTurn(state).TurnIndex)
}

func TestBuyOutOfJail(t *testing.T) {
	state := newTestState()
	_, err := BuyOutOfJail(state, 0, board.JailBuyOut)
	assert.True(t, errs.Is(err, errs.InvalidTransition))

	state.Players[0].RemainingJailTurns = 2
	out, err := BuyOutOfJail(state, 0, board.JailBuyOut)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Players[0].RemainingJailTurns)
	assert.Equal(t, StartingCash-board.JailBuyOut, out.Players[0].Cash)
	assert.Equal(t, 2, state.Players[0].RemainingJailTurns)

	state.Players[0].Cash = 100
	out, err = BuyOutOfJail(state, 0, board.JailBuyOut)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Players[0].Cash)
}
