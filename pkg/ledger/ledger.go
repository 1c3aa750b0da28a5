// Package ledger models money movements between the four players, the
// government treasury and the charity fund as a single additive value.
//
// Ledgers form a commutative group under Merge: the zero Ledger is the
// identity and Revert is the inverse. Player slots are indexed by icon.
package ledger

const Players = 4

type Ledger struct {
	Players    [Players]int `json:"players"`
	Government int          `json:"government"`
	Charity    int          `json:"charity"`
}

// Flat is the projection applied to a game state: each player delta is
// added to that player's cash and the treasuries to their income fields.
type Flat struct {
	PlayerDeltas [Players]int
	Government   int
	Charity      int
}

func validIcon(icon int) bool {
	return icon >= 0 && icon < Players
}

func (l Ledger) Merge(o Ledger) Ledger {
	out := Ledger{
		Government: l.Government + o.Government,
		Charity:    l.Charity + o.Charity,
	}
	for i := range out.Players {
		out.Players[i] = l.Players[i] + o.Players[i]
	}
	return out
}

func (l Ledger) Revert() Ledger {
	out := Ledger{Government: -l.Government, Charity: -l.Charity}
	for i, v := range l.Players {
		out.Players[i] = -v
	}
	return out
}

func (l Ledger) IsZero() bool {
	return l == Ledger{}
}

func (l Ledger) Flatten() Flat {
	return Flat{PlayerDeltas: l.Players, Government: l.Government, Charity: l.Charity}
}

// MergeAll folds ls starting from the zero ledger.
func MergeAll(ls ...Ledger) Ledger {
	var acc Ledger
	for _, l := range ls {
		acc = acc.Merge(l)
	}
	return acc
}

// Unidirectional adjusts only the given player. Out-of-range icons yield
// the zero ledger.
func Unidirectional(icon, amount int) Ledger {
	var l Ledger
	if validIcon(icon) {
		l.Players[icon] = amount
	}
	return l
}

func P2G(icon, amount int) Ledger {
	if !validIcon(icon) {
		return Ledger{}
	}
	l := Unidirectional(icon, -amount)
	l.Government = amount
	return l
}

// G2M is a treasury payout with no direct payee.
func G2M(amount int) Ledger {
	return Ledger{Government: -amount}
}

func P2C(icon, amount int) Ledger {
	if !validIcon(icon) {
		return Ledger{}
	}
	l := Unidirectional(icon, -amount)
	l.Charity = amount
	return l
}

// P2P moves amount from one player to another. A transfer to oneself is
// the zero ledger.
func P2P(from, to, amount int) Ledger {
	if from == to {
		return Ledger{}
	}
	return Unidirectional(from, -amount).Merge(Unidirectional(to, amount))
}
