package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomLedger(r *rand.Rand) Ledger {
	var l Ledger
	for i := range l.Players {
		l.Players[i] = r.Intn(2_000_000) - 1_000_000
	}
	l.Government = r.Intn(2_000_000) - 1_000_000
	l.Charity = r.Intn(2_000_000) - 1_000_000
	return l
}

func TestMergeGroupLaws(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a, b, c := randomLedger(r), randomLedger(r), randomLedger(r)
		assert.Equal(t, a.Merge(b), b.Merge(a))
		assert.Equal(t, a.Merge(b).Merge(c), a.Merge(b.Merge(c)))
		assert.True(t, a.Merge(a.Revert()).IsZero())
		assert.Equal(t, a, a.Merge(Ledger{}))
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Ledger
		want Ledger
	}{
		{"p2g", P2G(2, 300_000), Ledger{Players: [4]int{0, 0, -300_000, 0}, Government: 300_000}},
		{"g2m", G2M(100_000), Ledger{Government: -100_000}},
		{"p2c", P2C(0, 600_000), Ledger{Players: [4]int{-600_000, 0, 0, 0}, Charity: 600_000}},
		{"unidirectional", Unidirectional(3, -200_000), Ledger{Players: [4]int{0, 0, 0, -200_000}}},
		{"p2p", P2P(1, 3, 500_000), Ledger{Players: [4]int{0, -500_000, 0, 500_000}}},
		{"p2p self", P2P(1, 1, 500_000), Ledger{}},
		{"bad icon", P2G(4, 100), Ledger{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFlatten(t *testing.T) {
	l := MergeAll(P2G(0, 100), P2C(1, 50), G2M(30))
	flat := l.Flatten()
	assert.Equal(t, [4]int{-100, -50, 0, 0}, flat.PlayerDeltas)
	assert.Equal(t, 70, flat.Government)
	assert.Equal(t, 50, flat.Charity)
}
