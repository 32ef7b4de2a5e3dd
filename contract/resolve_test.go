package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		c      [2]Combatant
		m      [2]Move
		want   [2]Combatant
		winner int
	}{
		{
			name:   "attack/attack seat 1 lethal",
			c:      [2]Combatant{{100, 30, 10}, {30, 10, 10}},
			m:      [2]Move{Attack, Attack},
			want:   [2]Combatant{{100, 30, 10}, {30, 10, 10}},
			winner: 0,
		},
		{
			name:   "attack/attack seat 2 lethal",
			c:      [2]Combatant{{10, 10, 10}, {100, 10, 10}},
			m:      [2]Move{Attack, Attack},
			want:   [2]Combatant{{10, 10, 10}, {100, 10, 10}},
			winner: 1,
		},
		{
			name:   "attack/attack both lethal goes to seat 1",
			c:      [2]Combatant{{5, 10, 0}, {5, 10, 0}},
			m:      [2]Move{Attack, Attack},
			want:   [2]Combatant{{5, 10, 0}, {5, 10, 0}},
			winner: 0,
		},
		{
			name:   "attack/attack trade damage",
			c:      [2]Combatant{{100, 10, 10}, {100, 26, 12}},
			m:      [2]Move{Attack, Attack},
			want:   [2]Combatant{{74, 10, 10}, {90, 26, 12}},
			winner: NoWinner,
		},
		{
			name:   "attack breaks through defense pool",
			c:      [2]Combatant{{100, 120, 10}, {100, 10, 10}},
			m:      [2]Move{Attack, Defend},
			want:   [2]Combatant{{100, 120, 10}, {100, 10, 10}},
			winner: 0,
		},
		{
			name:   "defense absorbs part of the attack",
			c:      [2]Combatant{{100, 26, 12}, {100, 10, 10}},
			m:      [2]Move{Attack, Defend},
			want:   [2]Combatant{{100, 26, 12}, {84, 10, 10}},
			winner: NoWinner,
		},
		{
			name:   "defense above attack absorbs everything",
			c:      [2]Combatant{{100, 10, 10}, {100, 10, 20}},
			m:      [2]Move{Attack, Defend},
			want:   [2]Combatant{{100, 10, 10}, {100, 10, 20}},
			winner: NoWinner,
		},
		{
			name:   "defend/attack mirrors",
			c:      [2]Combatant{{100, 10, 10}, {100, 26, 12}},
			m:      [2]Move{Defend, Attack},
			want:   [2]Combatant{{84, 10, 10}, {100, 26, 12}},
			winner: NoWinner,
		},
		{
			name:   "defend/attack seat 2 breaks through",
			c:      [2]Combatant{{50, 10, 0}, {100, 60, 10}},
			m:      [2]Move{Defend, Attack},
			want:   [2]Combatant{{50, 10, 0}, {100, 60, 10}},
			winner: 1,
		},
		{
			name:   "defend/defend heals both",
			c:      [2]Combatant{{97, 26, 12}, {100, 10, 10}},
			m:      [2]Move{Defend, Defend},
			want:   [2]Combatant{{99, 26, 12}, {102, 10, 10}},
			winner: NoWinner,
		},
		{
			name:   "defend/defend saturates",
			c:      [2]Combatant{{math.MaxUint32 - 1, 10, 10}, {math.MaxUint32, 10, 10}},
			m:      [2]Move{Defend, Defend},
			want:   [2]Combatant{{math.MaxUint32, 10, 10}, {math.MaxUint32, 10, 10}},
			winner: NoWinner,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Resolve(tc.c, tc.m)
			assert.Equal(t, tc.want, out.Combatants)
			assert.Equal(t, tc.winner, out.Winner)
			assert.Equal(t, tc.winner != NoWinner, out.Decided())
		})
	}
}

func TestResolveSwapSeats(t *testing.T) {
	combatants := []Combatant{
		{100, 10, 10}, {97, 26, 12}, {108, 14, 13}, {107, 21, 7}, {20, 10, 0}, {1, 1, 1},
	}
	moves := []Move{Attack, Defend}
	for _, a := range combatants {
		for _, b := range combatants {
			for _, ma := range moves {
				for _, mb := range moves {
					if ma == Attack && mb == Attack && a.Attack >= b.Health && b.Attack >= a.Health {
						continue // both lethal, seat 1 wins either way
					}
					fwd := Resolve([2]Combatant{a, b}, [2]Move{ma, mb})
					rev := Resolve([2]Combatant{b, a}, [2]Move{mb, ma})
					assert.Equal(t, fwd.Combatants[0], rev.Combatants[1])
					assert.Equal(t, fwd.Combatants[1], rev.Combatants[0])
					if fwd.Decided() {
						assert.Equal(t, 1-fwd.Winner, rev.Winner)
					} else {
						assert.False(t, rev.Decided())
					}
				}
			}
		}
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	assert.Equal(t, uint32(0), subSat(3, 5))
	assert.Equal(t, uint32(2), subSat(5, 3))
	assert.Equal(t, uint32(math.MaxUint32), addSat(math.MaxUint32, 1))
	assert.Equal(t, uint32(0), applyDelta(2, -3))
	assert.Equal(t, uint32(13), applyDelta(10, 3))
	assert.Equal(t, uint32(0), applyDelta(10, math.MinInt32))
}

func TestDefaultBotStrategy(t *testing.T) {
	bot := DefaultBotStrategy{}
	// lethal attack first
	assert.Equal(t, Attack, bot.ChooseMove(Combatant{5, 30, 10}, Combatant{30, 50, 10}, 1))
	// cover when the next hit would finish it
	assert.Equal(t, Defend, bot.ChooseMove(Combatant{20, 10, 10}, Combatant{100, 26, 12}, 1))
	assert.Equal(t, Attack, bot.ChooseMove(Combatant{100, 10, 10}, Combatant{100, 10, 10}, 1))

	f := BotStrategyFunc(func(self, opponent Combatant, round uint32) Move { return Defend })
	assert.Equal(t, Defend, f.ChooseMove(Combatant{}, Combatant{}, 3))
}
