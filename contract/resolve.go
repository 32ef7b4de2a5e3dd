package contract

// Combatant is the part of a player that takes part in a round.
type Combatant struct {
	Health  uint32 `json:"health"`
	Attack  uint32 `json:"attack"`
	Defense uint32 `json:"defense"`
}

// phad is the health-plus-defense pool a defender holds against an attack.
func (c Combatant) phad() uint32 { return addSat(c.Health, c.Defense) }

// NoWinner marks an undecided round in Outcome.Winner.
const NoWinner = -1

// Outcome is the result of one round. Combatants holds the post-round stats
// by seat; Winner is a seat index or NoWinner.
type Outcome struct {
	Combatants [2]Combatant
	Winner     int
}

func (o Outcome) Decided() bool { return o.Winner != NoWinner }

// healOnDoubleDefend is the health both sides gain when both defend.
const healOnDoubleDefend uint32 = 2

// Resolve turns the two seats' stats and moves into the round's outcome.
// Both moves must be Attack or Defend. Swapping the seats swaps the outcome,
// except for an Attack/Attack round lethal to both sides, which seat 1 wins.
func Resolve(c [2]Combatant, m [2]Move) Outcome {
	out := Outcome{Combatants: c, Winner: NoWinner}
	switch {
	case m[0] == Attack && m[1] == Attack:
		switch {
		case c[0].Attack >= c[1].Health:
			out.Winner = 0
		case c[1].Attack >= c[0].Health:
			out.Winner = 1
		default:
			out.Combatants[0].Health = subSat(c[0].Health, c[1].Attack)
			out.Combatants[1].Health = subSat(c[1].Health, c[0].Attack)
		}
	case m[0] == Attack && m[1] == Defend:
		resolveAttackOnDefend(&out, 0, 1)
	case m[0] == Defend && m[1] == Attack:
		resolveAttackOnDefend(&out, 1, 0)
	case m[0] == Defend && m[1] == Defend:
		out.Combatants[0].Health = addSat(c[0].Health, healOnDoubleDefend)
		out.Combatants[1].Health = addSat(c[1].Health, healOnDoubleDefend)
	}
	return out
}

// resolveAttackOnDefend applies seat att attacking seat def. Only the
// defender's stats can change.
func resolveAttackOnDefend(out *Outcome, att, def int) {
	a, d := out.Combatants[att], out.Combatants[def]
	if a.Attack >= d.phad() {
		out.Winner = att
		return
	}
	if d.Defense <= a.Attack {
		out.Combatants[def].Health = subSat(d.phad(), a.Attack)
	}
}
