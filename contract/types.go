package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// Baseline stats every player starts from and returns to.
const (
	BaselineHealth  uint32 = 100
	BaselineAttack  uint32 = 10
	BaselineDefense uint32 = 10
)

// Move is a combatant's choice for the current round.
type Move uint8

const (
	NoMove Move = 0 // slot empty, waiting for the player
	Attack Move = 1
	Defend Move = 2
)

func (m Move) String() string {
	switch m {
	case Attack:
		return "attack"
	case Defend:
		return "defend"
	default:
		return "none"
	}
}

// ParseMove validates a raw choice from a caller.
func ParseMove(ctx context.Context, choice uint64) (Move, error) {
	if choice == uint64(Attack) || choice == uint64(Defend) {
		return Move(choice), nil
	}
	return NoMove, i18n.NewError(ctx, msgs.MsgInvalidChoice, choice)
}

// BattleStatus indicates where a battle is in its lifecycle.
type BattleStatus uint8

const (
	Pending BattleStatus = 0 // created, seat 2 awaiting an opponent
	Started BattleStatus = 1 // both seats filled, rounds in progress
	Ended   BattleStatus = 2 // winner fixed, immutable
)

func (s BattleStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Started:
		return "started"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// EquipmentClass identifies a blade. NoEquipment means nothing is equipped.
type EquipmentClass uint32

const (
	NoEquipment EquipmentClass = 0
	Longsword   EquipmentClass = 1
	Sabre       EquipmentClass = 2
	Claymore    EquipmentClass = 3
)

// PlayerAttributes is the combat record of one address.
//
// HasEquipment always equals EquippedClass != NoEquipment. A player with
// InBattle set sits in exactly one Pending or Started battle.
type PlayerAttributes struct {
	Address       sdk.Address    `json:"address"`
	Health        uint32         `json:"health"`
	Attack        uint32         `json:"attack"`
	Defense       uint32         `json:"defense"`
	InBattle      bool           `json:"inBattle"`
	EquippedClass EquipmentClass `json:"equippedClass"`
	HasEquipment  bool           `json:"hasEquipment"`
}

func (p *PlayerAttributes) combatant() Combatant {
	return Combatant{Health: p.Health, Attack: p.Attack, Defense: p.Defense}
}

func baselineCombatant() Combatant {
	return Combatant{Health: BaselineHealth, Attack: BaselineAttack, Defense: BaselineDefense}
}

func (p *PlayerAttributes) resetToBaseline() {
	p.Health = BaselineHealth
	p.Attack = BaselineAttack
	p.Defense = BaselineDefense
}

// Battle is a named two-seat match. Seats and Moves are indexed together:
// Moves[i] is the move of Seats[i] for the current round.
type Battle struct {
	Name   string         `json:"name"`
	Status BattleStatus   `json:"status"`
	Seats  [2]sdk.Address `json:"seats"`
	Moves  [2]Move        `json:"moves"`
	// Winner is only meaningful once Status is Ended.
	Winner sdk.Address `json:"winner,omitempty"`
	// Round counts resolved rounds.
	Round uint32 `json:"round"`
	// Auto is set when seat 2 is the automated opponent.
	Auto bool `json:"auto"`
	// BotStats are the automated opponent's stats in this battle. The bot has
	// no player record, so each bot battle carries its own.
	BotStats Combatant `json:"botStats"`
}

// seatOf returns the seat index of addr, or -1.
func (b *Battle) seatOf(addr sdk.Address) int {
	for i, s := range b.Seats {
		if s == addr {
			return i
		}
	}
	return -1
}

func (b *Battle) bothMoved() bool {
	return b.Moves[0] != NoMove && b.Moves[1] != NoMove
}

func (b *Battle) resetMoves() {
	b.Moves = [2]Move{NoMove, NoMove}
}
