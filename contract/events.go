package contract

import (
	"context"
	"encoding/json"
	"strconv"

	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/sdk"
)

// Event represents the common structure for all emitted events.
// Each event has a type and a set of key/value attributes.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// Event types.
const (
	EventPlayerRegistered = "playerRegistered"
	EventBladeForged      = "bladeForged"
	EventBladeMelted      = "bladeMelted"
	EventBattleCreated    = "battleCreated"
	EventBattleJoined     = "battleJoined"
	EventMoveSubmitted    = "moveSubmitted"
	EventRoundResolved    = "roundResolved"
	EventBattleWon        = "battleWon"
)

// publishEvents writes committed events to the log as JSON, one line each.
func publishEvents(ctx context.Context, events []Event) {
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			log.L(ctx).Errorf("Failed to marshal %s event: %s", e.Type, err)
			continue
		}
		log.L(ctx).WithField("event", e.Type).Info(string(b))
	}
}

func (tx *callTx) emitPlayerRegistered(addr sdk.Address) {
	tx.emit(EventPlayerRegistered, map[string]string{
		"player": addr.String(),
	})
}

func (tx *callTx) emitBladeForged(addr sdk.Address, class EquipmentClass) {
	tx.emit(EventBladeForged, map[string]string{
		"player": addr.String(),
		"class":  strconv.FormatUint(uint64(class), 10),
	})
}

func (tx *callTx) emitBladeMelted(addr sdk.Address, class EquipmentClass) {
	tx.emit(EventBladeMelted, map[string]string{
		"player": addr.String(),
		"class":  strconv.FormatUint(uint64(class), 10),
	})
}

func (tx *callTx) emitBattleCreated(name string, by sdk.Address, auto bool) {
	tx.emit(EventBattleCreated, map[string]string{
		"name": name,
		"by":   by.String(),
		"auto": strconv.FormatBool(auto),
	})
}

func (tx *callTx) emitBattleJoined(name string, joined sdk.Address) {
	tx.emit(EventBattleJoined, map[string]string{
		"name":   name,
		"joined": joined.String(),
	})
}

// emitMoveSubmitted leaves the choice out. The battle record still holds it
// until the round resolves, and only the API view masks it.
func (tx *callTx) emitMoveSubmitted(name string, by sdk.Address, round uint32) {
	tx.emit(EventMoveSubmitted, map[string]string{
		"name":   name,
		"moveBy": by.String(),
		"round":  strconv.FormatUint(uint64(round), 10),
	})
}

func (tx *callTx) emitRoundResolved(b *Battle) {
	tx.emit(EventRoundResolved, map[string]string{
		"name":  b.Name,
		"round": strconv.FormatUint(uint64(b.Round), 10),
		"move1": b.Moves[0].String(),
		"move2": b.Moves[1].String(),
	})
}

func (tx *callTx) emitBattleWon(name string, winner sdk.Address) {
	tx.emit(EventBattleWon, map[string]string{
		"name":   name,
		"winner": winner.String(),
	})
}
