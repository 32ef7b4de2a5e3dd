package contract

import (
	"context"
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// ---------- Keys ----------

const (
	playerCountKey = "pi:count"
	battleCountKey = "bi:count"
)

func playerKey(addr sdk.Address) string { return "p:" + string(addr) }
func playerIndexKey(n uint64) string    { return "pi:" + strconv.FormatUint(n, 10) }
func battleKey(name string) string      { return "b:" + name }
func battleIndexKey(n uint64) string    { return "bi:" + strconv.FormatUint(n, 10) }

func equipmentMetaKey(class EquipmentClass) string {
	return "em:" + strconv.FormatUint(uint64(class), 10)
}

func balanceKey(class EquipmentClass, owner sdk.Address) string {
	return "eb:" + strconv.FormatUint(uint64(class), 10) + ":" + string(owner)
}

// ---------- Call transaction ----------

// callTx is the state view of one contract call. Events are held back until
// the store commits, so a rolled back call emits nothing.
type callTx struct {
	state  sdk.State
	events []Event
}

func (tx *callTx) get(ctx context.Context, key string) (*string, error) {
	v, err := tx.state.StateGetObject(ctx, key)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgStateReadFailed, key)
	}
	if v == nil || *v == "" {
		return nil, nil
	}
	return v, nil
}

// put writes the value and extends its retention.
func (tx *callTx) put(ctx context.Context, key, value string) error {
	if err := tx.state.StateSetObject(ctx, key, value); err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgStateWriteFailed, key)
	}
	return tx.bump(ctx, key)
}

// bump extends the lifetime of key. A missing key is left missing.
func (tx *callTx) bump(ctx context.Context, key string) error {
	if err := tx.state.StateBump(ctx, key); err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgStateWriteFailed, key)
	}
	return nil
}

func (tx *callTx) emit(eventType string, attributes map[string]string) {
	tx.events = append(tx.events, Event{Type: eventType, Attributes: attributes})
}

// ---------- Counters and indexes ----------

func (tx *callTx) getCount(ctx context.Context, key string) (uint64, error) {
	v, err := tx.get(ctx, key)
	if err != nil || v == nil {
		return 0, err
	}
	n, err := strconv.ParseUint(*v, 10, 64)
	if err != nil {
		return 0, i18n.WrapError(ctx, err, msgs.MsgInvalidCounter, *v, key)
	}
	return n, nil
}

// appendIndex stores value as the next entry of the index counted at countKey.
func (tx *callTx) appendIndex(ctx context.Context, countKey string, entryKey func(uint64) string, value string) error {
	n, err := tx.getCount(ctx, countKey)
	if err != nil {
		return err
	}
	if err := tx.put(ctx, entryKey(n), value); err != nil {
		return err
	}
	return tx.put(ctx, countKey, strconv.FormatUint(n+1, 10))
}

// readIndex returns index entries in insertion order. Entries whose record
// has expired are skipped.
func (tx *callTx) readIndex(ctx context.Context, countKey string, entryKey func(uint64) string) ([]string, error) {
	n, err := tx.getCount(ctx, countKey)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := tx.get(ctx, entryKey(i))
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// ---------- Saturating arithmetic ----------

func subSat(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

func addSat(a, b uint32) uint32 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint32(0)
}

// applyDelta adds a signed modifier to a stat, clamping at both ends.
func applyDelta(v uint32, d int32) uint32 {
	if d < 0 {
		return subSat(v, uint32(-int64(d)))
	}
	return addSat(v, uint32(d))
}

func requireAddress(ctx context.Context, addr sdk.Address) error {
	if addr == "" {
		return i18n.NewError(ctx, msgs.MsgInvalidAddress)
	}
	return nil
}
