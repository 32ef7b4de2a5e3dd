package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

func baselinePlayer(addr sdk.Address) *PlayerAttributes {
	p := &PlayerAttributes{Address: addr}
	p.resetToBaseline()
	return p
}

// loadPlayer returns nil when the address has no record.
func (tx *callTx) loadPlayer(ctx context.Context, addr sdk.Address) (*PlayerAttributes, error) {
	v, err := tx.get(ctx, playerKey(addr))
	if err != nil || v == nil {
		return nil, err
	}
	return decodePlayer(ctx, *v)
}

// requirePlayer loads a registered player or fails with PlayerNotRegistered.
func (tx *callTx) requirePlayer(ctx context.Context, addr sdk.Address) (*PlayerAttributes, error) {
	p, err := tx.loadPlayer(ctx, addr)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, i18n.NewError(ctx, msgs.MsgPlayerNotRegistered, addr)
	}
	return p, nil
}

// setPlayer is the only write path for player records. The balance of an
// equipped blade lives as long as the record that points at it.
func (tx *callTx) setPlayer(ctx context.Context, p *PlayerAttributes) error {
	if err := tx.put(ctx, playerKey(p.Address), encodePlayer(p)); err != nil {
		return err
	}
	if p.HasEquipment {
		return tx.bump(ctx, balanceKey(p.EquippedClass, p.Address))
	}
	return nil
}

func (tx *callTx) registerPlayer(ctx context.Context, addr sdk.Address) error {
	existing, err := tx.loadPlayer(ctx, addr)
	if err != nil {
		return err
	}
	if existing != nil {
		return i18n.NewError(ctx, msgs.MsgPlayerAlreadyRegistered, addr)
	}
	if err := tx.setPlayer(ctx, baselinePlayer(addr)); err != nil {
		return err
	}
	if err := tx.appendIndex(ctx, playerCountKey, playerIndexKey, string(addr)); err != nil {
		return err
	}
	tx.emitPlayerRegistered(addr)
	return nil
}

func (tx *callTx) listPlayers(ctx context.Context) ([]sdk.Address, error) {
	entries, err := tx.readIndex(ctx, playerCountKey, playerIndexKey)
	if err != nil {
		return nil, err
	}
	out := make([]sdk.Address, len(entries))
	for i, e := range entries {
		out[i] = sdk.Address(e)
	}
	return out, nil
}

// releasePlayer takes a participant out of a finished battle.
func (tx *callTx) releasePlayer(ctx context.Context, addr sdk.Address) error {
	p, err := tx.loadPlayer(ctx, addr)
	if err != nil || p == nil {
		return err
	}
	p.Health = BaselineHealth
	p.InBattle = false
	return tx.setPlayer(ctx, p)
}
