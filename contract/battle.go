package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
)

// MaxBattleNameLength is the longest accepted battle name.
const MaxBattleNameLength = 32

// validateBattleName accepts 1-32 characters of [A-Za-z0-9_].
func validateBattleName(ctx context.Context, name string) error {
	if len(name) == 0 || len(name) > MaxBattleNameLength {
		return i18n.NewError(ctx, msgs.MsgInvalidBattleName, name, MaxBattleNameLength)
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_':
		default:
			return i18n.NewError(ctx, msgs.MsgInvalidBattleName, name, MaxBattleNameLength)
		}
	}
	return nil
}

// loadBattle returns nil when no battle has the name.
func (tx *callTx) loadBattle(ctx context.Context, name string) (*Battle, error) {
	v, err := tx.get(ctx, battleKey(name))
	if err != nil || v == nil {
		return nil, err
	}
	return decodeBattle(ctx, *v)
}

func (tx *callTx) requireBattle(ctx context.Context, name string) (*Battle, error) {
	b, err := tx.loadBattle(ctx, name)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, i18n.NewError(ctx, msgs.MsgBattleNotFound, name)
	}
	return b, nil
}

// saveBattle also bumps the seated players so their records live as long as
// the battle that holds them.
func (tx *callTx) saveBattle(ctx context.Context, b *Battle) error {
	if err := tx.put(ctx, battleKey(b.Name), encodeBattle(b)); err != nil {
		return err
	}
	for _, addr := range b.Seats {
		if err := tx.bump(ctx, playerKey(addr)); err != nil {
			return err
		}
	}
	return nil
}

func (tx *callTx) listBattles(ctx context.Context) ([]string, error) {
	return tx.readIndex(ctx, battleCountKey, battleIndexKey)
}
