package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// requirePending loads a battle that is still waiting for its second seat.
func (tx *callTx) requirePending(ctx context.Context, name string) (*Battle, error) {
	b, err := tx.requireBattle(ctx, name)
	if err != nil {
		return nil, err
	}
	if b.Status != Pending {
		return nil, i18n.NewError(ctx, msgs.MsgBattleAlreadyStarted, name)
	}
	return b, nil
}

func (c *Contract) joinBattle(ctx context.Context, tx *callTx, name string, joiner sdk.Address) error {
	b, err := tx.requirePending(ctx, name)
	if err != nil {
		return err
	}
	if b.Seats[0] == joiner {
		return i18n.NewError(ctx, msgs.MsgCannotJoinOwnBattle, joiner, name)
	}
	p, err := tx.requirePlayer(ctx, joiner)
	if err != nil {
		return err
	}
	if p.InBattle {
		return i18n.NewError(ctx, msgs.MsgPlayerAlreadyInBattle, joiner)
	}

	b.Seats[1] = joiner
	b.Status = Started
	b.resetMoves()
	p.InBattle = true

	if err := tx.setPlayer(ctx, p); err != nil {
		return err
	}
	if err := tx.saveBattle(ctx, b); err != nil {
		return err
	}
	tx.emitBattleJoined(name, joiner)
	return nil
}

// challengeBot hands seat 2 of the creator's pending battle to the bot.
func (c *Contract) challengeBot(ctx context.Context, tx *callTx, user sdk.Address, name string) error {
	b, err := tx.requirePending(ctx, name)
	if err != nil {
		return err
	}
	if b.Seats[0] != user {
		return i18n.NewError(ctx, msgs.MsgNotBattleCreator, name)
	}
	c.seatBot(b)
	if err := tx.saveBattle(ctx, b); err != nil {
		return err
	}
	tx.emitBattleJoined(name, c.bot)
	return nil
}
