package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

//
// Creation helpers for opening a new battle.
//

// initNewBattle builds a pending battle with the contract address parked in
// seat 2 until an opponent arrives.
func (c *Contract) initNewBattle(name string, creator sdk.Address) *Battle {
	return &Battle{
		Name:   name,
		Status: Pending,
		Seats:  [2]sdk.Address{creator, c.self},
	}
}

// createBattle opens a battle for creator. With auto set the bot takes seat 2
// straight away and the battle starts immediately.
func (c *Contract) createBattle(ctx context.Context, tx *callTx, name string, creator sdk.Address, auto bool) error {
	if err := validateBattleName(ctx, name); err != nil {
		return err
	}
	p, err := tx.requirePlayer(ctx, creator)
	if err != nil {
		return err
	}
	if p.InBattle {
		return i18n.NewError(ctx, msgs.MsgPlayerAlreadyInBattle, creator)
	}
	existing, err := tx.loadBattle(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return i18n.NewError(ctx, msgs.MsgBattleAlreadyExists, name)
	}

	b := c.initNewBattle(name, creator)
	if auto {
		c.seatBot(b)
	}

	p.InBattle = true
	if err := tx.setPlayer(ctx, p); err != nil {
		return err
	}
	if err := tx.saveBattle(ctx, b); err != nil {
		return err
	}
	if err := tx.appendIndex(ctx, battleCountKey, battleIndexKey, name); err != nil {
		return err
	}
	tx.emitBattleCreated(name, creator, auto)
	if auto {
		tx.emitBattleJoined(name, c.bot)
	}
	return nil
}

// seatBot puts the automated opponent in seat 2, with fresh baseline stats
// of its own, and starts the battle.
func (c *Contract) seatBot(b *Battle) {
	b.Seats[1] = c.bot
	b.Auto = true
	b.BotStats = baselineCombatant()
	b.Status = Started
	b.resetMoves()
}
