package contract

import (
	"context"

	"okinoko-blade_arena/sdk"
)

// ---------- Player registry ----------

// Register creates a baseline record for addr. Registering twice fails.
func (c *Contract) Register(ctx context.Context, addr sdk.Address) error {
	return c.call(ctx, "register", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, addr); err != nil {
			return err
		}
		return tx.registerPlayer(ctx, addr)
	})
}

// GetPlayer returns the player's attributes, or the zero value when addr
// never registered. A zero value is indistinguishable from a defeated
// record with no stats; use LookupPlayer to tell them apart.
func (c *Contract) GetPlayer(ctx context.Context, addr sdk.Address) (PlayerAttributes, error) {
	p, err := c.LookupPlayer(ctx, addr)
	if err != nil || p == nil {
		return PlayerAttributes{}, err
	}
	return *p, nil
}

// LookupPlayer returns nil when addr never registered.
func (c *Contract) LookupPlayer(ctx context.Context, addr sdk.Address) (p *PlayerAttributes, err error) {
	err = c.call(ctx, "get_player", func(ctx context.Context, tx *callTx) error {
		p, err = tx.loadPlayer(ctx, addr)
		return err
	})
	return p, err
}

// ListPlayers returns registered addresses in registration order.
func (c *Contract) ListPlayers(ctx context.Context) (players []sdk.Address, err error) {
	err = c.call(ctx, "list_players", func(ctx context.Context, tx *callTx) error {
		players, err = tx.listPlayers(ctx)
		return err
	})
	return players, err
}

// ---------- Equipment ledger ----------

// Equip forges a blade of class and applies its modifier to addr.
func (c *Contract) Equip(ctx context.Context, addr sdk.Address, class EquipmentClass) error {
	return c.call(ctx, "equip", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, addr); err != nil {
			return err
		}
		if _, err := ParseEquipmentClass(ctx, uint64(class)); err != nil {
			return err
		}
		return tx.forgeBlade(ctx, addr, class)
	})
}

// Unequip melts the equipped blade and resets addr to the baseline stats.
func (c *Contract) Unequip(ctx context.Context, addr sdk.Address) error {
	return c.call(ctx, "unequip", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, addr); err != nil {
			return err
		}
		return tx.meltBlade(ctx, addr)
	})
}

// BalanceOf returns how many blades of class addr holds on the ledger.
func (c *Contract) BalanceOf(ctx context.Context, addr sdk.Address, class EquipmentClass) (n uint64, err error) {
	err = c.call(ctx, "balance_of", func(ctx context.Context, tx *callTx) error {
		if _, err := ParseEquipmentClass(ctx, uint64(class)); err != nil {
			return err
		}
		n, err = tx.balanceOf(ctx, addr, class)
		return err
	})
	return n, err
}

// EquipmentMetadata returns the stored metadata of class, or nil when no
// blade of that class was ever forged.
func (c *Contract) EquipmentMetadata(ctx context.Context, class EquipmentClass) (meta *EquipmentMetadata, err error) {
	err = c.call(ctx, "equipment_metadata", func(ctx context.Context, tx *callTx) error {
		if _, err := ParseEquipmentClass(ctx, uint64(class)); err != nil {
			return err
		}
		meta, err = tx.equipmentMetadata(ctx, class)
		return err
	})
	return meta, err
}

// ---------- Battle engine ----------

// CreateBattle opens a pending battle with creator in seat 1.
func (c *Contract) CreateBattle(ctx context.Context, name string, creator sdk.Address) error {
	return c.call(ctx, "create_battle", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, creator); err != nil {
			return err
		}
		return c.createBattle(ctx, tx, name, creator, false)
	})
}

// CreateAutoBattle opens a battle against the bot that starts immediately.
func (c *Contract) CreateAutoBattle(ctx context.Context, name string, creator sdk.Address) error {
	return c.call(ctx, "create_auto_battle", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, creator); err != nil {
			return err
		}
		return c.createBattle(ctx, tx, name, creator, true)
	})
}

func (c *Contract) JoinBattle(ctx context.Context, name string, joiner sdk.Address) error {
	return c.call(ctx, "join_battle", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, joiner); err != nil {
			return err
		}
		return c.joinBattle(ctx, tx, name, joiner)
	})
}

// ChallengeBot lets the creator of a pending battle fight the bot instead of
// waiting for another player.
func (c *Contract) ChallengeBot(ctx context.Context, user sdk.Address, name string) error {
	return c.call(ctx, "challenge_bot", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, user); err != nil {
			return err
		}
		return c.challengeBot(ctx, tx, user, name)
	})
}

// SubmitMove records user's choice for the current round of the battle.
func (c *Contract) SubmitMove(ctx context.Context, user sdk.Address, choice Move, name string) error {
	return c.call(ctx, "submit_move", func(ctx context.Context, tx *callTx) error {
		if err := c.authorize(ctx, user); err != nil {
			return err
		}
		move, err := ParseMove(ctx, uint64(choice))
		if err != nil {
			return err
		}
		return c.submitMove(ctx, tx, user, move, name)
	})
}

// GetBattle returns the battle, or the zero value (Pending, empty seats)
// when no battle has the name. Use LookupBattle to tell them apart.
func (c *Contract) GetBattle(ctx context.Context, name string) (Battle, error) {
	b, err := c.LookupBattle(ctx, name)
	if err != nil || b == nil {
		return Battle{}, err
	}
	return *b, nil
}

// LookupBattle returns nil when no battle has the name.
func (c *Contract) LookupBattle(ctx context.Context, name string) (b *Battle, err error) {
	err = c.call(ctx, "get_battle", func(ctx context.Context, tx *callTx) error {
		b, err = tx.loadBattle(ctx, name)
		return err
	})
	return b, err
}

// ListBattles returns battle names in creation order.
func (c *Contract) ListBattles(ctx context.Context) (names []string, err error) {
	err = c.call(ctx, "list_battles", func(ctx context.Context, tx *callTx) error {
		names, err = tx.listBattles(ctx)
		return err
	})
	return names, err
}
