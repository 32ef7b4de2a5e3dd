package contract

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// submitMove records user's move for the current round. In a bot battle the
// bot answers in the same call. Once both slots are filled the round is
// resolved before returning.
func (c *Contract) submitMove(ctx context.Context, tx *callTx, user sdk.Address, move Move, name string) error {
	b, err := tx.requireBattle(ctx, name)
	if err != nil {
		return err
	}
	if b.Status != Started {
		return i18n.NewError(ctx, msgs.MsgBattleNotStarted, name)
	}
	seat := b.seatOf(user)
	if seat < 0 {
		return i18n.NewError(ctx, msgs.MsgNotAParticipant, user, name)
	}
	if b.Moves[seat] != NoMove {
		return i18n.NewError(ctx, msgs.MsgMoveAlreadySubmitted, user, b.Round+1, name)
	}

	b.Moves[seat] = move
	tx.emitMoveSubmitted(name, user, b.Round+1)

	if b.Auto && b.Moves[1] == NoMove {
		if err := c.botMove(ctx, tx, b); err != nil {
			return err
		}
	}

	if b.bothMoved() {
		if err := c.resolveRound(ctx, tx, b); err != nil {
			return err
		}
	}
	return tx.saveBattle(ctx, b)
}

// botMove fills seat 2 using the configured strategy.
func (c *Contract) botMove(ctx context.Context, tx *callTx, b *Battle) error {
	human, err := tx.requirePlayer(ctx, b.Seats[0])
	if err != nil {
		return err
	}
	move := c.strategy.ChooseMove(b.BotStats, human.combatant(), b.Round+1)
	if move != Attack && move != Defend {
		move = Attack
	}
	b.Moves[1] = move
	tx.emitMoveSubmitted(b.Name, b.Seats[1], b.Round+1)
	return nil
}

// resolveRound applies the outcome of both moves to the combatants. A
// decisive round ends the battle and releases the human seats with health
// restored. In a bot battle seat 2 reads and writes the battle's BotStats.
func (c *Contract) resolveRound(ctx context.Context, tx *callTx, b *Battle) error {
	var players [2]*PlayerAttributes
	var combatants [2]Combatant
	for i, addr := range b.Seats {
		if i == 1 && b.Auto {
			combatants[i] = b.BotStats
			continue
		}
		p, err := tx.requirePlayer(ctx, addr)
		if err != nil {
			return err
		}
		players[i] = p
		combatants[i] = p.combatant()
	}

	out := Resolve(combatants, b.Moves)
	b.Round++
	tx.emitRoundResolved(b)
	if b.Auto {
		b.BotStats = out.Combatants[1]
	}

	if out.Decided() {
		b.Status = Ended
		b.Winner = b.Seats[out.Winner]
		for _, p := range players {
			if p == nil {
				continue
			}
			if err := tx.releasePlayer(ctx, p.Address); err != nil {
				return err
			}
		}
		tx.emitBattleWon(b.Name, b.Winner)
		return nil
	}

	for i, p := range players {
		if p == nil {
			continue
		}
		p.Health = out.Combatants[i].Health
		p.Attack = out.Combatants[i].Attack
		p.Defense = out.Combatants[i].Defense
		if err := tx.setPlayer(ctx, p); err != nil {
			return err
		}
	}
	b.resetMoves()
	return nil
}
