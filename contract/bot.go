package contract

// BotStrategy picks the automated opponent's move for a round. It sees both
// combatants' stats but never the human's move for the round.
type BotStrategy interface {
	ChooseMove(self, opponent Combatant, round uint32) Move
}

// BotStrategyFunc adapts a function to BotStrategy.
type BotStrategyFunc func(self, opponent Combatant, round uint32) Move

func (f BotStrategyFunc) ChooseMove(self, opponent Combatant, round uint32) Move {
	return f(self, opponent, round)
}

// DefaultBotStrategy attacks when its attack is lethal, defends when one
// more hit would finish it, and attacks otherwise.
type DefaultBotStrategy struct{}

func (DefaultBotStrategy) ChooseMove(self, opponent Combatant, _ uint32) Move {
	if self.Attack >= opponent.Health {
		return Attack
	}
	if opponent.Attack >= self.Health {
		return Defend
	}
	return Attack
}
