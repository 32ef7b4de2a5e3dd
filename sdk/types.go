package sdk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Address identifies an account on the ledger: a player, the contract
// itself, or the automated opponent.
type Address string

func (a Address) String() string { return string(a) }

// Env describes the call currently executing: who sent it, its transaction
// id and when it was issued.
type Env struct {
	Sender    Address
	TxID      string
	Timestamp time.Time
}

type ctxEnvKey struct{}

// NewEnv builds the environment for a call sent by sender with a fresh
// transaction id.
func NewEnv(sender Address) Env {
	return Env{
		Sender:    sender,
		TxID:      uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

func WithEnv(ctx context.Context, env Env) context.Context {
	return context.WithValue(ctx, ctxEnvKey{}, env)
}

// GetEnv returns the call environment, or the zero Env when the context
// carries none (an anonymous call).
func GetEnv(ctx context.Context) Env {
	env, _ := ctx.Value(ctxEnvKey{}).(Env)
	return env
}
