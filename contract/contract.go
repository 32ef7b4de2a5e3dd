// Package contract is the blade arena game: a player registry, an equipment
// ledger and a two-seat battle engine whose whole state lives in a key-value
// store. Every exported operation on Contract runs as one store transaction
// and either applies all of its writes or none.
package contract

import (
	"context"

	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/sdk"
)

const (
	DefaultContractAddress sdk.Address = "contract:arena"
	DefaultBotAddress      sdk.Address = "contract:arena-bot"
)

// Recorder receives call outcomes and committed events.
type Recorder interface {
	RecordOperation(op, outcome string)
	RecordEvent(eventType string)
}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(string, string) {}
func (noopRecorder) RecordEvent(string)             {}

type Contract struct {
	store     sdk.Store
	authority sdk.Authority
	self      sdk.Address
	bot       sdk.Address
	strategy  BotStrategy
	recorder  Recorder
}

type Option func(*Contract)

// WithAuthority replaces the default SenderAuthority.
func WithAuthority(a sdk.Authority) Option {
	return func(c *Contract) { c.authority = a }
}

// WithContractAddress sets the address parked in seat 2 of pending battles.
func WithContractAddress(addr sdk.Address) Option {
	return func(c *Contract) {
		if addr != "" {
			c.self = addr
		}
	}
}

func WithBotAddress(addr sdk.Address) Option {
	return func(c *Contract) {
		if addr != "" {
			c.bot = addr
		}
	}
}

func WithBotStrategy(s BotStrategy) Option {
	return func(c *Contract) { c.strategy = s }
}

func WithRecorder(r Recorder) Option {
	return func(c *Contract) { c.recorder = r }
}

func New(store sdk.Store, opts ...Option) *Contract {
	c := &Contract{
		store:     store,
		authority: sdk.SenderAuthority{},
		self:      DefaultContractAddress,
		bot:       DefaultBotAddress,
		strategy:  DefaultBotStrategy{},
		recorder:  noopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Contract) ContractAddress() sdk.Address { return c.self }

func (c *Contract) BotAddress() sdk.Address { return c.bot }

// call runs fn as one store transaction. Events are published only after the
// transaction commits.
func (c *Contract) call(ctx context.Context, op string, fn func(ctx context.Context, tx *callTx) error) error {
	ctx = log.WithLogField(ctx, "op", op)
	if txID := sdk.GetEnv(ctx).TxID; txID != "" {
		ctx = log.WithLogField(ctx, "tx", txID)
	}

	var events []Event
	err := c.store.Transaction(ctx, func(ctx context.Context, state sdk.State) error {
		tx := &callTx{state: state}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		events = tx.events
		return nil
	})
	c.recorder.RecordOperation(op, outcome(err))
	if err != nil {
		log.L(ctx).Debugf("Call failed: %s", err)
		return err
	}

	publishEvents(ctx, events)
	for _, e := range events {
		c.recorder.RecordEvent(e.Type)
	}
	return nil
}

// authorize checks addr is well formed and that the call may act for it.
func (c *Contract) authorize(ctx context.Context, addr sdk.Address) error {
	if err := requireAddress(ctx, addr); err != nil {
		return err
	}
	return c.authority.RequireAuth(ctx, addr)
}
