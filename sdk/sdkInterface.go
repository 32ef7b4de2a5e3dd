package sdk

import (
	"context"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
)

// State is the view of the key-value store a single call works against.
// Reads see the call's own earlier writes. A nil value means the key is
// absent (never written, or expired).
type State interface {
	StateGetObject(ctx context.Context, key string) (*string, error)
	StateSetObject(ctx context.Context, key, value string) error
	// StateBump extends the retention lifetime of key. The store owns the
	// policy; callers only trigger it.
	StateBump(ctx context.Context, key string) error
}

// Store runs each call as one serialized transaction. An error returned by
// fn (or a panic inside it) discards every write the call made.
type Store interface {
	Transaction(ctx context.Context, fn func(ctx context.Context, state State) error) error
}

// Authority decides whether the current call may act for an address.
type Authority interface {
	RequireAuth(ctx context.Context, addr Address) error
}

// SenderAuthority authorizes a call to act only for its own sender, as the
// ledger does for signed transactions.
type SenderAuthority struct{}

func (SenderAuthority) RequireAuth(ctx context.Context, addr Address) error {
	sender := GetEnv(ctx).Sender
	if sender == "" || sender != addr {
		return i18n.NewError(ctx, msgs.MsgUnauthorized, sender, addr)
	}
	return nil
}
