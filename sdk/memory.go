package sdk

import (
	"context"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
)

type memoryRecord struct {
	value     string
	expiresAt time.Time // zero when the store has no ttl
}

// MemoryStore is a map-backed Store. Calls are serialized by a mutex and
// stage their writes, which are applied only when the call succeeds.
type MemoryStore struct {
	mux   sync.Mutex
	state map[string]*memoryRecord
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore creates an empty store. A ttl of zero keeps records forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		state: make(map[string]*memoryRecord),
		ttl:   ttl,
		now:   time.Now,
	}
}

// SetClock replaces the store's time source (tests use it to move past ttl).
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.now = now
}

// Keys returns the live keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mux.Lock()
	defer m.mux.Unlock()
	keys := make([]string, 0, len(m.state))
	for k, r := range m.state {
		if !m.expired(r) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (m *MemoryStore) expired(r *memoryRecord) bool {
	return !r.expiresAt.IsZero() && m.now().After(r.expiresAt)
}

func (m *MemoryStore) Transaction(ctx context.Context, fn func(ctx context.Context, state State) error) (err error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	tx := &memoryTx{
		store:  m,
		writes: make(map[string]string),
		bumps:  make(map[string]bool),
	}
	completed := false
	defer func() {
		if !completed {
			panicData := recover()
			log.L(ctx).Errorf("Panic within state transaction: %v\n%s", panicData, debug.Stack())
			err = i18n.NewError(ctx, msgs.MsgPanicInTransaction, panicData)
		}
	}()

	err = fn(ctx, tx)
	completed = true
	if err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memoryTx struct {
	store  *MemoryStore
	writes map[string]string
	bumps  map[string]bool
}

func (tx *memoryTx) StateGetObject(ctx context.Context, key string) (*string, error) {
	if v, ok := tx.writes[key]; ok {
		return &v, nil
	}
	r, ok := tx.store.state[key]
	if !ok || tx.store.expired(r) {
		return nil, nil
	}
	v := r.value
	return &v, nil
}

func (tx *memoryTx) StateSetObject(ctx context.Context, key, value string) error {
	tx.writes[key] = value
	return nil
}

func (tx *memoryTx) StateBump(ctx context.Context, key string) error {
	tx.bumps[key] = true
	return nil
}

func (tx *memoryTx) commit() {
	m := tx.store
	var lifetime time.Time
	if m.ttl > 0 {
		lifetime = m.now().Add(m.ttl)
	}
	for k, v := range tx.writes {
		r, ok := m.state[k]
		if !ok || m.expired(r) {
			r = &memoryRecord{expiresAt: lifetime}
			m.state[k] = r
		}
		r.value = v
	}
	for k := range tx.bumps {
		if r, ok := m.state[k]; ok && !m.expired(r) {
			r.expiresAt = lifetime
		}
	}
}
