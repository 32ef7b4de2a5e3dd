// Package kvstore keeps the arena's key-value state in a SQL database
// through gorm, with one database transaction per contract call.
package kvstore

import (
	"context"
	"database/sql"
	"runtime/debug"
	"time"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"

	gormSQLite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// stateRecord is one key of contract state. ExpiresAt is in unix
// nanoseconds, zero when the record never expires.
type stateRecord struct {
	Key       string    `gorm:"column:state_key;primaryKey"`
	Value     string    `gorm:"column:value"`
	ExpiresAt int64     `gorm:"column:expires_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stateRecord) TableName() string { return "state" }

func (r *stateRecord) expired(now time.Time) bool {
	return r.ExpiresAt != 0 && now.UnixNano() > r.ExpiresAt
}

type Store struct {
	gdb *gorm.DB
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// New opens the database named by the DSN and migrates the state table.
func New(ctx context.Context, c *conf.DBConfig) (*Store, error) {
	dsn := *conf.DBDefaults.DSN
	if c.DSN != nil {
		dsn = *c.DSN
	}
	if dsn == "" {
		return nil, i18n.NewError(ctx, msgs.MsgStoreMissingDSN)
	}

	var s *Store
	gdb, err := gorm.Open(gormSQLite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err == nil {
		s = &Store{
			gdb: gdb,
			ttl: conf.DurationMin(c.TTL, 0, *conf.DBDefaults.TTL),
			now: time.Now,
		}
		s.db, err = gdb.DB()
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgStoreInitFailed)
	}
	if conf.Bool(c.DebugQueries, *conf.DBDefaults.DebugQueries) {
		s.gdb = s.gdb.Debug()
	}
	// one connection: calls are serialized and :memory: databases stay shared
	s.db.SetMaxOpenConns(1)
	s.db.SetMaxIdleConns(1)

	if err := s.gdb.WithContext(ctx).AutoMigrate(&stateRecord{}); err != nil {
		_ = s.db.Close()
		return nil, i18n.WrapError(ctx, err, msgs.MsgStoreMigrationFailed)
	}
	log.L(ctx).Infof("State store open (ttl=%s)", s.ttl)
	return s, nil
}

// SetClock replaces the store's time source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() {
	err := s.db.Close()
	log.L(context.Background()).Infof("State store closed (err=%v)", err)
}

func (s *Store) lifetime(now time.Time) int64 {
	if s.ttl <= 0 {
		return 0
	}
	return now.Add(s.ttl).UnixNano()
}

// Transaction runs fn in one database transaction. A returned error or a
// panic rolls back every write.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, state sdk.State) error) (err error) {
	completed := false
	defer func() {
		if !completed {
			panicData := recover()
			log.L(ctx).Errorf("Panic within state transaction: %v\n%s", panicData, debug.Stack())
			err = i18n.NewError(ctx, msgs.MsgPanicInTransaction, panicData)
		}
	}()

	err = s.gdb.WithContext(ctx).Transaction(func(gormTX *gorm.DB) error {
		return fn(ctx, &stateTx{store: s, gdb: gormTX})
	})
	completed = true
	return err
}

// Sweep deletes records whose retention has lapsed.
func (s *Store) Sweep(ctx context.Context) (int64, error) {
	res := s.gdb.WithContext(ctx).
		Where("expires_at <> 0 AND expires_at < ?", s.now().UnixNano()).
		Delete(&stateRecord{})
	if res.Error != nil {
		return 0, i18n.WrapError(ctx, res.Error, msgs.MsgStateWriteFailed, "*")
	}
	if res.RowsAffected > 0 {
		log.L(ctx).Infof("Swept %d expired state records", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

type stateTx struct {
	store *Store
	gdb   *gorm.DB
}

func (tx *stateTx) find(key string) (*stateRecord, error) {
	var records []*stateRecord
	err := tx.gdb.Where("state_key = ?", key).Limit(1).Find(&records).Error
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (tx *stateTx) StateGetObject(ctx context.Context, key string) (*string, error) {
	r, err := tx.find(key)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgStateReadFailed, key)
	}
	if r == nil || r.expired(tx.store.now()) {
		return nil, nil
	}
	return &r.Value, nil
}

// StateSetObject writes value. A new or lapsed record starts a fresh
// lifetime; a live record keeps its expiry until bumped.
func (tx *stateTx) StateSetObject(ctx context.Context, key, value string) error {
	now := tx.store.now()
	existing, err := tx.find(key)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgStateReadFailed, key)
	}
	r := &stateRecord{Key: key, Value: value, UpdatedAt: now, ExpiresAt: tx.store.lifetime(now)}
	if existing != nil && !existing.expired(now) {
		r.ExpiresAt = existing.ExpiresAt
	}
	err = tx.gdb.Clauses(clause.OnConflict{UpdateAll: true}).Create(r).Error
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgStateWriteFailed, key)
	}
	return nil
}

// StateBump leaves a missing or lapsed record alone.
func (tx *stateTx) StateBump(ctx context.Context, key string) error {
	now := tx.store.now()
	err := tx.gdb.Model(&stateRecord{}).
		Where("state_key = ? AND (expires_at = 0 OR expires_at >= ?)", key, now.UnixNano()).
		Update("expires_at", tx.store.lifetime(now)).
		Error
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgStateWriteFailed, key)
	}
	return nil
}
