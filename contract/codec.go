package contract

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// codecVersion increments when storage encoding changes.
const codecVersion uint8 = 2

var (
	errDecodeOverflow = errors.New("decode overflow")
	errTrailingBytes  = errors.New("trailing bytes")
)

// Player flags byte.
const (
	playerFlagInBattle     = 1 << 0
	playerFlagHasEquipment = 1 << 1
)

// Battle flags byte.
const (
	battleFlagAuto      = 1 << 0
	battleFlagHasWinner = 1 << 1
)

type wr struct{ out []byte }

func (w *wr) u8(x byte) { w.out = append(w.out, x) }

func (w *wr) u16(x uint16) { w.out = binary.BigEndian.AppendUint16(w.out, x) }

func (w *wr) u32(x uint32) { w.out = binary.BigEndian.AppendUint32(w.out, x) }

// str writes a length-prefixed string (2-byte length).
func (w *wr) str(s string) {
	w.u16(uint16(len(s)))
	w.out = append(w.out, s...)
}

// encodePlayer serializes a player record.
//
// Layout:
//
//	version | flags | class u32 | health u32 | attack u32 | defense u32 | address
func encodePlayer(p *PlayerAttributes) string {
	w := &wr{out: make([]byte, 0, 19+len(p.Address))}
	var flags byte
	if p.InBattle {
		flags |= playerFlagInBattle
	}
	if p.HasEquipment {
		flags |= playerFlagHasEquipment
	}
	w.u8(codecVersion)
	w.u8(flags)
	w.u32(uint32(p.EquippedClass))
	w.u32(p.Health)
	w.u32(p.Attack)
	w.u32(p.Defense)
	w.str(string(p.Address))
	return string(w.out)
}

func decodePlayer(ctx context.Context, val string) (*PlayerAttributes, error) {
	r := &rd{b: []byte(val)}
	if err := r.version(ctx); err != nil {
		return nil, err
	}
	flags := r.u8()
	p := &PlayerAttributes{
		EquippedClass: EquipmentClass(r.u32()),
		Health:        r.u32(),
		Attack:        r.u32(),
		Defense:       r.u32(),
		Address:       sdk.Address(r.str()),
	}
	p.InBattle = flags&playerFlagInBattle != 0
	p.HasEquipment = flags&playerFlagHasEquipment != 0
	if err := r.end(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// encodeBattle serializes a battle record.
//
// Layout:
//
//	version | status | flags | move1 | move2 | round u32 | name (u8 len) | seat1 | seat2 |
//	bot health u32 | bot attack u32 | bot defense u32 (auto only) | winner?
func encodeBattle(b *Battle) string {
	w := &wr{out: make([]byte, 0, 28+len(b.Name)+len(b.Seats[0])+len(b.Seats[1])+len(b.Winner))}
	var flags byte
	if b.Auto {
		flags |= battleFlagAuto
	}
	if b.Winner != "" {
		flags |= battleFlagHasWinner
	}
	w.u8(codecVersion)
	w.u8(byte(b.Status))
	w.u8(flags)
	w.u8(byte(b.Moves[0]))
	w.u8(byte(b.Moves[1]))
	w.u32(b.Round)
	w.u8(byte(len(b.Name)))
	w.out = append(w.out, b.Name...)
	w.str(string(b.Seats[0]))
	w.str(string(b.Seats[1]))
	if b.Auto {
		w.u32(b.BotStats.Health)
		w.u32(b.BotStats.Attack)
		w.u32(b.BotStats.Defense)
	}
	if b.Winner != "" {
		w.str(string(b.Winner))
	}
	return string(w.out)
}

func decodeBattle(ctx context.Context, val string) (*Battle, error) {
	r := &rd{b: []byte(val)}
	if err := r.version(ctx); err != nil {
		return nil, err
	}
	b := &Battle{}
	b.Status = BattleStatus(r.u8())
	flags := r.u8()
	b.Moves[0] = Move(r.u8())
	b.Moves[1] = Move(r.u8())
	b.Round = r.u32()
	b.Name = string(r.bytes(int(r.u8())))
	b.Seats[0] = sdk.Address(r.str())
	b.Seats[1] = sdk.Address(r.str())
	b.Auto = flags&battleFlagAuto != 0
	if b.Auto {
		b.BotStats = Combatant{Health: r.u32(), Attack: r.u32(), Defense: r.u32()}
	}
	if flags&battleFlagHasWinner != 0 {
		b.Winner = sdk.Address(r.str())
	}
	if err := r.end(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// rd is a big-endian reader over a byte slice. The first failure sticks and
// every later read returns zero values.
type rd struct {
	b   []byte
	i   int
	err error
}

func (r *rd) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.i+n > len(r.b) {
		r.err = errDecodeOverflow
		return false
	}
	return true
}

func (r *rd) u8() byte {
	if !r.need(1) {
		return 0
	}
	v := r.b[r.i]
	r.i++
	return v
}

func (r *rd) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.b[r.i : r.i+2])
	r.i += 2
	return v
}

func (r *rd) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.b[r.i : r.i+4])
	r.i += 4
	return v
}

func (r *rd) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v
}

func (r *rd) str() string {
	return string(r.bytes(int(r.u16())))
}

func (r *rd) version(ctx context.Context) error {
	v := r.u8()
	if r.err != nil {
		return i18n.WrapError(ctx, r.err, msgs.MsgCodecCorrupt, r.err)
	}
	if v != codecVersion {
		return i18n.NewError(ctx, msgs.MsgCodecVersion, v)
	}
	return nil
}

// end verifies that the reader consumed all bytes exactly.
func (r *rd) end(ctx context.Context) error {
	if r.err == nil && r.i != len(r.b) {
		r.err = errTrailingBytes
	}
	if r.err != nil {
		return i18n.WrapError(ctx, r.err, msgs.MsgCodecCorrupt, r.err)
	}
	return nil
}
