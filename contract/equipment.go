package contract

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// EquipmentModifier is the signed stat change a blade grants when equipped.
type EquipmentModifier struct {
	Health  int32 `json:"health"`
	Attack  int32 `json:"attack"`
	Defense int32 `json:"defense"`
}

func (m EquipmentModifier) apply(p *PlayerAttributes) {
	p.Health = applyDelta(p.Health, m.Health)
	p.Attack = applyDelta(p.Attack, m.Attack)
	p.Defense = applyDelta(p.Defense, m.Defense)
}

// EquipmentMetadata describes a blade class. It is descriptive only.
type EquipmentMetadata struct {
	Class  EquipmentClass `json:"class"`
	Name   string         `json:"name"`
	Symbol string         `json:"symbol"`
	URI    string         `json:"uri"`
}

type equipmentSpec struct {
	metadata EquipmentMetadata
	modifier EquipmentModifier
}

var equipmentTable = map[EquipmentClass]equipmentSpec{
	Longsword: {
		metadata: EquipmentMetadata{Class: Longsword, Name: "Longsword", Symbol: "LS", URI: "https://example/token0"},
		modifier: EquipmentModifier{Health: 8, Attack: 4, Defense: 3},
	},
	Sabre: {
		metadata: EquipmentMetadata{Class: Sabre, Name: "Sabre", Symbol: "S", URI: "https://example/token1"},
		modifier: EquipmentModifier{Health: -3, Attack: 16, Defense: 2},
	},
	Claymore: {
		metadata: EquipmentMetadata{Class: Claymore, Name: "Claymore", Symbol: "C", URI: "https://example/token2"},
		modifier: EquipmentModifier{Health: 7, Attack: 11, Defense: -3},
	},
}

// ParseEquipmentClass validates a raw class number from a caller.
func ParseEquipmentClass(ctx context.Context, n uint64) (EquipmentClass, error) {
	if n > uint64(^uint32(0)) {
		return NoEquipment, i18n.NewError(ctx, msgs.MsgInvalidClass, n)
	}
	if _, ok := equipmentTable[EquipmentClass(n)]; !ok {
		return NoEquipment, i18n.NewError(ctx, msgs.MsgInvalidClass, n)
	}
	return EquipmentClass(n), nil
}

// Modifier returns the stat change of a class, and false for unknown classes.
func (c EquipmentClass) Modifier() (EquipmentModifier, bool) {
	s, ok := equipmentTable[c]
	return s.modifier, ok
}

// ---------- Ledger ----------

func (tx *callTx) balanceOf(ctx context.Context, owner sdk.Address, class EquipmentClass) (uint64, error) {
	v, err := tx.get(ctx, balanceKey(class, owner))
	if err != nil || v == nil {
		return 0, err
	}
	n, err := strconv.ParseUint(*v, 10, 64)
	if err != nil {
		return 0, i18n.WrapError(ctx, err, msgs.MsgInvalidCounter, *v, balanceKey(class, owner))
	}
	return n, nil
}

func (tx *callTx) setBalance(ctx context.Context, owner sdk.Address, class EquipmentClass, n uint64) error {
	return tx.put(ctx, balanceKey(class, owner), strconv.FormatUint(n, 10))
}

// mint credits one unit of class to owner and records the class metadata.
func (tx *callTx) mint(ctx context.Context, owner sdk.Address, class EquipmentClass) error {
	n, err := tx.balanceOf(ctx, owner, class)
	if err != nil {
		return err
	}
	if err := tx.setBalance(ctx, owner, class, n+1); err != nil {
		return err
	}
	meta, err := json.Marshal(equipmentTable[class].metadata)
	if err != nil {
		return err
	}
	return tx.put(ctx, equipmentMetaKey(class), string(meta))
}

// burnAll zeroes the owner's balance of class, whatever the ledger held.
func (tx *callTx) burnAll(ctx context.Context, owner sdk.Address, class EquipmentClass) error {
	return tx.setBalance(ctx, owner, class, 0)
}

func (tx *callTx) equipmentMetadata(ctx context.Context, class EquipmentClass) (*EquipmentMetadata, error) {
	v, err := tx.get(ctx, equipmentMetaKey(class))
	if err != nil || v == nil {
		return nil, err
	}
	var meta EquipmentMetadata
	if err := json.Unmarshal([]byte(*v), &meta); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgCodecCorrupt, err)
	}
	return &meta, nil
}

// ---------- Equip / unequip ----------

// forgeBlade equips class on addr and credits the ledger.
func (tx *callTx) forgeBlade(ctx context.Context, addr sdk.Address, class EquipmentClass) error {
	p, err := tx.requirePlayer(ctx, addr)
	if err != nil {
		return err
	}
	if p.HasEquipment {
		return i18n.NewError(ctx, msgs.MsgAlreadyEquipped, addr)
	}
	if p.InBattle {
		return i18n.NewError(ctx, msgs.MsgPlayerInBattle, addr)
	}
	equipmentTable[class].modifier.apply(p)
	p.EquippedClass = class
	p.HasEquipment = true
	if err := tx.setPlayer(ctx, p); err != nil {
		return err
	}
	if err := tx.mint(ctx, addr, class); err != nil {
		return err
	}
	tx.emitBladeForged(addr, class)
	return nil
}

// meltBlade removes the equipped blade. Stats go back to the baseline rather
// than having the modifier subtracted.
func (tx *callTx) meltBlade(ctx context.Context, addr sdk.Address) error {
	p, err := tx.requirePlayer(ctx, addr)
	if err != nil {
		return err
	}
	if !p.HasEquipment {
		return i18n.NewError(ctx, msgs.MsgNotEquipped, addr)
	}
	if p.InBattle {
		return i18n.NewError(ctx, msgs.MsgPlayerInBattle, addr)
	}
	class := p.EquippedClass
	p.resetToBaseline()
	p.EquippedClass = NoEquipment
	p.HasEquipment = false
	if err := tx.setPlayer(ctx, p); err != nil {
		return err
	}
	if err := tx.burnAll(ctx, addr, class); err != nil {
		return err
	}
	tx.emitBladeMelted(addr, class)
	return nil
}
