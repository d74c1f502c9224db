package main

import (
	"errors"
	"fmt"
	"strings"
)

// MaxItems is the largest pool the optimizer accepts.
const MaxItems = 10

// MaxPriorWorkPenalty bounds a source item's penalty so merge costs and
// result penalties stay within int range.
const MaxPriorWorkPenalty = 1 << 20

type EnchantmentKind uint8

const (
	// General
	Mending EnchantmentKind = iota
	Unbreaking
	CurseOfBinding
	CurseOfVanishing
	// Armor
	Protection
	BlastProtection
	FireProtection
	ProjectileProtection
	Thorns
	// Helmet
	Respiration
	AquaAffinity
	// Leggings
	SwiftSneak
	// Boots
	DepthStrider
	FrostWalker
	FeatherFalling
	SoulSpeed
	// Weapon
	SweepingEdge
	Sharpness
	Smite
	BaneOfArthropods
	Knockback
	FireAspect
	Looting
	// Tool
	SilkTouch
	Efficiency
	Fortune
	// Bow
	Power
	Punch
	Flame
	Infinity
	// Fishing rod
	LuckOfTheSea
	Lure
	// Trident
	Impaling
	Riptide
	Loyalty
	Channeling
	// Crossbow
	Multishot
	Piercing
	QuickCharge

	NumEnchantmentKinds = int(QuickCharge) + 1
)

var enchantmentNames = [NumEnchantmentKinds]string{
	"Mending", "Unbreaking", "CurseOfBinding", "CurseOfVanishing",
	"Protection", "BlastProtection", "FireProtection", "ProjectileProtection", "Thorns",
	"Respiration", "AquaAffinity",
	"SwiftSneak",
	"DepthStrider", "FrostWalker", "FeatherFalling", "SoulSpeed",
	"SweepingEdge", "Sharpness", "Smite", "BaneOfArthropods", "Knockback", "FireAspect", "Looting",
	"SilkTouch", "Efficiency", "Fortune",
	"Power", "Punch", "Flame", "Infinity",
	"LuckOfTheSea", "Lure",
	"Impaling", "Riptide", "Loyalty", "Channeling",
	"Multishot", "Piercing", "QuickCharge",
}

// Valid reports whether k is a declared enchantment kind.
func (k EnchantmentKind) Valid() bool {
	return int(k) < NumEnchantmentKinds
}

func (k EnchantmentKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("EnchantmentKind(%d)", uint8(k))
	}
	return enchantmentNames[k]
}

type ItemKind uint8

const (
	// Armor
	Helmet ItemKind = iota
	Chestplate
	Leggings
	Boots
	Elytra
	// Tool
	Axe
	Pickaxe
	Shovel
	Hoe
	// Weapon
	Sword
	Bow
	Crossbow
	Trident
	Shield
	// Misc
	Shears
	FishingRod
	FlintAndSteel
	CarrotOnAStick
	WarpedFungusOnAStick
	Compass
	Book
	CarvedPumpkin
	Head
	RecoveryCompass

	NumItemKinds = int(RecoveryCompass) + 1
)

var itemNames = [NumItemKinds]string{
	"Helmet", "Chestplate", "Leggings", "Boots", "Elytra",
	"Axe", "Pickaxe", "Shovel", "Hoe",
	"Sword", "Bow", "Crossbow", "Trident", "Shield",
	"Shears", "FishingRod", "FlintAndSteel", "CarrotOnAStick", "WarpedFungusOnAStick",
	"Compass", "Book", "CarvedPumpkin", "Head", "RecoveryCompass",
}

// Valid reports whether k is a declared item kind.
func (k ItemKind) Valid() bool {
	return int(k) < NumItemKinds
}

func (k ItemKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ItemKind(%d)", uint8(k))
	}
	return itemNames[k]
}

// normalizeName folds "fishing_rod", "Fishing Rod" and "FishingRod" together.
func normalizeName(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToLower(s)
}

// ParseEnchantmentKind resolves a catalog name to its kind.
func ParseEnchantmentKind(s string) (EnchantmentKind, bool) {
	n := normalizeName(s)
	for i, name := range enchantmentNames {
		if normalizeName(name) == n {
			return EnchantmentKind(i), true
		}
	}
	return 0, false
}

// ParseItemKind resolves a catalog name to its kind.
func ParseItemKind(s string) (ItemKind, bool) {
	n := normalizeName(s)
	for i, name := range itemNames {
		if normalizeName(name) == n {
			return ItemKind(i), true
		}
	}
	return 0, false
}

// Enchantment is a single (kind, level) pair. Level 0 means absent.
type Enchantment struct {
	Kind  EnchantmentKind
	Level int
}

// NewEnchantment validates level against the catalog's max level for kind.
func NewEnchantment(kind EnchantmentKind, level int) (Enchantment, error) {
	if !kind.Valid() {
		return Enchantment{}, fmt.Errorf("unknown enchantment kind %d", uint8(kind))
	}
	if level < 0 || level > kind.MaxLevel() {
		return Enchantment{}, fmt.Errorf("%s: level %d outside 0..%d", kind, level, kind.MaxLevel())
	}
	return Enchantment{Kind: kind, Level: level}, nil
}

// Item is one anvil operand. Items are values; merges always produce new ones.
type Item struct {
	Enchantments     Enchantments
	PriorWorkPenalty int
	Kind             ItemKind
}

// Step is one concrete merge. Result is always Combine(Target, Sacrifice).Result.
type Step struct {
	Target    Item
	Sacrifice Item
	Result    Item
	Cost      int
}

// Branch is an ordered merge plan. Steps must be executed in order; the
// last step produces the final item.
type Branch struct {
	Steps     []Step
	TotalCost int
}

// Result returns the item produced by the last step. A branch over a
// single item has no steps and reports false.
func (b Branch) Result() (Item, bool) {
	if len(b.Steps) == 0 {
		return Item{}, false
	}
	return b.Steps[len(b.Steps)-1].Result, true
}

// IncompatibleItemsError is returned when two non-book items of different
// kinds are merged.
type IncompatibleItemsError struct {
	Target    ItemKind
	Sacrifice ItemKind
}

func (e *IncompatibleItemsError) Error() string {
	return fmt.Sprintf("incompatible items: cannot merge %s into %s", e.Sacrifice, e.Target)
}

// ErrItemCount is returned for pools outside 1..MaxItems.
var ErrItemCount = errors.New("item count out of range")
