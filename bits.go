package main

import (
	"iter"
	"math/bits"
)

// ItemSet holds one bit per ItemKind.
type ItemSet uint32

// ItemSetOf builds a set from the given kinds.
func ItemSetOf(kinds ...ItemKind) ItemSet {
	var s ItemSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s ItemSet) Add(k ItemKind) ItemSet { return s | 1<<k }
func (s ItemSet) Remove(k ItemKind) ItemSet { return s &^ (1 << k) }
func (s ItemSet) Has(k ItemKind) bool { return s&(1<<k) != 0 }
func (s ItemSet) Len() int { return bits.OnesCount32(uint32(s)) }

// All yields every declared kind with its membership, in declaration order.
func (s ItemSet) All() iter.Seq2[ItemKind, bool] {
	return func(yield func(ItemKind, bool) bool) {
		for i := 0; i < NumItemKinds; i++ {
			k := ItemKind(i)
			if !yield(k, s.Has(k)) {
				return
			}
		}
	}
}

// EnchantmentSet holds one bit per EnchantmentKind, without levels.
type EnchantmentSet uint64

// EnchantmentSetOf builds a set from the given kinds.
func EnchantmentSetOf(kinds ...EnchantmentKind) EnchantmentSet {
	var s EnchantmentSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s EnchantmentSet) Add(k EnchantmentKind) EnchantmentSet { return s | 1<<k }
func (s EnchantmentSet) Remove(k EnchantmentKind) EnchantmentSet { return s &^ (1 << k) }
func (s EnchantmentSet) Has(k EnchantmentKind) bool { return s&(1<<k) != 0 }
func (s EnchantmentSet) Len() int { return bits.OnesCount64(uint64(s)) }

// All yields every declared kind with its membership, in declaration order.
func (s EnchantmentSet) All() iter.Seq2[EnchantmentKind, bool] {
	return func(yield func(EnchantmentKind, bool) bool) {
		for i := 0; i < NumEnchantmentKinds; i++ {
			k := EnchantmentKind(i)
			if !yield(k, s.Has(k)) {
				return
			}
		}
	}
}

// ── Enchantment profile ─────────────────────────────────────────────

const (
	levelBits     = 3
	levelMask     = 1<<levelBits - 1
	kindsPerWord  = 64 / levelBits // 21 kinds per uint64, 63 bits used
	profileWords  = (NumEnchantmentKinds + kindsPerWord - 1) / kindsPerWord
	maxLevelValue = levelMask
)

// Enchantments packs a level in 0..7 for every EnchantmentKind, 3 bits
// each. The zero value has no enchantments. Set masks levels to 3 bits;
// callers that need range checks go through NewEnchantment.
type Enchantments struct {
	w [profileWords]uint64
}

// NewEnchantments packs the given enchantments. Later entries for the same
// kind overwrite earlier ones.
func NewEnchantments(es ...Enchantment) Enchantments {
	var p Enchantments
	for _, e := range es {
		p = p.Set(e.Kind, e.Level)
	}
	return p
}

func slot(k EnchantmentKind) (word int, shift uint) {
	return int(k) / kindsPerWord, uint(int(k)%kindsPerWord) * levelBits
}

// Level returns the level of k, 0 when absent.
func (p Enchantments) Level(k EnchantmentKind) int {
	w, sh := slot(k)
	return int(p.w[w] >> sh & levelMask)
}

// Set returns a copy of p with k at level (masked to 3 bits). Level 0
// removes the enchantment.
func (p Enchantments) Set(k EnchantmentKind, level int) Enchantments {
	w, sh := slot(k)
	p.w[w] = p.w[w]&^(levelMask<<sh) | uint64(level&levelMask)<<sh
	return p
}

func (p Enchantments) Has(k EnchantmentKind) bool {
	return p.Level(k) != 0
}

// Size counts the kinds with a non-zero level.
func (p Enchantments) Size() int {
	n := 0
	for i := 0; i < NumEnchantmentKinds; i++ {
		if p.Has(EnchantmentKind(i)) {
			n++
		}
	}
	return n
}

// Kinds drops the levels.
func (p Enchantments) Kinds() EnchantmentSet {
	var s EnchantmentSet
	for e := range p.Contained() {
		s = s.Add(e.Kind)
	}
	return s
}

// Contained yields the present enchantments in declaration order.
func (p Enchantments) Contained() iter.Seq[Enchantment] {
	return func(yield func(Enchantment) bool) {
		for i := 0; i < NumEnchantmentKinds; i++ {
			k := EnchantmentKind(i)
			if lvl := p.Level(k); lvl > 0 {
				if !yield(Enchantment{Kind: k, Level: lvl}) {
					return
				}
			}
		}
	}
}

// List returns the present enchantments in declaration order.
func (p Enchantments) List() []Enchantment {
	var out []Enchantment
	for e := range p.Contained() {
		out = append(out, e)
	}
	return out
}
