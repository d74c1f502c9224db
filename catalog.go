package main

import (
	_ "embed"
	"fmt"

	"github.com/tidwall/gjson"
)

//go:embed catalog.json
var embeddedCatalog string

type enchantmentInfo struct {
	maxLevel       int
	itemMultiplier int
	applicable     ItemSet // always includes Book
	incompatible   EnchantmentSet
}

// Catalog holds the per-kind enchantment rules, indexed by discriminant.
type Catalog struct {
	Version      string
	enchantments [NumEnchantmentKinds]enchantmentInfo
}

var catalog = mustLoadCatalog(embeddedCatalog)

func mustLoadCatalog(doc string) *Catalog {
	c, err := parseCatalog(doc)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// parseCatalog reads a catalog document. Every declared item and
// enchantment kind must appear exactly once.
func parseCatalog(doc string) (*Catalog, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("catalog is not valid JSON")
	}
	c := &Catalog{Version: gjson.Get(doc, "version").String()}

	var seenItems ItemSet
	var err error
	gjson.Get(doc, "items").ForEach(func(_, v gjson.Result) bool {
		k, ok := ParseItemKind(v.String())
		if !ok {
			err = fmt.Errorf("items: unknown item kind %q", v.String())
			return false
		}
		if seenItems.Has(k) {
			err = fmt.Errorf("items: duplicate entry for %s", k)
			return false
		}
		seenItems = seenItems.Add(k)
		return true
	})
	if err != nil {
		return nil, err
	}
	for k, present := range seenItems.All() {
		if !present {
			return nil, fmt.Errorf("items: missing %s", k)
		}
	}

	var seen EnchantmentSet
	gjson.Get(doc, "enchantments").ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		k, ok := ParseEnchantmentKind(name)
		if !ok {
			err = fmt.Errorf("enchantments: unknown kind %q", name)
			return false
		}
		if seen.Has(k) {
			err = fmt.Errorf("enchantments: duplicate entry for %s", k)
			return false
		}
		seen = seen.Add(k)

		var info enchantmentInfo
		if info, err = parseEnchantmentInfo(k, v); err != nil {
			return false
		}
		c.enchantments[k] = info
		return true
	})
	if err != nil {
		return nil, err
	}
	for k, present := range seen.All() {
		if !present {
			return nil, fmt.Errorf("enchantments: missing %s", k)
		}
	}

	// Incompatibility is a symmetric relation even if the document only
	// lists one direction.
	for i := range c.enchantments {
		for other, present := range c.enchantments[i].incompatible.All() {
			if present {
				c.enchantments[other].incompatible = c.enchantments[other].incompatible.Add(EnchantmentKind(i))
			}
		}
	}
	return c, nil
}

func parseEnchantmentInfo(k EnchantmentKind, v gjson.Result) (enchantmentInfo, error) {
	info := enchantmentInfo{
		maxLevel:       int(v.Get("maxLevel").Int()),
		itemMultiplier: int(v.Get("itemMultiplier").Int()),
		applicable:     ItemSetOf(Book),
	}
	if info.maxLevel < 1 || info.maxLevel > maxLevelValue {
		return info, fmt.Errorf("%s: max level %d outside 1..%d", k, info.maxLevel, maxLevelValue)
	}
	switch info.itemMultiplier {
	case 1, 2, 4, 8:
	default:
		return info, fmt.Errorf("%s: item multiplier %d not in {1,2,4,8}", k, info.itemMultiplier)
	}

	var err error
	v.Get("items").ForEach(func(_, it gjson.Result) bool {
		ik, ok := ParseItemKind(it.String())
		if !ok {
			err = fmt.Errorf("%s: unknown item kind %q", k, it.String())
			return false
		}
		info.applicable = info.applicable.Add(ik)
		return true
	})
	if err != nil {
		return info, err
	}
	v.Get("incompatible").ForEach(func(_, e gjson.Result) bool {
		ek, ok := ParseEnchantmentKind(e.String())
		if !ok {
			err = fmt.Errorf("%s: unknown incompatible kind %q", k, e.String())
			return false
		}
		if ek == k {
			err = fmt.Errorf("%s: incompatible with itself", k)
			return false
		}
		info.incompatible = info.incompatible.Add(ek)
		return true
	})
	return info, err
}

func (k EnchantmentKind) MaxLevel() int { return catalog.enchantments[k].maxLevel }
func (k EnchantmentKind) ApplicableTo() ItemSet { return catalog.enchantments[k].applicable }
func (k EnchantmentKind) IncompatibleWith() EnchantmentSet { return catalog.enchantments[k].incompatible }
func (k EnchantmentKind) ItemMultiplier() int { return catalog.enchantments[k].itemMultiplier }

// BookMultiplier is half the item multiplier, never below 1.
func (k EnchantmentKind) BookMultiplier() int {
	m := k.ItemMultiplier()
	if m == 1 {
		return 1
	}
	return m / 2
}

// Multiplier picks the book or item rate depending on the sacrifice kind.
func (k EnchantmentKind) Multiplier(sacrifice ItemKind) int {
	if sacrifice == Book {
		return k.BookMultiplier()
	}
	return k.ItemMultiplier()
}
