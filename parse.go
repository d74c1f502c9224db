package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pool is the ordered set of items a caller wants merged.
type Pool struct {
	Name  string
	Items []Item
}

// LoadPool reads a pool document from a .json, .yaml or .yml file.
func LoadPool(path string) (*Pool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	pool, err := ParsePool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if pool.Name == "" {
		pool.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return pool, nil
}

// ParsePool validates a JSON pool document and builds its items.
func ParsePool(doc []byte) (*Pool, error) {
	if err := validatePoolSchema(doc); err != nil {
		return nil, err
	}
	return buildPool(string(doc))
}

// ExamplePool is the pool used when the CLI gets no file: a bare axe plus
// five single-enchantment books.
func ExamplePool() *Pool {
	book := func(kind EnchantmentKind, level int) Item {
		return Item{Kind: Book, Enchantments: NewEnchantments(Enchantment{Kind: kind, Level: level})}
	}
	return &Pool{
		Name: "example",
		Items: []Item{
			{Kind: Axe},
			book(Mending, 1),
			book(Efficiency, 5),
			book(SilkTouch, 1),
			book(Sharpness, 5),
			book(Unbreaking, 3),
		},
	}
}
