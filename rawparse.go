package main

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed pool.schema.json
var poolSchemaJSON string

var poolSchema = jsonschema.MustCompileString("pool.schema.json", poolSchemaJSON)

func validatePoolSchema(doc []byte) error {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := poolSchema.Validate(v); err != nil {
		return fmt.Errorf("pool schema: %w", err)
	}
	return nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yaml to json: %w", err)
	}
	return out, nil
}

// buildPool reads a schema-valid document and applies the catalog rules
// the schema cannot express.
func buildPool(doc string) (*Pool, error) {
	pool := &Pool{Name: gjson.Get(doc, "name").String()}
	var err error
	gjson.Get(doc, "items").ForEach(func(key, v gjson.Result) bool {
		var it Item
		if it, err = parseItem(v); err != nil {
			err = fmt.Errorf("items[%d]: %w", key.Int(), err)
			return false
		}
		pool.Items = append(pool.Items, it)
		return true
	})
	if err != nil {
		return nil, err
	}
	if n := len(pool.Items); n < 1 || n > MaxItems {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrItemCount, n, MaxItems)
	}
	return pool, nil
}

func parseItem(v gjson.Result) (Item, error) {
	name := v.Get("kind").String()
	kind, ok := ParseItemKind(name)
	if !ok {
		return Item{}, fmt.Errorf("unknown item kind %q", name)
	}
	penalty := v.Get("penalty").Int()
	if penalty < 0 || penalty > MaxPriorWorkPenalty {
		return Item{}, fmt.Errorf("penalty %d outside 0..%d", penalty, MaxPriorWorkPenalty)
	}
	it := Item{Kind: kind, PriorWorkPenalty: int(penalty)}

	var err error
	v.Get("enchantments").ForEach(func(_, e gjson.Result) bool {
		var ench Enchantment
		if ench, err = parseEnchantment(e); err != nil {
			return false
		}
		if it.Enchantments.Has(ench.Kind) {
			err = fmt.Errorf("%s listed twice", ench.Kind)
			return false
		}
		if !ench.Kind.ApplicableTo().Has(kind) {
			err = fmt.Errorf("%s cannot be applied to %s", ench.Kind, kind)
			return false
		}
		for other, present := range ench.Kind.IncompatibleWith().All() {
			if present && it.Enchantments.Has(other) {
				err = fmt.Errorf("%s conflicts with %s", ench.Kind, other)
				return false
			}
		}
		it.Enchantments = it.Enchantments.Set(ench.Kind, ench.Level)
		return true
	})
	return it, err
}

func parseEnchantment(e gjson.Result) (Enchantment, error) {
	name := e.Get("kind").String()
	kind, ok := ParseEnchantmentKind(name)
	if !ok {
		return Enchantment{}, fmt.Errorf("unknown enchantment kind %q", name)
	}
	return NewEnchantment(kind, int(e.Get("level").Int()))
}
