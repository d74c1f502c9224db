package main

// ── Merge engine ────────────────────────────────────────────────────

// Combine merges sacrifice into target and returns the resulting step.
//
// Any item accepts a book as sacrifice; otherwise both kinds must match.
// The sacrifice's enchantments are applied in catalog order. Enchantments
// that cannot exist on the target's kind are skipped. The first
// sacrifice enchantment that clashes with one already on the target costs
// a flat 1 and ends the transfer: later sacrifice enchantments are not
// applied at all.
func Combine(target, sacrifice Item) (Step, error) {
	if target.Kind != sacrifice.Kind && sacrifice.Kind != Book {
		return Step{}, &IncompatibleItemsError{Target: target.Kind, Sacrifice: sacrifice.Kind}
	}

	result := Item{
		Enchantments:     target.Enchantments,
		PriorWorkPenalty: 2*max(target.PriorWorkPenalty, sacrifice.PriorWorkPenalty) + 1,
		Kind:             target.Kind,
	}
	cost := target.PriorWorkPenalty + sacrifice.PriorWorkPenalty

transfer:
	for se := range sacrifice.Enchantments.Contained() {
		if !se.Kind.ApplicableTo().Has(target.Kind) {
			continue
		}

		incompatible := se.Kind.IncompatibleWith()
		matched := 0
		for te := range target.Enchantments.Contained() {
			if incompatible.Has(te.Kind) {
				cost++
				break transfer
			}
			if te.Kind == se.Kind {
				matched = te.Level
				break
			}
		}

		level := se.Level
		if matched > 0 {
			level = upgradedLevel(se.Kind, matched, se.Level)
		}
		cost += level * se.Kind.Multiplier(sacrifice.Kind)
		result.Enchantments = result.Enchantments.Set(se.Kind, level)
	}

	return Step{
		Target:    target,
		Sacrifice: sacrifice,
		Result:    result,
		Cost:      cost,
	}, nil
}

// upgradedLevel combines two levels of the same enchantment: a higher
// sacrifice level wins, equal levels bump by one up to the kind's max.
func upgradedLevel(kind EnchantmentKind, targetLevel, sacrificeLevel int) int {
	switch {
	case sacrificeLevel > targetLevel:
		return sacrificeLevel
	case sacrificeLevel == targetLevel && targetLevel < kind.MaxLevel():
		return targetLevel + 1
	default:
		return targetLevel
	}
}

// branchOfTwo merges a and b in whichever direction is cheaper. Ties keep
// a as the target. When neither direction is legal the a-into-b error is
// returned.
func branchOfTwo(a, b Item) (Branch, error) {
	forward, ferr := Combine(a, b)
	backward, berr := Combine(b, a)
	return chooseDirection(forward, ferr, backward, berr)
}

func chooseDirection(forward Step, ferr error, backward Step, berr error) (Branch, error) {
	var best Step
	switch {
	case ferr == nil && berr == nil:
		best = forward
		if backward.Cost < forward.Cost {
			best = backward
		}
	case ferr == nil:
		best = forward
	case berr == nil:
		best = backward
	default:
		return Branch{}, ferr
	}
	return Branch{Steps: []Step{best}, TotalCost: best.Cost}, nil
}
