package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatCount groups digits: 34459425 -> "34,459,425".
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

var romanLevels = [...]string{"", "I", "II", "III", "IV", "V", "VI", "VII"}

func romanLevel(level int) string {
	if level < 0 || level >= len(romanLevels) {
		return fmt.Sprint(level)
	}
	return romanLevels[level]
}

// FormatEnchantment renders "Efficiency V".
func FormatEnchantment(e Enchantment) string {
	return e.Kind.String() + " " + romanLevel(e.Level)
}

// FormatItem renders an item with its penalty and enchantments.
func FormatItem(it Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (pwp %d)", it.Kind, it.PriorWorkPenalty)
	parts := make([]string, 0, it.Enchantments.Size())
	for e := range it.Enchantments.Contained() {
		parts = append(parts, FormatEnchantment(e))
	}
	if len(parts) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}

// FormatStep renders one merge on four lines.
func FormatStep(i int, s Step) string {
	return fmt.Sprintf("Step %d (cost %d):\n\t%s\n\t+ %s\n\t= %s\n",
		i+1, s.Cost, FormatItem(s.Target), FormatItem(s.Sacrifice), FormatItem(s.Result))
}

// FormatBranch produces the text report for a merge plan.
func FormatBranch(b Branch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total cost %d over %d step(s)\n", b.TotalCost, len(b.Steps))
	for i, s := range b.Steps {
		sb.WriteString(FormatStep(i, s))
	}
	return sb.String()
}

// ── JSON view ───────────────────────────────────────────────────────

type enchantmentJSON struct {
	Kind  string `json:"kind"`
	Level int    `json:"level"`
}

type itemJSON struct {
	Kind         string            `json:"kind"`
	Penalty      int               `json:"penalty"`
	Enchantments []enchantmentJSON `json:"enchantments"`
}

type stepJSON struct {
	Target    itemJSON `json:"target"`
	Sacrifice itemJSON `json:"sacrifice"`
	Result    itemJSON `json:"result"`
	Cost      int      `json:"cost"`
}

// BranchJSON is the serializable form of a Branch.
type BranchJSON struct {
	TotalCost int        `json:"totalCost"`
	Steps     []stepJSON `json:"steps"`
}

func toItemJSON(it Item) itemJSON {
	out := itemJSON{
		Kind:         it.Kind.String(),
		Penalty:      it.PriorWorkPenalty,
		Enchantments: []enchantmentJSON{},
	}
	for e := range it.Enchantments.Contained() {
		out.Enchantments = append(out.Enchantments, enchantmentJSON{Kind: e.Kind.String(), Level: e.Level})
	}
	return out
}

// ToBranchJSON converts b for encoding/json.
func ToBranchJSON(b Branch) BranchJSON {
	out := BranchJSON{TotalCost: b.TotalCost, Steps: make([]stepJSON, len(b.Steps))}
	for i, s := range b.Steps {
		out.Steps[i] = stepJSON{
			Target:    toItemJSON(s.Target),
			Sacrifice: toItemJSON(s.Sacrifice),
			Result:    toItemJSON(s.Result),
			Cost:      s.Cost,
		}
	}
	return out
}
