package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

var poolFiles = []string{"testdata/pickaxe.yaml", "testdata/sword.json"}

func loadTestPools(t *testing.T) []*Pool {
	t.Helper()
	pools := []*Pool{ExamplePool()}
	for _, path := range poolFiles {
		pool, err := LoadPool(path)
		if err != nil {
			t.Fatalf("LoadPool: %v", err)
		}
		pools = append(pools, pool)
	}
	return pools
}

// verifyBranch runs the 6-point checklist against a merge plan for items.
func verifyBranch(t *testing.T, items []Item, b Branch) {
	t.Helper()

	// 1. n items take n-1 merges
	if len(b.Steps) != len(items)-1 {
		t.Fatalf("%d steps for %d items", len(b.Steps), len(items))
	}

	// 2. total cost is the sum of step costs
	sum := 0
	for _, s := range b.Steps {
		sum += s.Cost
	}
	if sum != b.TotalCost {
		t.Errorf("total cost %d, steps sum to %d", b.TotalCost, sum)
	}

	available := append([]Item(nil), items...)
	take := func(it Item) bool {
		for i, a := range available {
			if a == it {
				available = append(available[:i], available[i+1:]...)
				return true
			}
		}
		return false
	}

	for i, s := range b.Steps {
		prefix := fmt.Sprintf("step %d", i+1)

		// 3. operands exist when the step runs, and each is used once
		if !take(s.Target) {
			t.Errorf("%s: target %s not available", prefix, FormatItem(s.Target))
		}
		if !take(s.Sacrifice) {
			t.Errorf("%s: sacrifice %s not available", prefix, FormatItem(s.Sacrifice))
		}

		// 4. the recorded step is exactly what the anvil does
		want, err := Combine(s.Target, s.Sacrifice)
		if err != nil {
			t.Errorf("%s: %v", prefix, err)
			continue
		}
		if want != s {
			t.Errorf("%s: recorded %+v, recomputed %+v", prefix, s, want)
		}
		available = append(available, s.Result)
	}

	// 5. exactly the final item remains
	if len(items) == 1 {
		return
	}
	final, _ := b.Result()
	if len(available) != 1 || available[0] != final {
		t.Errorf("%d items left after the plan", len(available))
	}

	// 6. the final kind is the pool's non-book kind
	wantKind := Book
	for _, it := range items {
		if it.Kind != Book {
			wantKind = it.Kind
			break
		}
	}
	if final.Kind != wantKind {
		t.Errorf("final kind %s, want %s", final.Kind, wantKind)
	}
}

// verifyCoverage checks that, in a pool without exclusions, every
// enchantment that fits the final item ends up on it.
func verifyCoverage(t *testing.T, items []Item, final Item) {
	t.Helper()
	for _, it := range items {
		for e := range it.Enchantments.Contained() {
			if !e.Kind.ApplicableTo().Has(final.Kind) {
				continue
			}
			if got := final.Enchantments.Level(e.Kind); got < e.Level {
				t.Errorf("%s: final level %d, pool has %d", e.Kind, got, e.Level)
			}
		}
	}
}

// foldCost merges every item into the first, in pool order.
func foldCost(t *testing.T, items []Item) int {
	t.Helper()
	acc, cost := items[0], 0
	for _, it := range items[1:] {
		s, err := Combine(acc, it)
		if err != nil {
			t.Fatalf("fold: %v", err)
		}
		acc, cost = s.Result, cost+s.Cost
	}
	return cost
}

func TestOptimizePools(t *testing.T) {
	for _, pool := range loadTestPools(t) {
		t.Run(pool.Name, func(t *testing.T) {
			best := map[Strategy]Result{}
			for _, strategy := range []Strategy{StrategyLazy, StrategyEager} {
				cfg := DefaultConfig()
				cfg.Strategy = strategy
				cfg.Verbose = true
				opt := NewOptimizer(pool.Items, cfg)
				opt.log = io.Discard

				res, err := opt.Optimize(context.Background())
				if err != nil {
					t.Fatalf("%s: %v", strategy, err)
				}
				t.Logf("%s/%s: best=%d candidates=%d elapsed=%v",
					pool.Name, strategy, res.Best.TotalCost, res.Candidates, res.Elapsed)

				if res.Candidates != planCount(len(pool.Items)) {
					t.Errorf("%s: %d candidates, want %d", strategy, res.Candidates, planCount(len(pool.Items)))
				}
				verifyBranch(t, pool.Items, res.Best)
				final, _ := res.Best.Result()
				verifyCoverage(t, pool.Items, final)
				best[strategy] = res
			}

			lazy, eager := best[StrategyLazy], best[StrategyEager]
			if lazy.Best.TotalCost != eager.Best.TotalCost {
				t.Errorf("lazy best %d, eager best %d", lazy.Best.TotalCost, eager.Best.TotalCost)
			}
			if eager.Cache.Hits == 0 {
				t.Errorf("eager cache never hit: %+v", eager.Cache)
			}
			if fold := foldCost(t, pool.Items); lazy.Best.TotalCost > fold {
				t.Errorf("best %d is worse than folding in order (%d)", lazy.Best.TotalCost, fold)
			}
		})
	}
}

func TestOptimizeTwoPickaxes(t *testing.T) {
	items := []Item{
		item(Pickaxe, 0, Enchantment{Unbreaking, 3}),
		item(Pickaxe, 0, Enchantment{Efficiency, 5}),
	}
	opt := NewOptimizer(items, DefaultConfig())
	opt.log = io.Discard
	res, err := opt.Optimize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Best.TotalCost != 5 || res.Candidates != 1 {
		t.Errorf("best=%d candidates=%d, want 5 and 1", res.Best.TotalCost, res.Candidates)
	}
	final, _ := res.Best.Result()
	if final.PriorWorkPenalty != 1 {
		t.Errorf("final penalty %d, want 1", final.PriorWorkPenalty)
	}
}

func TestOptimizeIncompatiblePool(t *testing.T) {
	items := []Item{item(Sword, 0), item(Book, 0, Enchantment{Sharpness, 1}), item(Trident, 0)}
	for _, strategy := range []Strategy{StrategyLazy, StrategyEager} {
		cfg := DefaultConfig()
		cfg.Strategy = strategy
		opt := NewOptimizer(items, cfg)
		opt.log = io.Discard
		_, err := opt.Optimize(context.Background())
		var incompatible *IncompatibleItemsError
		if !errors.As(err, &incompatible) {
			t.Errorf("%s: err = %v, want IncompatibleItemsError", strategy, err)
		}
	}
}

func TestOptimizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opt := NewOptimizer(ExamplePool().Items, DefaultConfig())
	opt.log = io.Discard
	if _, err := opt.Optimize(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOptimizerLogs(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultConfig()
	cfg.Verbose = true
	cfg.ProgressEvery = 100
	opt := NewOptimizer(ExamplePool().Items, cfg)
	opt.log = &sb
	if _, err := opt.Optimize(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[init] items=6, strategy=lazy, plans=945", "[verbose/lazy]", "[search] 900 candidates", "[done] best="} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("log missing %q:\n%s", want, sb.String())
		}
	}
}

func TestPlanCount(t *testing.T) {
	want := []int{1, 1, 1, 3, 15, 105, 945, 10395, 135135, 2027025, 34459425}
	for n := 1; n <= MaxItems; n++ {
		if got := planCount(n); got != want[n] {
			t.Errorf("planCount(%d) = %d, want %d", n, got, want[n])
		}
	}
	if got := formatCount(planCount(MaxItems)); got != "34,459,425" {
		t.Errorf("formatCount = %q", got)
	}
}

func TestFormatBranch(t *testing.T) {
	items := []Item{
		item(Pickaxe, 0, Enchantment{Unbreaking, 3}),
		item(Pickaxe, 0, Enchantment{Efficiency, 5}),
	}
	b, err := branchOfTwo(items[0], items[1])
	if err != nil {
		t.Fatal(err)
	}
	want := "Total cost 5 over 1 step(s)\n" +
		"Step 1 (cost 5):\n" +
		"\tPickaxe (pwp 0): Unbreaking III\n" +
		"\t+ Pickaxe (pwp 0): Efficiency V\n" +
		"\t= Pickaxe (pwp 1): Unbreaking III, Efficiency V\n"
	if got := FormatBranch(b); got != want {
		t.Errorf("FormatBranch:\n%s\nwant:\n%s", got, want)
	}

	raw, err := json.Marshal(ToBranchJSON(b))
	if err != nil {
		t.Fatal(err)
	}
	var back struct {
		TotalCost int `json:"totalCost"`
		Steps     []struct {
			Cost   int `json:"cost"`
			Result struct {
				Kind         string `json:"kind"`
				Penalty      int    `json:"penalty"`
				Enchantments []struct {
					Kind  string `json:"kind"`
					Level int    `json:"level"`
				} `json:"enchantments"`
			} `json:"result"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back.TotalCost != 5 || len(back.Steps) != 1 || back.Steps[0].Result.Kind != "Pickaxe" ||
		len(back.Steps[0].Result.Enchantments) != 2 || back.Steps[0].Result.Penalty != 1 {
		t.Errorf("json = %s", raw)
	}
	if empty, _ := json.Marshal(ToBranchJSON(Branch{})); !strings.Contains(string(empty), `"steps":[]`) {
		t.Errorf("empty branch json = %s", empty)
	}
}
