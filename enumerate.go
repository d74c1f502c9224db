package main

import (
	"fmt"
	"iter"
)

// ── Shared recursion pieces ─────────────────────────────────────────

func checkCount(n int, table *TopologyTable) error {
	if n < 1 || n > table.MaxItems() {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrItemCount, n, table.MaxItems())
	}
	return nil
}

// joinBranches appends the combining step after every step of left and
// right, in that order, so each step's operands exist before it runs.
func joinBranches(left, right, last Branch) Branch {
	steps := make([]Step, 0, len(left.Steps)+len(right.Steps)+len(last.Steps))
	steps = append(steps, left.Steps...)
	steps = append(steps, right.Steps...)
	steps = append(steps, last.Steps...)
	return Branch{
		Steps:     steps,
		TotalCost: left.TotalCost + right.TotalCost + last.TotalCost,
	}
}

func pick(items []Item, idx []int) []Item {
	out := make([]Item, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// ── Eager enumeration with merge cache ──────────────────────────────

type pairKey struct {
	target, sacrifice int
}

// combineCache memoizes merges of two untouched source items, keyed by
// their positions in the source pool. Merged results are never keys.
type combineCache struct {
	steps  map[pairKey]Step
	hits   int
	misses int
}

func newCombineCache() *combineCache {
	return &combineCache{steps: make(map[pairKey]Step)}
}

// operand is an item plus its source pool position, or -1 once merged.
type operand struct {
	item Item
	src  int
}

func (c *combineCache) combine(target, sacrifice operand) (Step, error) {
	if target.src < 0 || sacrifice.src < 0 {
		return Combine(target.item, sacrifice.item)
	}
	key := pairKey{target.src, sacrifice.src}
	if cached, ok := c.steps[key]; ok {
		c.hits++
		// The penalty term is additive, so re-base it on the current operands.
		step := cached
		step.Target = target.item
		step.Sacrifice = sacrifice.item
		step.Cost = cached.Cost -
			cached.Target.PriorWorkPenalty - cached.Sacrifice.PriorWorkPenalty +
			target.item.PriorWorkPenalty + sacrifice.item.PriorWorkPenalty
		return step, nil
	}
	c.misses++
	step, err := Combine(target.item, sacrifice.item)
	if err != nil {
		return Step{}, err
	}
	c.steps[key] = step
	return step, nil
}

func (c *combineCache) branchOfTwo(a, b operand) (Branch, error) {
	forward, ferr := c.combine(a, b)
	backward, berr := c.combine(b, a)
	return chooseDirection(forward, ferr, backward, berr)
}

type eagerEnumerator struct {
	pool  []Item
	table *TopologyTable
	cache *combineCache
}

// generate materializes every branch over the pool positions in idx.
func (e *eagerEnumerator) generate(idx []int) ([]Branch, error) {
	switch len(idx) {
	case 1:
		return []Branch{{}}, nil
	case 2:
		b, err := e.cache.branchOfTwo(e.leaf(idx[0]), e.leaf(idx[1]))
		if err != nil {
			return nil, err
		}
		return []Branch{b}, nil
	}

	var branches []Branch
	for _, topo := range e.table.For(len(idx)) {
		leftIdx := pickIndices(idx, topo.Left)
		rightIdx := pickIndices(idx, topo.Right)

		lefts, err := e.generate(leftIdx)
		if err != nil {
			return nil, err
		}
		rights, err := e.generate(rightIdx)
		if err != nil {
			return nil, err
		}

		for _, lb := range lefts {
			first := e.resultOf(lb, leftIdx)
			for _, rb := range rights {
				second := e.resultOf(rb, rightIdx)
				last, err := e.cache.branchOfTwo(first, second)
				if err != nil {
					return nil, err
				}
				branches = append(branches, joinBranches(lb, rb, last))
			}
		}
	}
	return branches, nil
}

func (e *eagerEnumerator) leaf(src int) operand {
	return operand{item: e.pool[src], src: src}
}

// resultOf is the single source item for an empty branch, otherwise the
// product of its last step.
func (e *eagerEnumerator) resultOf(b Branch, idx []int) operand {
	if it, ok := b.Result(); ok {
		return operand{item: it, src: -1}
	}
	return e.leaf(idx[0])
}

func pickIndices(idx, positions []int) []int {
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = idx[p]
	}
	return out
}

// EagerBranches materializes every merge plan for items. Only practical for
// small pools: the count is (2n-3)!! branches.
func EagerBranches(items []Item, table *TopologyTable) ([]Branch, CacheStats, error) {
	if err := checkCount(len(items), table); err != nil {
		return nil, CacheStats{}, err
	}
	e := &eagerEnumerator{pool: items, table: table, cache: newCombineCache()}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	branches, err := e.generate(idx)
	stats := CacheStats{Hits: e.cache.hits, Misses: e.cache.misses, Entries: len(e.cache.steps)}
	if err != nil {
		return nil, stats, err
	}
	return branches, stats, nil
}

// CacheStats reports how the eager merge cache performed.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// ── Lazy enumeration ────────────────────────────────────────────────

// LazyBranches yields merge plans one at a time in the same order as
// EagerBranches. Nothing is held beyond the current path through the
// recursion. An error is yielded once and ends the sequence; breaking out
// of the loop stops the search.
func LazyBranches(items []Item, table *TopologyTable) iter.Seq2[Branch, error] {
	return func(yield func(Branch, error) bool) {
		if err := checkCount(len(items), table); err != nil {
			yield(Branch{}, err)
			return
		}
		lazyWalk(items, table, yield)
	}
}

// lazyWalk feeds every branch over items to yield and reports whether the
// consumer wants more.
func lazyWalk(items []Item, table *TopologyTable, yield func(Branch, error) bool) bool {
	switch len(items) {
	case 1:
		return yield(Branch{}, nil)
	case 2:
		b, err := branchOfTwo(items[0], items[1])
		if err != nil {
			yield(Branch{}, err)
			return false
		}
		return yield(b, nil)
	}

	for _, topo := range table.For(len(items)) {
		left := pick(items, topo.Left)
		right := pick(items, topo.Right)

		more := lazyWalk(left, table, func(lb Branch, err error) bool {
			if err != nil {
				yield(Branch{}, err)
				return false
			}
			first := resultOrSingle(lb, left)
			return lazyWalk(right, table, func(rb Branch, err error) bool {
				if err != nil {
					yield(Branch{}, err)
					return false
				}
				last, err := branchOfTwo(first, resultOrSingle(rb, right))
				if err != nil {
					yield(Branch{}, err)
					return false
				}
				return yield(joinBranches(lb, rb, last), nil)
			})
		})
		if !more {
			return false
		}
	}
	return true
}

func resultOrSingle(b Branch, items []Item) Item {
	if it, ok := b.Result(); ok {
		return it
	}
	return items[0]
}

// ── Best-branch selection ───────────────────────────────────────────

// BestBranch returns the cheapest branch; the first one wins ties.
func BestBranch(branches []Branch) (Branch, bool) {
	if len(branches) == 0 {
		return Branch{}, false
	}
	best := branches[0]
	for _, b := range branches[1:] {
		if b.TotalCost < best.TotalCost {
			best = b
		}
	}
	return best, true
}

// BestOf drains seq and returns its cheapest branch. It stops at the first
// error.
func BestOf(seq iter.Seq2[Branch, error]) (Branch, bool, error) {
	var best Branch
	found := false
	for b, err := range seq {
		if err != nil {
			return Branch{}, false, err
		}
		if !found || b.TotalCost < best.TotalCost {
			best = b
			found = true
		}
	}
	return best, found, nil
}
