package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer finds the cheapest merge plan for one pool of items.
type Optimizer struct {
	items []Item
	cfg   Config
	table *TopologyTable
	log   io.Writer
}

// Result is the outcome of one search.
type Result struct {
	Best       Branch
	Candidates int
	Cache      CacheStats // eager strategy only
	Elapsed    time.Duration
}

// NewOptimizer creates an optimizer over items using the shared topology table.
func NewOptimizer(items []Item, cfg Config) *Optimizer {
	return &Optimizer{
		items: items,
		cfg:   cfg,
		table: topologies,
		log:   logw(),
	}
}

// Optimize runs the configured search. The lazy strategy checks ctx between
// branches and returns ctx.Err() once it is done; the eager strategy always
// runs to completion.
func (o *Optimizer) Optimize(ctx context.Context) (Result, error) {
	start := time.Now()
	n := len(o.items)
	fmt.Fprintf(o.log, "[init] items=%d, strategy=%s, plans=%s\n", n, o.cfg.Strategy, formatCount(planCount(n)))

	var (
		res Result
		err error
	)
	switch o.cfg.Strategy {
	case StrategyEager:
		res, err = o.optimizeEager()
	default:
		res, err = o.optimizeLazy(ctx)
	}
	res.Elapsed = time.Since(start)
	if err != nil {
		fmt.Fprintf(o.log, "[done] failed after %d candidates: %v\n", res.Candidates, err)
		return res, err
	}

	fmt.Fprintf(o.log, "[done] best=%d, candidates=%s, elapsed=%v\n",
		res.Best.TotalCost, formatCount(res.Candidates), res.Elapsed)
	return res, nil
}

func (o *Optimizer) optimizeEager() (Result, error) {
	branches, stats, err := EagerBranches(o.items, o.table)
	res := Result{Candidates: len(branches), Cache: stats}
	if err != nil {
		return res, err
	}
	if o.cfg.Verbose {
		fmt.Fprintf(o.log, "[verbose/eager] cache hits=%d misses=%d entries=%d\n",
			stats.Hits, stats.Misses, stats.Entries)
	}
	best, ok := BestBranch(branches)
	if !ok {
		return res, errors.New("no merge plan found")
	}
	res.Best = best
	return res, nil
}

func (o *Optimizer) optimizeLazy(ctx context.Context) (Result, error) {
	var res Result
	found := false
	for b, err := range LazyBranches(o.items, o.table) {
		if err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Candidates++
		if !found || b.TotalCost < res.Best.TotalCost {
			res.Best = b
			found = true
			if o.cfg.Verbose {
				fmt.Fprintf(o.log, "[verbose/lazy] candidate #%d improves best to %d\n", res.Candidates, b.TotalCost)
			}
		}
		if o.cfg.Verbose && o.cfg.ProgressEvery > 0 && res.Candidates%o.cfg.ProgressEvery == 0 {
			fmt.Fprintf(o.log, "[search] %s candidates, best=%d\n", formatCount(res.Candidates), res.Best.TotalCost)
		}
	}
	if !found {
		return res, errors.New("no merge plan found")
	}
	return res, nil
}

// planCount is the number of distinct plans for n items: (2n-3)!!.
func planCount(n int) int {
	c := 1
	for k := 3; k <= 2*n-3; k += 2 {
		c *= k
	}
	return c
}

func logw() io.Writer { return os.Stderr }
