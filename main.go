//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

// RunOutput is the JSON-serializable result of one run.
type RunOutput struct {
	Pool       string     `json:"pool"`
	Items      int        `json:"items"`
	Strategy   Strategy   `json:"strategy"`
	Candidates int        `json:"candidates"`
	TimeMs     int64      `json:"timeMs"`
	Best       BranchJSON `json:"best"`
}

const usage = `Usage: anvil-optimizer [flags] [pool.json|pool.yaml]

Positional arguments:
  pool   Path to an item pool (JSON or YAML). Omitted = built-in example.

Environment:
  ANVIL_STRATEGY        lazy (default) or eager
  ANVIL_VERBOSE         print detailed search progress to stderr
  ANVIL_PROGRESS_EVERY  verbose progress interval in branches

Flags:
`

func main() {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	jsonOut := flag.Bool("json", false, "Output the best plan as JSON")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print detailed search progress to stderr")
	flag.Var(&cfg.Strategy, "strategy", "Enumeration strategy: lazy or eager")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		os.Exit(1)
	}

	pool := ExamplePool()
	if len(args) == 1 {
		pool, err = LoadPool(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "Loaded pool %q with %d items (catalog %s)\n", pool.Name, len(pool.Items), catalog.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := NewOptimizer(pool.Items, cfg).Optimize(ctx)
	if err != nil {
		var incompatible *IncompatibleItemsError
		if errors.As(err, &incompatible) {
			fmt.Fprintf(os.Stderr, "error: pool cannot be merged into one item: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}

	if *jsonOut {
		out := RunOutput{
			Pool:       pool.Name,
			Items:      len(pool.Items),
			Strategy:   cfg.Strategy,
			Candidates: res.Candidates,
			TimeMs:     res.Elapsed.Milliseconds(),
			Best:       ToBranchJSON(res.Best),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}
	fmt.Print(FormatBranch(res.Best))
}
