// Command simulate smoke-tests a running faceoff server: it seeds a sample
// collection, plays random duels, and verifies the resulting rankings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/faceoff/internal/simulate"
)

func main() {
	var opts simulate.Options
	flag.StringVar(&opts.BaseURL, "url", "http://localhost:9090", "server base URL")
	flag.StringVar(&opts.Scope, "scope", "sim-user", "user scope to exercise")
	flag.IntVar(&opts.Items, "items", 12, "items to seed")
	flag.IntVar(&opts.Comparisons, "comparisons", 60, "comparisons to play")
	flag.Float64Var(&opts.DrawRate, "draw-rate", 0.1, "fraction of comparisons resolved as draws")
	flag.Int64Var(&opts.Seed, "seed", 0, "rand seed (0 = time-based)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := simulate.NewRunner(opts).Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulation failed:", err)
		os.Exit(1)
	}
	if err := report.Verify(); err != nil {
		fmt.Fprintln(os.Stderr, "verification failed:", err)
		os.Exit(1)
	}

	fmt.Printf("ok: %d items, %d comparisons, top rating %.1f\n",
		len(report.ItemsSeeded), report.ComparisonsPlayed, report.Rankings[0].Item.Rating)
}
