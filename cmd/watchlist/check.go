package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"StockWatch/internal/app"
	"StockWatch/internal/watchlist"

	"github.com/google/subcommands"
)

// checkCmd validates ticker symbols against the data provider.
type checkCmd struct {
	out io.Writer
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check that tickers resolve to a live instrument" }
func (*checkCmd) Usage() string {
	return `watchlist check SYM [SYM...]

  Looks up each symbol and reports whether it has a live market price.
`
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	v := watchlist.NewValidator(app.NewFetcher(cfg), cfg.DataSource.Timeout)

	status := subcommands.ExitSuccess
	for _, arg := range f.Args() {
		res := v.Validate(ctx, arg)
		if res.OK {
			fmt.Fprintf(out, "%s: ok\n", res.Normalized)
			continue
		}
		fmt.Fprintf(out, "%s: could not validate ticker\n", res.Normalized)
		status = subcommands.ExitFailure
	}
	return status
}
