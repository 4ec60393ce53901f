package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"StockWatch/internal/app"
	"StockWatch/internal/dashboard"
	"StockWatch/internal/model"

	"github.com/google/subcommands"
)

// showCmd refreshes the watchlist once and prints it.
type showCmd struct {
	tickers string
	period  string

	out io.Writer
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the watchlist overview" }
func (*showCmd) Usage() string {
	return `watchlist show [-tickers AAPL,MSFT] [-period 5d]

  Fetches every ticker, prints the overview table and a warning for each
  ticker that could not be fetched.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickers, "tickers", "", "Comma separated tickers. Defaults to the configured watchlist.")
	f.StringVar(&c.period, "period", "", "Lookback period: 1d, 5d, 1mo, 3mo, 6mo or 1y.")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.period != "" {
		if !model.Period(c.period).Valid() {
			fmt.Fprintf(os.Stderr, "Error: unsupported period %q\n", c.period)
			return subcommands.ExitUsageError
		}
		cfg.DataSource.Period = c.period
	}
	if c.tickers != "" {
		cfg.Watchlist.Seed = strings.Split(c.tickers, ",")
	}

	svc, cc := app.NewService(ctx, cfg)
	defer cc.Close()

	v, err := svc.Refresh(ctx, app.NewSession(cfg))
	var eb *dashboard.EmptyBatchError
	switch {
	case errors.Is(err, dashboard.ErrEmptyWatchlist):
		fmt.Fprintln(out, "Your watchlist is empty. Pass some tickers with -tickers.")
		return subcommands.ExitSuccess
	case errors.As(err, &eb):
		for _, f := range eb.Failures {
			fmt.Fprintf(out, "warning: could not fetch data for %s: %s\n", f.Ticker, f.Reason)
		}
		fmt.Fprintln(out, "Could not fetch data for any tickers in your watchlist. Please try again later.")
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error refreshing watchlist: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := dashboard.WriteTable(out, v); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing table: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
