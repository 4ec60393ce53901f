package dashboard

import (
	"fmt"
	"io"
	"text/tabwriter"
)

var tableHeader = "Ticker\tName\tPrice\tSector\tVolume\tMarket Cap\tReturn 1D (%)\tReturn 3D (%)\t"

// WriteTable renders the view as an aligned plain-text table followed by
// one warning line per failed ticker.
func WriteTable(w io.Writer, v *View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, tableHeader)
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t\n",
			r.Ticker, r.Name, r.Price, r.Sector, r.Volume, r.MarketCap, r.Return1D, r.Return3D)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, f := range v.Failures {
		if _, err := fmt.Fprintf(w, "warning: could not fetch data for %s: %s\n", f.Ticker, f.Reason); err != nil {
			return err
		}
	}
	src := "fresh"
	if v.Cached {
		src = "cached"
	}
	_, err := fmt.Fprintf(w, "%d tickers, period %s, %s at %s\n",
		len(v.Rows), v.Period, src, v.FetchedAt.Format("2006-01-02 15:04:05"))
	return err
}
