package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"

	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/usecase/comparison"
	"github.com/simaogato/goldflow-backend/internal/usecase/projection"
)

// formatMoney renders an amount in the currency's own format, e.g. ₺100.000,00 or $1,992.00
func formatMoney(amount float64, currency string) string {
	return money.NewFromFloat(amount, currency).Display()
}

// RenderComparison writes the gold vs deposit report as Markdown
func RenderComparison(w io.Writer, in comparison.CompareInput, r *domain.AccumulationResult, currency string, withSeries bool) {
	s := r.Summary()

	fmt.Fprintf(w, "# Gold vs Deposit, %s to %s\n\n", in.Start.Format(time.DateOnly), in.End.Format(time.DateOnly))
	fmt.Fprintf(w, "Initial capital %s, monthly contribution %s, average deposit rate %.2f%% a year.\n\n",
		formatMoney(in.InitialCapital, currency), formatMoney(in.MonthlyContribution, currency), in.AnnualRatePercent)

	fmt.Fprintln(w, "| | Value | Return |")
	fmt.Fprintln(w, "|---|---:|---:|")
	fmt.Fprintf(w, "| Contributed | %s | |\n", formatMoney(r.FinalContributed, currency))
	fmt.Fprintf(w, "| Deposit | %s | %.1f%% |\n", formatMoney(r.FinalCashValue, currency), s.CashReturnPercent)
	fmt.Fprintf(w, "| Gold | %s | %.1f%% |\n\n", formatMoney(r.FinalAssetValue, currency), s.AssetReturnPercent)

	if r.Winner == domain.TrackGold {
		fmt.Fprintf(w, "**Gold** did better over this period, by **%s**.\n\n", formatMoney(s.Difference, currency))
	} else {
		fmt.Fprintf(w, "The **deposit** did better over this period, by **%s**.\n\n", formatMoney(s.Difference, currency))
	}
	fmt.Fprintf(w, "Last gram price: %s.\n", formatMoney(r.LastCompositePrice, currency))

	if !withSeries {
		return
	}

	// One row per month: the last recorded day of each month
	fmt.Fprintln(w, "\n## Month by month")
	fmt.Fprintln(w, "\n| Date | Gold | Deposit | Contributed |")
	fmt.Fprintln(w, "|---|---:|---:|---:|")
	for i, e := range r.Entries {
		if i+1 < len(r.Entries) && r.Entries[i+1].Date.Month() == e.Date.Month() {
			continue
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n", e.Date.Format(time.DateOnly),
			formatMoney(e.AssetValue, currency), formatMoney(e.CashValue, currency), formatMoney(e.CumulativeContributed, currency))
	}
}

// RenderProjection writes the continuous compounding report as Markdown
// The table lists every twelfth month plus the final month
func RenderProjection(w io.Writer, in projection.ProjectInput, o *projection.Outcome, currency string) {
	n := o.Normalized
	r := o.Result

	fmt.Fprintln(w, "# Continuous compounding, dS/dt = rS + k")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Monthly rate: %.4f%% (annual %.2f%%)\n", n.MonthlyRate*100, n.AnnualRatePercent)
	fmt.Fprintf(w, "- Monthly flow: %s (annual %s)\n", formatMoney(n.MonthlyFlow, currency), formatMoney(n.AnnualFlow, currency))
	fmt.Fprintf(w, "- Horizon: %d months\n\n", n.HorizonMonths)

	fmt.Fprintln(w, "| | Amount |")
	fmt.Fprintln(w, "|---|---:|")
	fmt.Fprintf(w, "| Final balance | %s |\n", formatMoney(r.FinalBalance, currency))
	fmt.Fprintf(w, "| Contributed | %s |\n", formatMoney(r.TotalContributed, currency))
	fmt.Fprintf(w, "| Interest earned | %s |\n\n", formatMoney(r.NetGain, currency))

	fmt.Fprintln(w, "| Month | Balance | Contributed |")
	fmt.Fprintln(w, "|---:|---:|---:|")
	for _, p := range r.Points {
		if p.Month%12 != 0 && p.Month != n.HorizonMonths {
			continue
		}
		fmt.Fprintf(w, "| %d | %s | %s |\n", p.Month, formatMoney(p.Balance, currency), formatMoney(p.Contributed, currency))
	}
}

// printMarkdown renders md for the terminal, or writes it unchanged when raw is set
func printMarkdown(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.TrimLeft(out, "\n"))
	return err
}
