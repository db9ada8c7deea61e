package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/simaogato/goldflow-backend/internal/app"
	"github.com/simaogato/goldflow-backend/internal/config"
	"github.com/simaogato/goldflow-backend/internal/domain"
	"github.com/simaogato/goldflow-backend/internal/logger"
	"github.com/simaogato/goldflow-backend/internal/usecase/comparison"
	"github.com/simaogato/goldflow-backend/internal/usecase/normalizer"
	"github.com/simaogato/goldflow-backend/internal/usecase/projection"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&compareCmd{}, "simulations")
	c.Register(&projectCmd{}, "simulations")
}

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	start    string
	end      string
	capital  float64
	monthly  float64
	rate     float64
	currency string
	series   bool
	raw      bool
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "compare buying gold with a deposit account over real prices"
}
func (*compareCmd) Usage() string {
	return `goldflow compare [-start <date>] [-end <date>] [-capital <amount>] [-monthly <amount>] [-rate <percent>]

  Buys gold with the initial capital on the first day and adds the monthly amount on the first
  trading day of every month, then compares it with the same money kept in a deposit account.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "2020-01-01", "First day of the simulation (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", time.Now().Format(time.DateOnly), "Last day of the simulation (YYYY-MM-DD)")
	f.Float64Var(&c.capital, "capital", 100000, "Initial capital")
	f.Float64Var(&c.monthly, "monthly", 5000, "Monthly contribution")
	f.Float64Var(&c.rate, "rate", 30, "Average annual deposit rate in percent")
	f.StringVar(&c.currency, "currency", "TRY", "Currency code used to display amounts")
	f.BoolVar(&c.series, "series", false, "Include the month by month table")
	f.BoolVar(&c.raw, "raw", false, "Print the Markdown report without terminal styling")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := time.Parse(time.DateOnly, c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := time.Parse(time.DateOnly, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer log.Sync()

	prices, cleanup, err := app.NewPriceProvider(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	input := comparison.CompareInput{
		Start:               start,
		End:                 end,
		InitialCapital:      c.capital,
		MonthlyContribution: c.monthly,
		AnnualRatePercent:   c.rate,
	}
	result, err := comparison.NewComparisonService(prices, log).Compare(ctx, input)
	if errors.Is(err, domain.ErrDataUnavailable) || errors.Is(err, domain.ErrEmptySeries) {
		fmt.Fprintln(os.Stderr, "No price data for the selected range.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running comparison: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	RenderComparison(&b, input, result, c.currency, c.series)
	if err := printMarkdown(os.Stdout, b.String(), c.raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	principal float64
	rate      float64
	rateBasis string
	flow      float64
	flowBasis string
	term      int
	termUnit  string
	currency  string
	raw       bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project a balance under continuous compounding" }
func (*projectCmd) Usage() string {
	return `goldflow project [-principal <amount>] [-rate <percent>] [-rate-basis monthly|annual]
                 [-flow <amount>] [-flow-basis monthly|annual] [-term <n>] [-term-unit months|years]

  Solves dS/dt = rS + k month by month. A negative flow models regular withdrawals.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 10000, "Initial principal")
	f.Float64Var(&c.rate, "rate", 8, "Interest rate in percent")
	f.StringVar(&c.rateBasis, "rate-basis", "annual", "Period of the rate: monthly or annual")
	f.Float64Var(&c.flow, "flow", 166, "Regular contribution (negative for withdrawals)")
	f.StringVar(&c.flowBasis, "flow-basis", "monthly", "Period of the flow: monthly or annual")
	f.IntVar(&c.term, "term", 40, "Length of the projection")
	f.StringVar(&c.termUnit, "term-unit", "years", "Unit of the term: months or years")
	f.StringVar(&c.currency, "currency", "USD", "Currency code used to display amounts")
	f.BoolVar(&c.raw, "raw", false, "Print the Markdown report without terminal styling")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input, err := c.input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer log.Sync()

	outcome, err := projection.NewProjectionService(log).Project(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running projection: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	RenderProjection(&b, input, outcome, c.currency)
	if err := printMarkdown(os.Stdout, b.String(), c.raw); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// input converts the flags into a projection input
func (c *projectCmd) input() (projection.ProjectInput, error) {
	rateBasis, err := normalizer.ParseBasis(c.rateBasis)
	if err != nil {
		return projection.ProjectInput{}, err
	}
	flowBasis, err := normalizer.ParseBasis(c.flowBasis)
	if err != nil {
		return projection.ProjectInput{}, err
	}
	termUnit, err := normalizer.ParseTermUnit(c.termUnit)
	if err != nil {
		return projection.ProjectInput{}, err
	}

	return projection.ProjectInput{
		InitialPrincipal: c.principal,
		Input: normalizer.Input{
			RatePercent: c.rate,
			RateBasis:   rateBasis,
			Flow:        c.flow,
			FlowBasis:   flowBasis,
			Term:        c.term,
			TermUnit:    termUnit,
		},
	}, nil
}

// setup loads the configuration and a logger that stays quiet unless something goes wrong
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	log, err := logger.New(level, cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
