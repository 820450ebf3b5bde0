package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "fleetops/internal/config"
	"fleetops/internal/domain"
	"fleetops/internal/services"
	"fleetops/internal/upstream"
	"fleetops/internal/utils"

	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	logger, err := intconfig.NewLogger(env.LogLevel, "console", "ledgerctl")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], env, logger, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Error("ledgerctl failed", zap.Error(err))
		os.Exit(1)
	}
}

type options struct {
	from, to, person, out string
	timeout               time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.from, "from", "", "first duty date, YYYY-MM-DD")
	fs.StringVar(&o.to, "to", "", "last duty date, YYYY-MM-DD")
	fs.StringVar(&o.person, "person", domain.ScopeAll, "person id or All")
	fs.StringVar(&o.out, "out", "", "write the ledger workbook to this .xlsx path")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall request timeout")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.from != "" && !utils.IsISODate(o.from) {
		return o, domain.Invalid("from", "must be YYYY-MM-DD")
	}
	if o.to != "" && !utils.IsISODate(o.to) {
		return o, domain.Invalid("to", "must be YYYY-MM-DD")
	}
	return o, nil
}

func run(ctx context.Context, args []string, env intconfig.Env, logger *zap.Logger, stdout io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	client, err := upstream.New(env.UpstreamBaseURL, env.UpstreamToken, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	r := domain.DateRange{From: o.from, To: o.to}
	duties, err := client.ListDuties(ctx, r)
	if err != nil {
		return fmt.Errorf("fetch duties: %w", err)
	}
	advances, err := client.ListAdvances(ctx, r)
	if err != nil {
		return fmt.Errorf("fetch advances: %w", err)
	}

	q := services.LedgerQuery{Range: r, Person: o.person}
	rep := services.BuildLedgerReport(duties, advances, q)

	fmt.Fprintf(stdout, "scope     %s\n", rep.Scope)
	fmt.Fprintf(stdout, "duties    %d\n", rep.DutyCount)
	fmt.Fprintf(stdout, "gross     %s\n", utils.FormatRupees(rep.Gross))
	fmt.Fprintf(stdout, "advances  %s\n", utils.FormatRupees(rep.Advances))
	fmt.Fprintf(stdout, "net       %s\n", utils.FormatRupees(rep.Net))

	if o.out == "" {
		return nil
	}
	views := make([]services.DutyView, 0, len(duties))
	for _, d := range services.ScopedDuties(duties, q) {
		views = append(views, services.NewDutyView(d))
	}
	data, err := services.LedgerWorkbook(rep, views)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	logger.Info("ledger workbook written", zap.String("path", o.out), zap.Int("people", len(rep.People)))
	return nil
}
