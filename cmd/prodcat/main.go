// Command prodcat runs a concurrent workload against an in-memory product
// catalog and prints a report.
//
// Usage:
//
//	prodcat [-config prodcat.yaml] [-strategy phased] [-capacity 10000] [-duration 10s] [-metrics]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/prodcat"
	"github.com/hupe1980/prodcat/internal/config"
	"github.com/hupe1980/prodcat/internal/workload"
	"github.com/hupe1980/prodcat/promcollector"
	"github.com/hupe1980/prodcat/textgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "prodcat:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("prodcat", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	strategy := fs.String("strategy", "", "concurrency strategy: exclusive, lock-free or phased")
	capacity := fs.Int("capacity", 0, "number of catalog slots")
	duration := fs.Duration("duration", 0, "how long the workload runs")
	ops := fs.Int("ops", 0, "operations per worker (0 runs until the duration elapses)")
	workers := fs.Int("workers", 0, "number of concurrent workers")
	printMetrics := fs.Bool("metrics", false, "print Prometheus metrics after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *capacity > 0 {
		cfg.Capacity = *capacity
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *ops > 0 {
		cfg.OpsPerWorker = *ops
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	mc, err := promcollector.New(reg)
	if err != nil {
		return err
	}

	dict := textgen.DefaultDictionary()
	genOpts := []textgen.Option{
		textgen.WithNameWords(cfg.NameWords),
		textgen.WithDescriptionWords(cfg.DescriptionWords),
	}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, textgen.WithSeed(cfg.Seed))
	}

	storeOpts := append(cfg.Options(),
		prodcat.WithLogger(logger),
		prodcat.WithMetricsCollector(mc),
		prodcat.WithReportSink(stdout),
	)
	store, err := prodcat.New(cfg.Capacity, textgen.New(dict, genOpts...), storeOpts...)
	if err != nil {
		return err
	}
	reg.MustRegister(promcollector.NewStoreCollector(store))

	vocabulary := make([]string, dict.Len())
	for i := range vocabulary {
		vocabulary[i] = dict.Word(i)
	}
	driver, err := workload.New(store, cfg, vocabulary, logger)
	if err != nil {
		return err
	}

	res, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	printResult(stdout, res, cfg.Report.CSV)
	if err := store.Report(cfg.Report.Verbose); err != nil {
		return err
	}
	if *printMetrics {
		return printGathered(stdout, reg)
	}
	return nil
}

func newLogger(cfg config.Log) (*prodcat.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Format, "json") {
		return prodcat.NewJSONLogger(level), nil
	}
	return prodcat.NewTextLogger(level), nil
}

func printResult(w io.Writer, res workload.Result, csv bool) {
	sep := ": "
	if csv {
		sep = ", "
	}
	rows := []struct {
		label string
		value any
	}{
		{"Run", res.RunID},
		{"Elapsed", res.Elapsed.Round(time.Millisecond)},
		{"Operations", res.Ops()},
		{"Lookups", res.Lookups},
		{"Lookup misses", res.LookupMisses},
		{"Replacements", res.Replacements},
		{"Match-all searches", res.MatchAlls},
		{"Match-any searches", res.MatchAnys},
		{"Search hits", res.SearchHits},
		{"Rebuilds", res.Rebuilds},
		{"Rebuild applied changes", res.RebuildApplied},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s%v\n", r.label, sep, r.value)
	}
}

// printGathered writes every sample of reg as "name{labels} value".
func printGathered(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(pairs)

			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(pairs, ","), value)
		}
	}
	return nil
}
