package main

import (
	"time"

	"github.com/ChizhovVadim/AttrSelect/internal/benchmark"
	"github.com/ChizhovVadim/AttrSelect/internal/logging"
	"github.com/ChizhovVadim/AttrSelect/internal/ml"
	"github.com/ChizhovVadim/AttrSelect/internal/report"
	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) exhaustiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exhaustive",
		Short: "Evaluate every non-empty attribute subset and report the best",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(a.cfg, cmd.Name())
			if err != nil {
				return err
			}
			defer e.Close()
			res, err := e.exhaustive(cmd, e.candidates)
			if err != nil {
				return err
			}
			return report.Exhaustive(a.out, report.Format(a.cfg.Format), e.dataset, res)
		},
	}
}

func (a *app) greedyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greedy",
		Short: "Add attributes one at a time while the quality does not drop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(a.cfg, cmd.Name())
			if err != nil {
				return err
			}
			defer e.Close()
			trace, err := e.greedy(cmd)
			if err != nil {
				return err
			}
			return report.Greedy(a.out, report.Format(a.cfg.Format), e.dataset, trace)
		},
	}
}

func (a *app) selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select",
		Short: "Run a greedy search, then search its attributes exhaustively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(a.cfg, cmd.Name())
			if err != nil {
				return err
			}
			defer e.Close()
			var format = report.Format(a.cfg.Format)
			trace, err := e.greedy(cmd)
			if err != nil {
				return err
			}
			if err := report.Greedy(a.out, format, e.dataset, trace); err != nil {
				return err
			}
			if len(trace) == 0 {
				return errors.New("greedy search selected no attributes")
			}
			res, err := e.exhaustive(cmd, trace.Attributes())
			if err != nil {
				return err
			}
			return report.Exhaustive(a.out, format, e.dataset, res)
		},
	}
}

func (a *app) benchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark [classifier...]",
		Short: "Cross-validate classifiers on all attributes and compare ROC metrics",
		Long: `
benchmark evaluates the named classifiers (all registered ones by default)
on every non-class attribute. Sensitivity, specificity, MCC and the ROC
curve are computed for the --positive class value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(a.cfg, cmd.Name())
			if err != nil {
				return err
			}
			defer e.Close()
			var names = args
			if len(names) == 0 {
				names = ml.Names()
			}
			var b = &benchmark.Benchmark{
				Dataset:     e.dataset,
				Class:       e.class,
				Positive:    a.cfg.Positive,
				Folds:       a.cfg.Folds,
				Seed:        a.cfg.Seed,
				Concurrency: a.cfg.Concurrency,
				Threads:     a.cfg.Threads,
				Logger:      e.logger,
			}
			entries, err := b.Run(cmd.Context(), names)
			if err != nil {
				return err
			}
			return report.Benchmark(a.out, report.Format(a.cfg.Format), e.dataset, entries)
		},
	}
}

func (e *env) exhaustive(cmd *cobra.Command, candidates []int) (search.Result, error) {
	var start = time.Now()
	var total uint64
	if encoder, err := subset.NewEncoder(candidates); err == nil {
		total = encoder.Total()
	}
	res, err := search.Exhaustive(cmd.Context(), candidates, e.oracle,
		search.WithConcurrency(e.cfg.Concurrency),
		search.WithProgress(report.NewProgressLogger(e.logger, total, e.cfg.Progress)),
		search.WithLogger(e.logger))
	if err != nil {
		return search.Result{}, err
	}
	e.logger.Infow("exhaustive search finished",
		logging.KeySubset, res.Subset.String(),
		logging.KeyQuality, res.Quality,
		"evaluated", res.Evaluated,
		"elapsed", time.Since(start))
	return res, nil
}

func (e *env) greedy(cmd *cobra.Command) (search.Trace, error) {
	var start = time.Now()
	trace, err := search.Greedy(cmd.Context(), e.candidates, e.oracle,
		search.WithConcurrency(e.cfg.Concurrency),
		search.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.logger.Infow("greedy search finished",
		logging.KeySubset, trace.Attributes().String(),
		"steps", len(trace),
		"elapsed", time.Since(start))
	return trace, nil
}
