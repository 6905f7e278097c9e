package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ChizhovVadim/AttrSelect/internal/config"
	"github.com/ChizhovVadim/AttrSelect/internal/dataset"
	"github.com/ChizhovVadim/AttrSelect/internal/logging"
	"github.com/ChizhovVadim/AttrSelect/internal/ml"
	"github.com/ChizhovVadim/AttrSelect/internal/oracle"
	"github.com/ChizhovVadim/AttrSelect/internal/quality"
	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// env holds what every command needs: the dataset, the class attribute and
// the layered quality oracle.
type env struct {
	cfg        config.Config
	logger     *zap.SugaredLogger
	dataset    *dataset.Dataset
	class      int
	candidates []int
	oracle     search.Oracle
	closers    []func() error
}

func newEnv(cfg config.Config, command string) (*env, error) {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		return nil, err
	}
	var e = &env{cfg: cfg}
	e.logger = logger.With(
		logging.KeyRunID, uuid.NewString(),
		logging.KeyCommand, command)
	e.closers = append(e.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	if err := e.loadDataset(); err != nil {
		e.Close()
		return nil, err
	}
	if err := e.buildOracle(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) loadDataset() error {
	var start = time.Now()
	ds, err := dataset.Load(e.cfg.Data)
	if err != nil {
		return err
	}
	class, err := ds.ClassIndex(e.cfg.Class)
	if err != nil {
		return err
	}
	if _, _, err := ds.Labels(class); err != nil {
		return err
	}
	var candidates = ds.Candidates(class)
	if len(e.cfg.Attributes) != 0 {
		candidates, err = ds.Lookup(e.cfg.Attributes)
		if err != nil {
			return err
		}
		for _, a := range candidates {
			if a == class {
				return errors.Errorf("attribute %q is the class attribute", ds.Attributes[a].Name)
			}
		}
	}
	e.dataset = ds
	e.class = class
	e.candidates = candidates
	e.logger.Infow("dataset loaded",
		logging.KeyDataset, e.cfg.Data,
		logging.KeyRows, ds.NumRows(),
		logging.KeyAttributes, ds.NumAttributes(),
		logging.KeyClass, ds.Attributes[class].Name,
		"candidates", len(candidates),
		"elapsed", time.Since(start))
	return nil
}

// buildOracle layers the decorators over the cross-validation oracle:
// cache, then journal, then metrics, so only real trainings are measured.
func (e *env) buildOracle() error {
	maker, err := ml.Lookup(e.cfg.Classifier)
	if err != nil {
		return err
	}
	measure, err := quality.ParseMeasure(e.cfg.Measure)
	if err != nil {
		return err
	}
	var o search.Oracle = &quality.Oracle{
		CrossValidation: quality.CrossValidation{
			Dataset: e.dataset,
			Class:   e.class,
			Maker:   maker,
			Folds:   e.cfg.Folds,
			Seed:    e.cfg.Seed,
			Threads: e.cfg.Threads,
		},
		Measure: measure,
	}

	if e.cfg.MetricsAddr != "" {
		var reg = prometheus.NewRegistry()
		metrics, err := oracle.NewMetrics(reg)
		if err != nil {
			return err
		}
		if err := e.serveMetrics(reg); err != nil {
			return err
		}
		o = oracle.NewMetered(o, metrics)
	}

	if e.cfg.Store != "" {
		journal, err := store.Open(e.cfg.Store)
		if err != nil {
			return err
		}
		e.closers = append(e.closers, journal.Close)
		var namespace = e.namespace()
		if n, err := journal.Count(namespace); err == nil && n > 0 {
			e.logger.Infow("resuming from journal", "store", e.cfg.Store, "scores", n)
		}
		o = oracle.NewJournaled(o, journal, namespace, e.logger)
	}

	if e.cfg.CacheSize > 0 {
		cached, err := oracle.NewCached(o, e.cfg.CacheSize)
		if err != nil {
			return err
		}
		e.closers = append(e.closers, func() error {
			cached.Close()
			return nil
		})
		o = cached
	}

	e.oracle = o
	e.logger.Infow("quality oracle ready",
		logging.KeyClassifier, e.cfg.Classifier,
		logging.KeyFolds, e.cfg.Folds,
		logging.KeySeed, e.cfg.Seed,
		"measure", measure)
	return nil
}

// namespace separates persisted scores of different datasets and
// evaluation settings.
func (e *env) namespace() string {
	return fmt.Sprintf("%s/%016x/%d/%s/%d/%d/%s",
		e.dataset.Relation, e.dataset.Fingerprint(), e.class,
		e.cfg.Classifier, e.cfg.Folds, e.cfg.Seed, e.cfg.Measure)
}

func (e *env) serveMetrics(reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", e.cfg.MetricsAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", e.cfg.MetricsAddr)
	}
	var mux = http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	var srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			e.logger.Errorw("metrics server stopped", "error", err)
		}
	}()
	e.logger.Infow("serving metrics", "addr", ln.Addr().String())
	e.closers = append(e.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	return nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.logger.Warnw("close failed", "error", err)
		}
	}
	e.closers = nil
}
