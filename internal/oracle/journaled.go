package oracle

import (
	"context"

	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/store"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"go.uber.org/zap"
)

// Journaled reads scores from a persistent journal before asking the inner
// oracle, and records every successful evaluation.
type Journaled struct {
	inner     search.Oracle
	journal   *store.Journal
	namespace string
	logger    *zap.SugaredLogger
}

func NewJournaled(
	inner search.Oracle,
	journal *store.Journal,
	namespace string,
	logger *zap.SugaredLogger,
) *Journaled {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Journaled{
		inner:     inner,
		journal:   journal,
		namespace: namespace,
		logger:    logger,
	}
}

func (j *Journaled) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	var key = attrs.Key()
	q, found, err := j.journal.Get(j.namespace, key)
	if err != nil {
		return 0, err
	}
	if found {
		j.logger.Debugw("score restored from journal",
			"subset", key,
			"quality", q)
		return q, nil
	}
	q, err = j.inner.Quality(ctx, attrs)
	if err != nil {
		return 0, err
	}
	if err := j.journal.Put(j.namespace, key, q); err != nil {
		return 0, err
	}
	return q, nil
}
