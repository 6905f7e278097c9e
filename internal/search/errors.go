package search

import (
	"fmt"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/pkg/errors"
)

// ErrNaNQuality is reported when an oracle returns NaN. A NaN never compares
// greater than anything, so it would silently freeze the running maximum.
var ErrNaNQuality = errors.New("oracle returned NaN quality")

// ConfigurationError is raised before any oracle call when the candidate set
// cannot be searched.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "search configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// OracleEvaluationError wraps a failure of the oracle for one subset. The
// search that observed it returns no result.
type OracleEvaluationError struct {
	Subset subset.Subset
	Err    error
}

func (e *OracleEvaluationError) Error() string {
	return fmt.Sprintf("evaluate subset %v: %v", e.Subset, e.Err)
}

func (e *OracleEvaluationError) Unwrap() error {
	return e.Err
}
