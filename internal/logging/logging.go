package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured keys shared by all commands.
const (
	KeyRunID      = "run.id"
	KeyCommand    = "run.command"
	KeyDataset    = "data.path"
	KeyRows       = "data.rows"
	KeyAttributes = "data.attributes"
	KeyClass      = "data.class"
	KeyClassifier = "model.name"
	KeyFolds      = "cv.folds"
	KeySeed       = "cv.seed"
	KeySubset     = "search.subset"
	KeyQuality    = "search.quality"
)

type Options struct {
	Level string
	JSON  bool
}

// New builds a console logger, or a JSON one for machine consumption.
// Output goes to stderr so reports on stdout stay clean.
func New(opts Options) (*zap.SugaredLogger, error) {
	var level zapcore.Level
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, errors.Wrapf(err, "parse log level %q", opts.Level)
		}
	}

	var cfg zap.Config
	if opts.JSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger.Sugar(), nil
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
