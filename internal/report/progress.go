package report

import (
	"math"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ProgressLogger logs exhaustive search progress every step fraction.
type ProgressLogger struct {
	logger *zap.SugaredLogger
	total  uint64
	step   float64
	next   float64
}

func NewProgressLogger(logger *zap.SugaredLogger, total uint64, step float64) *ProgressLogger {
	if step <= 0 || step > 1 {
		step = 0.05
	}
	return &ProgressLogger{
		logger: logger,
		total:  total,
		step:   step,
		next:   step,
	}
}

func (p *ProgressLogger) Progress(fraction, bestQuality float64) {
	if fraction < p.next && fraction < 1 {
		return
	}
	for p.next <= fraction {
		p.next += p.step
	}
	var done = uint64(math.Round(fraction * float64(p.total)))
	p.logger.Infow("calculation progress",
		"percent", humanize.FtoaWithDigits(fraction*100, 2),
		"evaluated", humanize.Comma(int64(done)),
		"total", humanize.Comma(int64(p.total)),
		"best", bestQuality)
}
