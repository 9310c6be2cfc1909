package scheduler

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/media"
)

// Scheduler fans turns out to a bounded worker pool and reassembles results in turn order.
type Scheduler struct {
	synth      Synthesizer
	animator   Animator
	normalizer media.Normalizer
	logger     logger.Logger
	opts       Options
}

// New creates a Scheduler. A non-positive MaxConcurrent runs one job at a time.
func New(synth Synthesizer, animator Animator, normalizer media.Normalizer, log logger.Logger, opts Options) *Scheduler {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &Scheduler{
		synth:      synth,
		animator:   animator,
		normalizer: normalizer,
		logger:     log,
		opts:       opts,
	}
}
