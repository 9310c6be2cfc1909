package processor

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/clients"
	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/media"
	"github.com/nguyentantai21042004/dialogue-flow/internal/scheduler"
	"github.com/nguyentantai21042004/dialogue-flow/internal/summarizer"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

type deps struct {
	ingester    Ingester
	summarizer  summarizer.Summarizer
	synthesizer scheduler.Synthesizer
	animator    scheduler.Animator
	normalizer  media.Normalizer
	assembler   media.Assembler
}

type implProcessor struct {
	cfg        *config.Config
	logger     logger.Logger
	deps       deps
	transcript *transcript.Normalizer
	policy     scheduler.Policy
}

// New creates a new Processor instance wired to the remote services and local ffmpeg
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Processor, error) {
	remote := clients.NewHTTP(cfg.Services, log)
	return newWithDeps(cfg, log, deps{
		ingester:    remote,
		summarizer:  summarizer.New(cfg.Gemini, cfg.Speakers.Labels, log),
		synthesizer: remote,
		animator:    remote,
		normalizer:  media.NewNormalizer(cfg.FFmpeg, exec, log),
		assembler:   media.NewAssembler(cfg.FFmpeg, exec, log),
	})
}

func newWithDeps(cfg *config.Config, log logger.Logger, d deps) (*implProcessor, error) {
	policy, err := scheduler.ParsePolicy(cfg.Scheduler.FailurePolicy)
	if err != nil {
		return nil, err
	}
	return &implProcessor{
		cfg:        cfg,
		logger:     log,
		deps:       d,
		transcript: transcript.NewNormalizer(cfg.Speakers.Labels...),
		policy:     policy,
	}, nil
}
