package media

import (
	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

type implNormalizer struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
	slots    encodeSlots
}

type implAssembler struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewNormalizer creates a Normalizer. At most cfg.MaxConcurrent encodes run at once.
func NewNormalizer(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		slots:    newEncodeSlots(cfg.MaxConcurrent),
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Assembler {
	return &implAssembler{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
