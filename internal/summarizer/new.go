package summarizer

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
)

type implSummarizer struct {
	apiKeys      []string
	mu           sync.Mutex
	currentKey   int
	cfg          config.GeminiConfig
	labels       []string
	logger       logger.Logger
	pollInterval time.Duration
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
// labels are the speaker names the model is told to use.
func New(cfg config.GeminiConfig, labels []string, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys:      cfg.APIKeys,
		cfg:          cfg,
		labels:       labels,
		logger:       log,
		pollInterval: 2 * time.Second,
	}
}
