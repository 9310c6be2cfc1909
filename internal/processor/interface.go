package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/dialogue-flow/internal/scheduler"
)

// Request describes one dialogue video to produce.
type Request struct {
	SourceURL string   `yaml:"source_url"`
	Voices    []string `yaml:"voices"`
	Images    []string `yaml:"images"`
	Output    string   `yaml:"output"`
}

// Outcome summarises a finished run.
type Outcome struct {
	RunID      string
	VideoPath  string
	ScriptPath string
	Turns      int
	Failures   []*scheduler.JobError
	// TurnDurations is the wall time from synthesis start to done or failed, by turn index.
	TurnDurations map[int]time.Duration
}

// Processor defines the interface for dialogue video generation
type Processor interface {
	Process(ctx context.Context, req Request) (*Outcome, error)
	// ProcessFile runs the request described by a YAML file. Used by watch mode.
	ProcessFile(ctx context.Context, requestPath string) error
}

// Ingester downloads the source video.
type Ingester interface {
	Download(ctx context.Context, sourceURL, workDir string) (string, error)
}
