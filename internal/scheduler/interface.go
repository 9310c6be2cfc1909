package scheduler

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// Synthesizer turns one turn's text into a local speech file.
type Synthesizer interface {
	Synthesize(ctx context.Context, turnIndex int, profile speaker.Profile, text, workDir string) (string, error)
}

// Animator drives the speaker's reference image with a speech file and returns a local raw clip.
type Animator interface {
	Animate(ctx context.Context, turnIndex int, profile speaker.Profile, speechPath, workDir string) (string, error)
}

// Resolver maps a speaker label to its profile.
type Resolver interface {
	Resolve(speakerID string) (speaker.Profile, error)
}

// Policy decides what a failed job does to the rest of the run.
type Policy int

const (
	// DrainThenAbort lets siblings finish, then fails the run if any job failed.
	DrainThenAbort Policy = iota
	// FailFast cancels in-flight siblings on the first failure.
	FailFast
	// BestEffort lets siblings finish and omits failed turns from the output.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return config.PolicyFailFast
	case BestEffort:
		return config.PolicyBestEffort
	default:
		return config.PolicyDrainThenAbort
	}
}

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case config.PolicyDrainThenAbort, "":
		return DrainThenAbort, nil
	case config.PolicyFailFast:
		return FailFast, nil
	case config.PolicyBestEffort:
		return BestEffort, nil
	default:
		return DrainThenAbort, fmt.Errorf("unknown failure policy %q", s)
	}
}

// Event is emitted on every job transition.
type Event struct {
	TurnIndex int
	Stage     Stage
	Err       error
}

// Options configures a Scheduler.
type Options struct {
	MaxConcurrent int
	Policy        Policy
	// OnEvent, if set, is called from a single collector goroutine for every event.
	OnEvent func(Event)
}
