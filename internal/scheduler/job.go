package scheduler

import (
	"fmt"

	"github.com/nguyentantai21042004/dialogue-flow/internal/media"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

// Stage is the position of a Job in its per-turn pipeline.
type Stage int

const (
	StagePending Stage = iota
	StageSynthesizing
	StageAnimating
	StageNormalizing
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageSynthesizing:
		return "synthesizing_speech"
	case StageAnimating:
		return "animating"
	case StageNormalizing:
		return "normalizing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// next lists the only forward transition out of each working stage.
// Failure is allowed from any non-terminal stage.
var next = map[Stage]Stage{
	StagePending:      StageSynthesizing,
	StageSynthesizing: StageAnimating,
	StageAnimating:    StageNormalizing,
	StageNormalizing:  StageDone,
}

// Job is the unit of remote work for one turn. It is owned by the Scheduler and
// mutated only by the worker currently advancing it.
type Job struct {
	Turn     transcript.Turn
	Profile  speaker.Profile
	Stage    Stage
	Speech   string
	RawClip  string
	Artifact media.Artifact
	Err      *JobError
}

func newJob(turn transcript.Turn, profile speaker.Profile) *Job {
	return &Job{Turn: turn, Profile: profile, Stage: StagePending}
}

// advance moves the job one step forward.
func (j *Job) advance(to Stage) error {
	if want, ok := next[j.Stage]; !ok || want != to {
		return fmt.Errorf("turn %d: illegal transition %s -> %s", j.Turn.Index, j.Stage, to)
	}
	j.Stage = to
	return nil
}

// fail records cause against the stage the job was in and marks it failed.
func (j *Job) fail(cause error) *JobError {
	if j.Stage.Terminal() {
		return j.Err
	}
	j.Err = &JobError{
		TurnIndex: j.Turn.Index,
		Speaker:   j.Turn.Speaker,
		Stage:     j.Stage,
		Err:       cause,
	}
	j.Stage = StageFailed
	return j.Err
}
