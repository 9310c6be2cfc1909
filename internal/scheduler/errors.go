package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

// JobError is a per-turn failure, recorded with the stage the job failed in.
type JobError struct {
	TurnIndex int
	Speaker   string
	Stage     Stage
	Err       error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("turn %d (%s) failed during %s: %v", e.TurnIndex, e.Speaker, e.Stage, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// Is classifies remote stage failures as transient service errors.
// Normalization failures surface as resource errors through Unwrap.
func (e *JobError) Is(target error) bool {
	if target != errs.ErrTransientService {
		return false
	}
	if e.Canceled() {
		return false
	}
	return e.Stage == StageSynthesizing || e.Stage == StageAnimating
}

// Canceled reports whether the job was stopped because its run was cancelled.
func (e *JobError) Canceled() bool {
	return errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded)
}

// RunError aborts a run after one or more jobs failed.
// Cause is the failure that triggered the abort; Failures lists every failed turn in index order.
type RunError struct {
	Policy   Policy
	Total    int
	Cause    *JobError
	Failures []*JobError
}

func (e *RunError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn pipeline aborted (%s): %d of %d turns failed", e.Policy, len(e.Failures), e.Total)
	if e.Cause != nil {
		fmt.Fprintf(&b, "; first: %v", e.Cause)
	}
	for _, f := range e.Failures {
		if f == e.Cause {
			continue
		}
		fmt.Fprintf(&b, "; %v", f)
	}
	return b.String()
}

func (e *RunError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f)
	}
	return out
}
