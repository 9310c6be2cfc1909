package scheduler

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
	"github.com/nguyentantai21042004/dialogue-flow/internal/media"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

// Result is the outcome of a run. Artifacts are in ascending turn order.
type Result struct {
	Artifacts []media.Artifact
	Failures  []*JobError
}

// Run resolves every turn's speaker, then processes all turns concurrently.
// Speaker resolution failures abort before any job is started. Job failures are
// handled per the configured Policy; a *RunError is returned when the run is aborted.
func (s *Scheduler) Run(ctx context.Context, turns []transcript.Turn, router Resolver, workDir string) (*Result, error) {
	table, err := s.buildTable(turns, router)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return &Result{Artifacts: []media.Artifact{}}, nil
	}

	s.logger.Info(ctx, "Scheduling %d turns (max concurrent: %d, policy: %s)", len(table), s.opts.MaxConcurrent, s.opts.Policy)

	events := make(chan Event, len(table))
	collected := make(chan struct{})
	go s.collect(ctx, len(table), events, collected)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrent)

	for _, job := range table {
		g.Go(func() error {
			return s.process(gctx, job, workDir, events)
		})
	}

	waitErr := g.Wait()
	close(events)
	<-collected

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("turn pipeline: %w", err)
	}

	return s.aggregate(table, waitErr)
}

// buildTable creates one Job per turn, indexed by turn index.
func (s *Scheduler) buildTable(turns []transcript.Turn, router Resolver) ([]*Job, error) {
	table := make([]*Job, len(turns))
	for i, turn := range turns {
		if turn.Index != i {
			return nil, fmt.Errorf("%w: turn at position %d has index %d", errs.ErrStructural, i, turn.Index)
		}
		profile, err := router.Resolve(turn.Speaker)
		if err != nil {
			return nil, fmt.Errorf("resolve turn %d: %w", turn.Index, err)
		}
		table[i] = newJob(turn, profile)
	}
	return table, nil
}

// process drives one job through synthesis, animation and normalization.
// It returns an error only under FailFast, which makes errgroup cancel the siblings.
func (s *Scheduler) process(ctx context.Context, job *Job, workDir string, events chan<- Event) error {
	idx := job.Turn.Index

	fail := func(cause error) error {
		jobErr := job.fail(cause)
		events <- Event{TurnIndex: idx, Stage: StageFailed, Err: jobErr}
		if s.opts.Policy == FailFast {
			return jobErr
		}
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if err := s.enter(job, StageSynthesizing, events); err != nil {
		return fail(err)
	}
	speech, err := s.synth.Synthesize(ctx, idx, job.Profile, job.Turn.Text, workDir)
	if err != nil {
		return fail(err)
	}
	job.Speech = speech

	if err := s.enter(job, StageAnimating, events); err != nil {
		return fail(err)
	}
	clip, err := s.animator.Animate(ctx, idx, job.Profile, speech, workDir)
	if err != nil {
		return fail(err)
	}
	job.RawClip = clip

	if err := s.enter(job, StageNormalizing, events); err != nil {
		return fail(err)
	}
	art, err := s.normalizer.Normalize(ctx, idx, clip, workDir)
	if err != nil {
		return fail(err)
	}
	job.Artifact = art

	if err := s.enter(job, StageDone, events); err != nil {
		return fail(err)
	}
	return nil
}

func (s *Scheduler) enter(job *Job, to Stage, events chan<- Event) error {
	if err := job.advance(to); err != nil {
		return err
	}
	events <- Event{TurnIndex: job.Turn.Index, Stage: to}
	return nil
}

// collect consumes job events until the channel is closed.
func (s *Scheduler) collect(ctx context.Context, total int, events <-chan Event, done chan<- struct{}) {
	defer close(done)

	finished := 0
	for ev := range events {
		switch ev.Stage {
		case StageDone:
			finished++
			s.logger.Info(ctx, "[%d/%d] Turn %d done", finished, total, ev.TurnIndex)
		case StageFailed:
			finished++
			s.logger.Error(ctx, "[%d/%d] %v", finished, total, ev.Err)
		default:
			s.logger.Debug(ctx, "Turn %d: %s", ev.TurnIndex, ev.Stage)
		}
		if s.opts.OnEvent != nil {
			s.opts.OnEvent(ev)
		}
	}
}

// aggregate walks the job table in index order and applies the failure policy.
func (s *Scheduler) aggregate(table []*Job, waitErr error) (*Result, error) {
	res := &Result{Artifacts: make([]media.Artifact, 0, len(table))}
	for _, job := range table {
		switch job.Stage {
		case StageDone:
			res.Artifacts = append(res.Artifacts, job.Artifact)
		case StageFailed:
			res.Failures = append(res.Failures, job.Err)
		default:
			return nil, fmt.Errorf("turn %d left in stage %s", job.Turn.Index, job.Stage)
		}
	}

	if len(res.Failures) == 0 {
		return res, nil
	}
	if s.opts.Policy == BestEffort {
		return res, nil
	}

	runErr := &RunError{Policy: s.opts.Policy, Total: len(table), Failures: res.Failures}
	var cause *JobError
	if errors.As(waitErr, &cause) {
		runErr.Cause = cause
	} else {
		runErr.Cause = res.Failures[0]
	}
	return res, runErr
}
