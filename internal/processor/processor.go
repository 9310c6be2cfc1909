package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/dialogue-flow/internal/scheduler"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
	"github.com/nguyentantai21042004/dialogue-flow/internal/summarizer"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

// Process orchestrates the entire dialogue video pipeline
func (p *implProcessor) Process(ctx context.Context, req Request) (*Outcome, error) {
	startTime := time.Now()

	if err := p.validate(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	router, err := speaker.New(
		speaker.Profile{SpeakerID: p.cfg.Speakers.Labels[0], Voice: req.Voices[0], ReferenceImage: req.Images[0]},
		speaker.Profile{SpeakerID: p.cfg.Speakers.Labels[1], Voice: req.Voices[1], ReferenceImage: req.Images[1]},
	)
	if err != nil {
		return nil, fmt.Errorf("speaker profiles: %w", err)
	}

	out := &Outcome{RunID: uuid.NewString()}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting run %s: %s", out.RunID, req.SourceURL)
	p.logger.Info(ctx, "Speakers: %s", strings.Join(router.Speakers(), ", "))
	p.logger.Info(ctx, "========================================")

	workDir, err := p.createWorkDir(out.RunID)
	if err != nil {
		return nil, err
	}
	defer p.cleanupWorkDir(ctx, workDir)

	// Step 1: Download source video
	videoPath, err := p.deps.ingester.Download(ctx, req.SourceURL, workDir)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	// Step 2: Summarize into a two-person conversation
	conv, err := p.deps.summarizer.Summarize(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// Step 3: Normalize into ordered turns
	turns, err := p.turns(conv)
	if err != nil {
		return nil, fmt.Errorf("normalize transcript: %w", err)
	}
	out.Turns = len(turns)
	p.logger.Info(ctx, "Conversation has %d turns", len(turns))
	for _, t := range turns {
		p.logger.Debug(ctx, "  [%d] %s: %s", t.Index, t.Speaker, t.Text)
	}

	// Step 4: Speech, avatar and normalization per turn
	timer := newTurnTimer()
	sched := scheduler.New(p.deps.synthesizer, p.deps.animator, p.deps.normalizer, p.logger, scheduler.Options{
		MaxConcurrent: p.cfg.Scheduler.MaxConcurrent,
		Policy:        p.policy,
		OnEvent:       timer.observe,
	})
	result, err := sched.Run(ctx, turns, router, workDir)
	out.TurnDurations = timer.durations
	if result != nil {
		out.Failures = result.Failures
	}
	if err != nil {
		return out, fmt.Errorf("generate turns: %w", err)
	}
	for _, f := range result.Failures {
		p.logger.Warn(ctx, "Omitting turn %d from output: %v", f.TurnIndex, f.Err)
	}

	// Step 5: Concatenate in turn order
	outputPath := p.outputPath(req, out.RunID)
	videoOut, err := p.deps.assembler.Assemble(ctx, result.Artifacts, workDir, outputPath)
	if err != nil {
		return out, fmt.Errorf("assemble: %w", err)
	}
	out.VideoPath = videoOut

	// Step 6: Optional script export
	if p.cfg.Output.ScriptDocx {
		scriptPath := strings.TrimSuffix(videoOut, filepath.Ext(videoOut)) + ".docx"
		if err := transcript.WriteDocx(req.SourceURL, turns, scriptPath); err != nil {
			p.logger.Warn(ctx, "Failed to write script: %v", err)
		} else {
			out.ScriptPath = scriptPath
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run %s completed successfully!", out.RunID)
	p.logger.Info(ctx, "Output video: %s", out.VideoPath)
	if out.ScriptPath != "" {
		p.logger.Info(ctx, "Output script: %s", out.ScriptPath)
	}
	p.logger.Info(ctx, "Turns: %d rendered, %d omitted", len(result.Artifacts), len(result.Failures))
	if slowest, d, ok := timer.slowest(); ok {
		p.logger.Info(ctx, "Slowest turn: %d (%s)", slowest, d.Round(time.Millisecond))
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return out, nil
}

func (p *implProcessor) validate(req Request) error {
	if req.SourceURL == "" {
		return errors.New("source url is required")
	}
	if len(req.Voices) != 2 {
		return fmt.Errorf("need exactly two voices, got %d", len(req.Voices))
	}
	if len(req.Images) != 2 {
		return fmt.Errorf("need exactly two avatar images, got %d", len(req.Images))
	}
	for _, img := range req.Images {
		if img == "" || strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
			continue
		}
		if _, err := os.Stat(img); err != nil {
			return fmt.Errorf("avatar image: %w", err)
		}
	}
	return nil
}

func (p *implProcessor) turns(conv *summarizer.Conversation) ([]transcript.Turn, error) {
	if conv.Structured {
		return transcript.FromRecords(conv.Records)
	}
	return p.transcript.Parse(conv.Raw), nil
}

func (p *implProcessor) outputPath(req Request, runID string) string {
	if req.Output != "" {
		return req.Output
	}
	return filepath.Join(p.cfg.Paths.Output, fmt.Sprintf("dialogue_%s.mp4", runID[:8]))
}
