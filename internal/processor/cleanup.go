package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// createWorkDir creates the directory that holds every intermediate file of one run.
// Names inside it are only unique per run, so it must never be shared.
func (p *implProcessor) createWorkDir(runID string) (string, error) {
	dir, err := filepath.Abs(filepath.Join(p.cfg.Paths.Temp, "run-"+runID))
	if err != nil {
		return "", fmt.Errorf("resolve work dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

// cleanupWorkDir removes a run's intermediate files, logs warning if fails
func (p *implProcessor) cleanupWorkDir(ctx context.Context, dir string) {
	if p.cfg.Paths.KeepTemp {
		p.logger.Info(ctx, "Keeping work dir: %s", dir)
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up work dir: %s", dir)
	}
}

// markRequest renames a processed request file so the watcher does not pick it up again
func (p *implProcessor) markRequest(ctx context.Context, requestPath, suffix string) {
	dest := requestPath + suffix
	if err := os.Rename(requestPath, dest); err != nil {
		p.logger.Warn(ctx, "Failed to mark request %s: %v", requestPath, err)
		return
	}
	p.logger.Debug(ctx, "Marked request: %s", dest)
}
