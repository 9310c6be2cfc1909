package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
)

// Normalize re-encodes rawClip into workDir as normalized_<index>.mp4.
// The output name is derived from the turn index, so workDir must be private to one run.
func (n *implNormalizer) Normalize(ctx context.Context, turnIndex int, rawClip, workDir string) (Artifact, error) {
	outPath := filepath.Join(workDir, fmt.Sprintf("normalized_%04d.mp4", turnIndex))

	release, err := n.slots.take(ctx)
	if err != nil {
		return Artifact{}, err
	}
	defer release()

	n.logger.Debug(ctx, "Normalizing turn %d (%d/%d encodes busy): %s -> %s", turnIndex, n.slots.busy(), cap(n.slots), rawClip, outPath)

	// -r: constant output frame rate, required for stream-copy concat
	// -crf/-preset: same quality profile for every clip
	args := []string{
		"-y",
		"-loglevel", n.cfg.LogLevel,
		"-i", rawClip,
		"-r", strconv.Itoa(n.cfg.FrameRate),
		"-c:v", n.cfg.VideoCodec,
		"-preset", n.cfg.Preset,
		"-crf", strconv.Itoa(n.cfg.CRF),
		"-c:a", n.cfg.AudioCodec,
		outPath,
	}

	if _, err := n.executor.Execute(ctx, n.cfg.BinaryPath, args...); err != nil {
		return Artifact{}, newResourceError("normalize", rawClip, err)
	}

	n.logger.Info(ctx, "Normalized turn %d: %s", turnIndex, outPath)
	return Artifact{TurnIndex: turnIndex, Path: outPath}, nil
}
