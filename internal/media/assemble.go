package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

// Assemble writes a concat manifest for artifacts (sorted by turn index) into workDir
// and stream-copies them into outputPath. Nothing is written for an empty sequence.
func (a *implAssembler) Assemble(ctx context.Context, artifacts []Artifact, workDir, outputPath string) (string, error) {
	if len(artifacts) == 0 {
		return "", fmt.Errorf("assemble %s: %w", outputPath, errs.ErrEmptySequence)
	}

	ordered := append([]Artifact(nil), artifacts...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].TurnIndex < ordered[j].TurnIndex })
	for i := 1; i < len(ordered); i++ {
		if ordered[i].TurnIndex == ordered[i-1].TurnIndex {
			return "", fmt.Errorf("assemble: turn %d appears twice", ordered[i].TurnIndex)
		}
	}

	// ffmpeg runs inside workDir, so every path handed to it must be absolute
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", newResourceError("resolve work dir", workDir, err)
	}
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return "", newResourceError("resolve output", outputPath, err)
	}

	manifest, err := writeManifest(workDir, ordered)
	if err != nil {
		return "", newResourceError("write manifest", workDir, err)
	}
	defer os.Remove(manifest)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", newResourceError("create output dir", filepath.Dir(outputPath), err)
	}

	a.logger.Info(ctx, "Concatenating %d clips -> %s", len(ordered), outputPath)

	args := []string{
		"-y",
		"-loglevel", a.cfg.LogLevel,
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		outputPath,
	}

	if _, err := a.executor.ExecuteInDir(ctx, workDir, a.cfg.BinaryPath, args...); err != nil {
		return "", newResourceError("concatenate", outputPath, err)
	}

	a.logger.Info(ctx, "Assembled video: %s", outputPath)
	return outputPath, nil
}

// writeManifest creates a uniquely named concat-demuxer list in dir.
func writeManifest(dir string, artifacts []Artifact) (string, error) {
	f, err := os.CreateTemp(dir, "concat-*.txt")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, art := range artifacts {
		absPath, err := filepath.Abs(art.Path)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", err
		}
		fmt.Fprintf(&b, "file '%s'\n", escapeQuote(absPath))
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// escapeQuote escapes single quotes for the concat demuxer's quoting rules.
func escapeQuote(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
