package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/pkg/executor"
)

type call struct {
	name string
	dir  string
	args []string
}

// fakeExecutor records invocations; failOn makes any call whose args contain the string fail.
// Like ffmpeg, it resolves a relative manifest path against the working directory.
type fakeExecutor struct {
	mu       sync.Mutex
	calls    []call
	failOn   string
	manifest string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.run("", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.run(dir, name, args...)
}

func (f *fakeExecutor) run(dir, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, dir: dir, args: args})

	for i, a := range args {
		if a == "-i" && i+1 < len(args) && strings.HasSuffix(args[i+1], ".txt") {
			manifest := args[i+1]
			if !filepath.IsAbs(manifest) && dir != "" {
				manifest = filepath.Join(dir, manifest)
			}
			data, err := os.ReadFile(manifest)
			if err != nil {
				return "", &executor.CommandError{Name: name, Args: args, Stderr: err.Error(), Err: errors.New("exit status 1")}
			}
			f.manifest = string(data)
		}
		if f.failOn != "" && strings.Contains(a, f.failOn) {
			return "", &executor.CommandError{Name: name, Args: args, Stderr: "Invalid data found when processing input", Err: errors.New("exit status 1")}
		}
	}
	return "", nil
}

func testFFmpegConfig() config.FFmpegConfig {
	return config.FFmpegConfig{
		BinaryPath:    "ffmpeg",
		FrameRate:     30,
		VideoCodec:    "libx264",
		Preset:        "fast",
		CRF:           23,
		AudioCodec:    "aac",
		LogLevel:      "warning",
		MaxConcurrent: 2,
	}
}

func TestNormalize(t *testing.T) {
	exec := &fakeExecutor{}
	n := NewNormalizer(testFFmpegConfig(), exec, logger.Nop())
	dir := t.TempDir()

	art, err := n.Normalize(context.Background(), 7, "/remote/clip.mp4", dir)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := Artifact{TurnIndex: 7, Path: filepath.Join(dir, "normalized_0007.mp4")}
	if diff := cmp.Diff(want, art); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}

	wantArgs := []string{
		"-y", "-loglevel", "warning",
		"-i", "/remote/clip.mp4",
		"-r", "30",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		want.Path,
	}
	if len(exec.calls) != 1 {
		t.Fatalf("executor called %d times, want 1", len(exec.calls))
	}
	if diff := cmp.Diff(wantArgs, exec.calls[0].args); diff != "" {
		t.Errorf("ffmpeg args mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFailure(t *testing.T) {
	exec := &fakeExecutor{failOn: "broken.mp4"}
	n := NewNormalizer(testFFmpegConfig(), exec, logger.Nop())

	_, err := n.Normalize(context.Background(), 2, "/clips/broken.mp4", t.TempDir())
	if !errors.Is(err, errs.ErrResource) {
		t.Fatalf("Normalize() error = %v, want ErrResource", err)
	}

	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("error %T is not *ResourceError", err)
	}
	if re.Path != "/clips/broken.mp4" {
		t.Errorf("Path = %q, want offending clip", re.Path)
	}
	if re.Diagnostic != "Invalid data found when processing input" {
		t.Errorf("Diagnostic = %q", re.Diagnostic)
	}
}

func TestNormalizeCanceledWhileWaiting(t *testing.T) {
	cfg := testFFmpegConfig()
	cfg.MaxConcurrent = 1
	n := NewNormalizer(cfg, &fakeExecutor{}, logger.Nop()).(*implNormalizer)

	release, err := n.slots.take(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer release()
	if n.slots.busy() != 1 {
		t.Fatalf("busy() = %d, want 1", n.slots.busy())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := n.Normalize(ctx, 0, "a.mp4", t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Normalize() error = %v, want context.Canceled", err)
	}
}

func TestAssemble(t *testing.T) {
	exec := &fakeExecutor{}
	a := NewAssembler(testFFmpegConfig(), exec, logger.Nop())
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "final.mp4")

	arts := []Artifact{
		{TurnIndex: 2, Path: "/w/normalized_0002.mp4"},
		{TurnIndex: 0, Path: "/w/normalized_0000.mp4"},
		{TurnIndex: 1, Path: "/w/it's.mp4"},
	}

	got, err := a.Assemble(context.Background(), arts, dir, out)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if got != out {
		t.Errorf("Assemble() = %q, want %q", got, out)
	}

	wantManifest := "file '/w/normalized_0000.mp4'\n" +
		"file '/w/it'\\''s.mp4'\n" +
		"file '/w/normalized_0002.mp4'\n"
	if diff := cmp.Diff(wantManifest, exec.manifest); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}

	args := strings.Join(exec.calls[0].args, " ")
	for _, want := range []string{"-f concat", "-safe 0", "-c copy", out} {
		if !strings.Contains(args, want) {
			t.Errorf("concat args %q missing %q", args, want)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "concat-*.txt"))
	if len(leftovers) != 0 {
		t.Errorf("manifest not removed: %v", leftovers)
	}
}

func TestAssembleRelativeWorkDir(t *testing.T) {
	t.Chdir(t.TempDir())
	workDir := filepath.Join("data", "temp", "run-1")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{}
	a := NewAssembler(testFFmpegConfig(), exec, logger.Nop())
	arts := []Artifact{{TurnIndex: 0, Path: filepath.Join(workDir, "normalized_0000.mp4")}}

	got, err := a.Assemble(context.Background(), arts, workDir, filepath.Join("data", "output", "final.mp4"))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Assemble() = %q, want an absolute path", got)
	}

	c := exec.calls[0]
	if !filepath.IsAbs(c.dir) {
		t.Errorf("concat dir = %q, want absolute", c.dir)
	}
	for i, arg := range c.args {
		if arg == "-i" && !filepath.IsAbs(c.args[i+1]) {
			t.Errorf("manifest path %q is relative to the concat working dir", c.args[i+1])
		}
	}
	if !strings.HasPrefix(exec.manifest, "file '/") {
		t.Errorf("manifest entries not absolute: %q", exec.manifest)
	}
}

func TestAssembleEmpty(t *testing.T) {
	exec := &fakeExecutor{}
	a := NewAssembler(testFFmpegConfig(), exec, logger.Nop())
	dir := t.TempDir()
	out := filepath.Join(dir, "final.mp4")

	_, err := a.Assemble(context.Background(), nil, dir, out)
	if !errors.Is(err, errs.ErrEmptySequence) {
		t.Fatalf("Assemble() error = %v, want ErrEmptySequence", err)
	}
	if len(exec.calls) != 0 {
		t.Error("concatenator invoked for empty sequence")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file written for empty sequence")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("work dir not empty: %v", entries)
	}
}

func TestAssembleDuplicateTurn(t *testing.T) {
	a := NewAssembler(testFFmpegConfig(), &fakeExecutor{}, logger.Nop())
	arts := []Artifact{{TurnIndex: 1, Path: "a.mp4"}, {TurnIndex: 1, Path: "b.mp4"}}

	if _, err := a.Assemble(context.Background(), arts, t.TempDir(), "out.mp4"); err == nil {
		t.Error("Assemble() should reject duplicate turn indices")
	}
}

func TestAssembleConcatFailure(t *testing.T) {
	exec := &fakeExecutor{failOn: "final.mp4"}
	a := NewAssembler(testFFmpegConfig(), exec, logger.Nop())
	dir := t.TempDir()

	_, err := a.Assemble(context.Background(), []Artifact{{TurnIndex: 0, Path: "a.mp4"}}, dir, filepath.Join(dir, "final.mp4"))
	var re *ResourceError
	if !errors.As(err, &re) || re.Op != "concatenate" {
		t.Fatalf("Assemble() error = %v, want concatenate ResourceError", err)
	}
}

func TestManifestNamesAreUnique(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{{TurnIndex: 0, Path: "/a.mp4"}}

	first, err := writeManifest(dir, arts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := writeManifest(dir, arts)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("writeManifest() reused %s", first)
	}
}
