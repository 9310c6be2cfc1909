package media

import "context"

// Artifact is a normalized clip on local disk, keyed by the turn it renders.
type Artifact struct {
	TurnIndex int
	Path      string
}

// Normalizer re-encodes raw avatar clips to the canonical profile so that
// any two normalized clips can be concatenated without re-encoding.
type Normalizer interface {
	Normalize(ctx context.Context, turnIndex int, rawClip, workDir string) (Artifact, error)
}

// Assembler concatenates normalized clips, in turn order, into one video.
type Assembler interface {
	Assemble(ctx context.Context, artifacts []Artifact, workDir, outputPath string) (string, error)
}
