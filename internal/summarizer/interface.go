package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

// Conversation is the summarizer's output: structured records when the model was
// asked for JSON, the raw text otherwise.
type Conversation struct {
	Structured bool
	Records    []transcript.Record
	Raw        string
}

// Summarizer turns a local video into a two-person conversation.
type Summarizer interface {
	Summarize(ctx context.Context, videoPath string) (*Conversation, error)
}
