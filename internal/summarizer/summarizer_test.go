package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

func newTestSummarizer(cfg config.GeminiConfig) *implSummarizer {
	return New(cfg, []string{"Person 1", "Person 2"}, logger.Nop()).(*implSummarizer)
}

func TestParseConversation(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		structured bool
		want       []transcript.Record
		wantErr    bool
	}{
		{
			name:       "plain json",
			text:       `[{"speaker_name":"Person 1","dialogue":"Hello"},{"speaker_name":"Person 2","dialogue":"Hi"}]`,
			structured: true,
			want: []transcript.Record{
				{SpeakerName: "Person 1", Dialogue: "Hello"},
				{SpeakerName: "Person 2", Dialogue: "Hi"},
			},
		},
		{
			name:       "fenced json",
			text:       "```json\n[{\"speaker_name\":\"Person 1\",\"dialogue\":\"A\"}]\n```",
			structured: true,
			want:       []transcript.Record{{SpeakerName: "Person 1", Dialogue: "A"}},
		},
		{
			name:       "prose where json expected",
			text:       "Person 1: Hello",
			structured: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseConversation(tt.text, tt.structured)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseConversation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errs.ErrStructural) {
					t.Errorf("error = %v, want ErrStructural", err)
				}
				return
			}
			if !got.Structured {
				t.Error("Structured = false")
			}
			if diff := cmp.Diff(tt.want, got.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConversationRaw(t *testing.T) {
	raw := "Person 1: Hello\nPerson 2: Hi there\n"
	got, err := parseConversation(raw, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Structured || got.Raw != raw || got.Records != nil {
		t.Errorf("parseConversation() = %+v", got)
	}
}

func TestPrompt(t *testing.T) {
	noAudio := false
	s := newTestSummarizer(config.GeminiConfig{Prompt: "Summarize.", UseAudio: &noAudio})

	structured := s.prompt(true)
	if !strings.HasPrefix(structured, "Summarize.") {
		t.Errorf("prompt lost base text: %q", structured)
	}
	if !strings.Contains(structured, `"Person 1", "Person 2"`) {
		t.Errorf("prompt missing speaker labels: %q", structured)
	}
	if !strings.Contains(structured, "Ignore the audio track") {
		t.Errorf("prompt missing video-only hint: %q", structured)
	}

	if raw := s.prompt(false); strings.Contains(raw, "JSON") {
		t.Errorf("raw prompt asks for JSON: %q", raw)
	}
}

func TestResponseText(t *testing.T) {
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q", got)
	}

	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Person 1: "}, {Text: "Hi"}}},
		}},
	}
	if got := responseText(result); got != "Person 1: Hi" {
		t.Errorf("responseText() = %q", got)
	}
}

func TestConversationSchema(t *testing.T) {
	schema := conversationSchema()
	if schema.Type != genai.TypeArray || schema.Items == nil {
		t.Fatalf("schema = %+v, want array", schema)
	}
	if diff := cmp.Diff([]string{"speaker_name", "dialogue"}, schema.Items.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateKey(t *testing.T) {
	s := newTestSummarizer(config.GeminiConfig{APIKeys: []string{"a", "b", "c"}})
	var seen []string
	for range 4 {
		idx, key := s.key()
		seen = append(seen, key)
		s.rotateKey(idx)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "a"}, seen); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateKeyConcurrent(t *testing.T) {
	s := newTestSummarizer(config.GeminiConfig{APIKeys: []string{"a", "b", "c"}})

	// Every run saw key 0 fail at the same time; it is skipped once, not once per run.
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.rotateKey(0)
		}()
	}
	wg.Wait()

	if idx, key := s.key(); idx != 1 || key != "b" {
		t.Errorf("key() = %d/%q, want 1/\"b\"", idx, key)
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 429, Message: Resource has been exhausted"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("exceeded your current quota"), true},
		{errors.New("Error 400, Message: invalid argument"), false},
	}
	for _, tt := range tests {
		if got := isQuotaError(tt.err); got != tt.want {
			t.Errorf("isQuotaError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestSummarizeWithoutKeys(t *testing.T) {
	s := newTestSummarizer(config.GeminiConfig{})
	if _, err := s.Summarize(context.Background(), "video.mp4"); err == nil {
		t.Error("Summarize() should fail without API keys")
	}
}
