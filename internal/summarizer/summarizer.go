package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
	"github.com/nguyentantai21042004/dialogue-flow/internal/transcript"
)

const structuredSuffix = `

Return the conversation as a JSON array of objects with "speaker_name" and "dialogue" fields, in speaking order. Use only these speaker names: %s.`

const videoOnlySuffix = `

Ignore the audio track; base the conversation only on what is visible.`

// Summarize uploads the video to Gemini and asks for a conversation about it.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) Summarize(ctx context.Context, videoPath string) (*Conversation, error) {
	if len(s.apiKeys) == 0 {
		return nil, fmt.Errorf("no Gemini API keys configured")
	}

	structured := s.cfg.Structured == nil || *s.cfg.Structured
	var lastErr error

	for range len(s.apiKeys) {
		idx, key := s.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey(idx)
			continue
		}

		text, err := s.generate(ctx, client, videoPath, structured)
		if err != nil {
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return nil, err
		}

		s.logger.Debug(ctx, "Summary:\n%s", text)
		return parseConversation(text, structured)
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) generate(ctx context.Context, client *genai.Client, videoPath string, structured bool) (string, error) {
	file, err := s.upload(ctx, client, videoPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if _, err := client.Files.Delete(context.WithoutCancel(ctx), file.Name, nil); err != nil {
			s.logger.Warn(ctx, "Failed to delete uploaded file %s: %v", file.Name, err)
		}
	}()

	videoPart := genai.NewPartFromURI(file.URI, file.MIMEType)
	videoPart.VideoMetadata = &genai.VideoMetadata{FPS: genai.Ptr(s.cfg.FPS)}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{videoPart, genai.NewPartFromText(s.prompt(structured))}, genai.RoleUser),
	}

	var genCfg *genai.GenerateContentConfig
	if structured {
		genCfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   conversationSchema(),
		}
	}

	s.logger.Info(ctx, "Summarizing video with %s (fps: %g)", s.cfg.Model, s.cfg.FPS)
	result, err := client.Models.GenerateContent(ctx, s.cfg.Model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := responseText(result)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from Gemini", errs.ErrStructural)
	}
	return text, nil
}

// upload sends the video to the Files API and waits until it is ready for inference.
func (s *implSummarizer) upload(ctx context.Context, client *genai.Client, videoPath string) (*genai.File, error) {
	file, err := client.Files.UploadFromPath(ctx, videoPath, &genai.UploadFileConfig{MIMEType: "video/mp4"})
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-time.After(s.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if file, err = client.Files.Get(ctx, file.Name, nil); err != nil {
			return nil, fmt.Errorf("poll uploaded video: %w", err)
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("uploaded video %s failed processing", file.Name)
	}
	return file, nil
}

func (s *implSummarizer) prompt(structured bool) string {
	prompt := s.cfg.Prompt
	if structured {
		prompt += fmt.Sprintf(structuredSuffix, `"`+strings.Join(s.labels, `", "`)+`"`)
	}
	if s.cfg.UseAudio != nil && !*s.cfg.UseAudio {
		prompt += videoOnlySuffix
	}
	return prompt
}

func conversationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"speaker_name": {Type: genai.TypeString},
				"dialogue":     {Type: genai.TypeString},
			},
			Required:         []string{"speaker_name", "dialogue"},
			PropertyOrdering: []string{"speaker_name", "dialogue"},
		},
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

// parseConversation decodes model output. Structured output that is not a JSON
// array of records is a structural error.
func parseConversation(text string, structured bool) (*Conversation, error) {
	if !structured {
		return &Conversation{Raw: text}, nil
	}

	records, err := transcript.DecodeRecords([]byte(text))
	if err != nil {
		return nil, err
	}
	return &Conversation{Structured: true, Records: records, Raw: text}, nil
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// key returns the key in use. Concurrent runs share it.
func (s *implSummarizer) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

// rotateKey moves past failed unless another run already has.
func (s *implSummarizer) rotateKey(failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == failed {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}
