package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

type TTSReq struct {
	Voice          string `json:"voice"`
	Text           string `json:"text"`
	ReferenceAudio string `json:"reference_audio,omitempty"`
	Emotion        string `json:"emotion,omitempty"`
}

// Synthesize renders text in the profile's voice to workDir/speech_<turn>.wav.
func (h *HTTP) Synthesize(ctx context.Context, turnIndex int, profile speaker.Profile, text, workDir string) (string, error) {
	b, _ := json.Marshal(TTSReq{
		Voice:          profile.Voice,
		Text:           text,
		ReferenceAudio: h.cfg.TTS.ReferenceAudio,
		Emotion:        h.cfg.TTS.Style,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.cfg.TTS.Path), bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	dst := filepath.Join(workDir, fmt.Sprintf("speech_%04d.wav", turnIndex))
	if err := h.do(req, "tts", dst); err != nil {
		return "", err
	}

	h.logger.Debug(ctx, "Turn %d speech ready: %s", turnIndex, dst)
	return dst, nil
}
