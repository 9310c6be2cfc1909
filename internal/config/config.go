package config

import (
	"fmt"
	"strings"
	"time"
)

// Failure policies for the turn scheduler.
const (
	PolicyFailFast       = "fail_fast"
	PolicyDrainThenAbort = "drain_then_abort"
	PolicyBestEffort     = "best_effort"
)

const defaultPrompt = "Summarize the video into a conversation between two people. " +
	"Denote first speaker as 'Person 1' and second speaker as 'Person 2'."

type Config struct {
	Services  ServicesConfig  `yaml:"services"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Speakers  SpeakersConfig  `yaml:"speakers"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Paths     PathsConfig     `yaml:"paths"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServicesConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
	Ingest  IngestConfig  `yaml:"ingest"`
	TTS     TTSConfig     `yaml:"tts"`
	Avatar  AvatarConfig  `yaml:"avatar"`
}

type IngestConfig struct {
	Path         string `yaml:"path"`
	Resolution   string `yaml:"resolution"`
	IncludeAudio *bool  `yaml:"include_audio"`
}

type TTSConfig struct {
	Path           string `yaml:"path"`
	Style          string `yaml:"style"`
	ReferenceAudio string `yaml:"reference_audio"`
}

type AvatarConfig struct {
	Path        string `yaml:"path"`
	AspectRatio string `yaml:"aspect_ratio"`
}

// GeminiConfig configures summarization. UseAudio false only tells the model to
// ignore the audio track; the uploaded video keeps it.
type GeminiConfig struct {
	Model      string   `yaml:"model"`
	APIKeys    []string `yaml:"api_keys"`
	Prompt     string   `yaml:"prompt"`
	FPS        float64  `yaml:"fps"`
	UseAudio   *bool    `yaml:"use_audio"`
	Structured *bool    `yaml:"structured"`
}

type SpeakersConfig struct {
	Labels []string `yaml:"labels"`
}

type SchedulerConfig struct {
	MaxConcurrent int    `yaml:"max_concurrent"`
	FailurePolicy string `yaml:"failure_policy"`
}

type FFmpegConfig struct {
	BinaryPath    string `yaml:"binary_path"`
	FrameRate     int    `yaml:"frame_rate"`
	VideoCodec    string `yaml:"video_codec"`
	Preset        string `yaml:"preset"`
	CRF           int    `yaml:"crf"`
	AudioCodec    string `yaml:"audio_codec"`
	LogLevel      string `yaml:"loglevel"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Temp     string `yaml:"temp"`
	KeepTemp bool   `yaml:"keep_temp"`
}

type OutputConfig struct {
	ScriptDocx bool `yaml:"script_docx"`
}

type WatchConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Services.BaseURL == "" {
		return fmt.Errorf("services.base_url is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (or set GEMINI_API_KEYS)")
	}

	if len(c.Speakers.Labels) == 0 {
		c.Speakers.Labels = []string{"Person 1", "Person 2"}
	}
	if len(c.Speakers.Labels) != 2 {
		return fmt.Errorf("speakers.labels must name exactly two speakers, got %d", len(c.Speakers.Labels))
	}
	first, second := strings.TrimSpace(c.Speakers.Labels[0]), strings.TrimSpace(c.Speakers.Labels[1])
	if first == "" || second == "" || first == second {
		return fmt.Errorf("speakers.labels must be two distinct non-empty labels")
	}

	switch c.Scheduler.FailurePolicy {
	case "":
		c.Scheduler.FailurePolicy = PolicyDrainThenAbort
	case PolicyFailFast, PolicyDrainThenAbort, PolicyBestEffort:
	default:
		return fmt.Errorf("scheduler.failure_policy %q is not one of %s, %s, %s",
			c.Scheduler.FailurePolicy, PolicyFailFast, PolicyDrainThenAbort, PolicyBestEffort)
	}
	if c.Scheduler.MaxConcurrent < 0 {
		return fmt.Errorf("scheduler.max_concurrent must not be negative")
	}
	if c.Scheduler.MaxConcurrent == 0 {
		c.Scheduler.MaxConcurrent = 4
	}

	if c.Services.Timeout == 0 {
		c.Services.Timeout = 10 * time.Minute
	}
	if c.Services.Ingest.Path == "" {
		c.Services.Ingest.Path = "/youtube-to-mp4"
	}
	if c.Services.Ingest.Resolution == "" {
		c.Services.Ingest.Resolution = "highest-available"
	}
	if c.Services.Ingest.IncludeAudio == nil {
		c.Services.Ingest.IncludeAudio = boolPtr(true)
	}
	if c.Services.TTS.Path == "" {
		c.Services.TTS.Path = "/tts"
	}
	if c.Services.TTS.Style == "" {
		c.Services.TTS.Style = "curiosity"
	}
	if c.Services.Avatar.Path == "" {
		c.Services.Avatar.Path = "/portrait-avatar"
	}
	if c.Services.Avatar.AspectRatio == "" {
		c.Services.Avatar.AspectRatio = "16:9"
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Prompt == "" {
		c.Gemini.Prompt = defaultPrompt
	}
	if c.Gemini.FPS == 0 {
		c.Gemini.FPS = 1
	}
	if c.Gemini.UseAudio == nil {
		c.Gemini.UseAudio = boolPtr(true)
	}
	if c.Gemini.Structured == nil {
		c.Gemini.Structured = boolPtr(true)
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.FrameRate == 0 {
		c.FFmpeg.FrameRate = 30
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "fast"
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = 23
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.LogLevel == "" {
		c.FFmpeg.LogLevel = "warning"
	}
	if c.FFmpeg.MaxConcurrent == 0 {
		c.FFmpeg.MaxConcurrent = 2
	}

	if c.Watch.MaxConcurrent <= 0 {
		c.Watch.MaxConcurrent = 1
	}
	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

func boolPtr(b bool) *bool { return &b }
