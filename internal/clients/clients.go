// Package clients talks to the remote media services: video ingestion,
// speech synthesis and avatar animation. Every call writes its output to a local file.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/config"
	"github.com/nguyentantai21042004/dialogue-flow/internal/logger"
)

type HTTP struct {
	c      *http.Client
	cfg    config.ServicesConfig
	logger logger.Logger
}

func NewHTTP(cfg config.ServicesConfig, log logger.Logger) *HTTP {
	return &HTTP{
		c:      &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: log,
	}
}

// outputRef is returned by services that host their output instead of streaming it.
type outputRef struct {
	URL string `json:"url"`
}

func (h *HTTP) endpoint(path string) string {
	return strings.TrimRight(h.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (h *HTTP) do(req *http.Request, service, dst string) error {
	if h.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", h.cfg.APIKey)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %s", service, resp.Status, strings.TrimSpace(string(body)))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var ref outputRef
		if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
			return fmt.Errorf("%s decode: %w", service, err)
		}
		if ref.URL == "" {
			return fmt.Errorf("%s: response has no output url", service)
		}
		return h.fetch(req.Context(), service, ref.URL, dst)
	}

	return writeBody(resp.Body, dst)
}

// fetch downloads a hosted output file to dst.
func (h *HTTP) fetch(ctx context.Context, service, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return fmt.Errorf("%s fetch output: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s fetch output %s: %s", service, url, resp.Status)
	}
	return writeBody(resp.Body, dst)
}

func writeBody(r io.Reader, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return f.Close()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
