package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

type IngestReq struct {
	URL          string `json:"url"`
	Resolution   string `json:"resolution"`
	IncludeAudio bool   `json:"include_audio"`
}

// Download fetches the source video into workDir and returns its local path.
// Any failure is a retrieval error.
func (h *HTTP) Download(ctx context.Context, sourceURL, workDir string) (string, error) {
	b, _ := json.Marshal(IngestReq{
		URL:          sourceURL,
		Resolution:   h.cfg.Ingest.Resolution,
		IncludeAudio: h.cfg.Ingest.IncludeAudio == nil || *h.cfg.Ingest.IncludeAudio,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.cfg.Ingest.Path), bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrRetrieval, err)
	}
	req.Header.Set("Content-Type", "application/json")

	dst := filepath.Join(workDir, "source.mp4")
	h.logger.Info(ctx, "Downloading source video: %s", sourceURL)

	if err := h.do(req, "ingest", dst); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errs.ErrRetrieval, sourceURL, err)
	}

	h.logger.Info(ctx, "Source video downloaded: %s", dst)
	return dst, nil
}
