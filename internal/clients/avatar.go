package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

// Animate drives the profile's reference image with speechPath and writes the
// raw clip to workDir/raw_<turn>.mp4. A reference image given as a URL is passed by reference.
func (h *HTTP) Animate(ctx context.Context, turnIndex int, profile speaker.Profile, speechPath, workDir string) (string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	if isURL(profile.ReferenceImage) {
		if err := w.WriteField("source_image_url", profile.ReferenceImage); err != nil {
			return "", err
		}
	} else if err := attachFile(w, "source_image", profile.ReferenceImage); err != nil {
		return "", err
	}
	if err := attachFile(w, "driving_audio", speechPath); err != nil {
		return "", err
	}
	if err := w.WriteField("aspect_ratio", h.cfg.Avatar.AspectRatio); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(h.cfg.Avatar.Path), &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	dst := filepath.Join(workDir, fmt.Sprintf("raw_%04d.mp4", turnIndex))
	if err := h.do(req, "avatar", dst); err != nil {
		return "", err
	}

	h.logger.Debug(ctx, "Turn %d avatar clip ready: %s", turnIndex, dst)
	return dst, nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	fw, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	_, err = io.Copy(fw, fd)
	return err
}
