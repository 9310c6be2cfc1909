package processor

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRequest reads a YAML request file.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}

	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("parse request %s: %w", path, err)
	}
	return req, nil
}

// ProcessFile runs the request in requestPath and renames the file to
// <name>.done or <name>.failed afterwards.
func (p *implProcessor) ProcessFile(ctx context.Context, requestPath string) error {
	req, err := LoadRequest(requestPath)
	if err != nil {
		p.markRequest(ctx, requestPath, ".failed")
		return err
	}

	if _, err := p.Process(ctx, req); err != nil {
		p.markRequest(ctx, requestPath, ".failed")
		return err
	}

	p.markRequest(ctx, requestPath, ".done")
	return nil
}
