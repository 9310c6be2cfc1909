package watcher

import "context"

// Watcher defines the interface for request directory monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles a new request file
type EventHandler func(ctx context.Context, filePath string) error
