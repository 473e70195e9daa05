// Package notes publishes rendered reports to a persistent destination:
// an Apple Notes note driven through osascript, or a plain file on
// platforms without the Notes app.
package notes

import (
	"context"
	"fmt"
	"os"
)

// Publisher appends a rendered report to a persistent destination.
type Publisher interface {
	Publish(ctx context.Context, content string) error

	// Describe names the destination for logs and dry runs.
	Describe() string
}

// FilePublisher appends reports to a local file, creating it on first use.
type FilePublisher struct {
	Path string
}

func (p *FilePublisher) Publish(_ context.Context, content string) error {
	f, err := os.OpenFile(p.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("notes: opening %s: %w", p.Path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("notes: writing %s: %w", p.Path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("notes: closing %s: %w", p.Path, err)
	}

	return nil
}

func (p *FilePublisher) Describe() string {
	return "file " + p.Path
}
