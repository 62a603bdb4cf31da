package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ProgressSink receives progress updates from the task executor.
// Implementations need not be safe for concurrent use: RunPool serializes
// every call behind its own mutex.
type ProgressSink interface {
	AdvanceOne()
	SetCurrentLabel(text string)
}

// Task is a single install unit: download url, verify it against
// ExpectedDigest if present, and write it to Destination.
type Task struct {
	URL            string
	ExpectedDigest *string
	Destination    string
	Label          string
}

// Execute implements the cache-check / fetch / write sequence. A present
// digest that matches the file already on disk is a no-op; an absent
// digest always re-downloads, since there is nothing to prove a cached
// copy still matches upstream.
func (t Task) Execute(ctx context.Context, client *http.Client) error {
	if t.ExpectedDigest != nil {
		if existing, err := os.ReadFile(t.Destination); err == nil {
			if sha1Hex(existing) == *t.ExpectedDigest {
				return nil
			}
		}
	}

	data, err := FetchVerified(ctx, client, t.URL, t.ExpectedDigest)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(t.Destination), 0o755); err != nil {
		return fmt.Errorf("creating parent directories for %q: %w", t.Destination, err)
	}
	if err := os.WriteFile(t.Destination, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", t.Destination, err)
	}
	return nil
}

// Report advances the progress sink and sets the current label. It is
// separate from Execute so the executor reports progress even when
// Execute was a cache hit.
func (t Task) Report(sink ProgressSink) {
	if sink == nil {
		return
	}
	sink.AdvanceOne()
	sink.SetCurrentLabel(t.Label)
}
