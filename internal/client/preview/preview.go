// Package preview turns a selected image file into a data URI for display.
//
// Reading happens on a separate goroutine; callers receive a Future that
// resolves exactly once.
package preview

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIME = "application/octet-stream"

// Future is a single-shot result of an asynchronous read.
type Future struct {
	done chan struct{}
	uri  string
	err  error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the read completes or ctx ends.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.uri, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Read starts reading file in the background. The read is abandoned when ctx
// is cancelled before it finishes.
func Read(ctx context.Context, file models.FileRef) *Future {
	return ReadThen(ctx, file, nil)
}

// ReadThen is Read with a completion hook. apply runs on the reading
// goroutine before Done is closed, so a caller that waits on the Future
// observes its effects.
func ReadThen(ctx context.Context, file models.FileRef, apply func(uri string, err error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.uri, f.err = readDataURI(ctx, file)
		if apply != nil {
			apply(f.uri, f.err)
		}
	}()
	return f
}

func readDataURI(ctx context.Context, file models.FileRef) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return DataURI(data), nil
}

// DataURI encodes data as data:<mime>;base64,<payload>, sniffing the MIME
// type from the content.
func DataURI(data []byte) string {
	return "data:" + detectMIME(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func detectMIME(data []byte) string {
	if len(data) == 0 {
		return fallbackMIME
	}
	m, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if m = strings.TrimSpace(m); m == "" {
		return fallbackMIME
	}
	return m
}
