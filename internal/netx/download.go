// Package netx streams HTTP resources to local files.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/invoicextractor/internal/filex"
)

// ChunkSize is the read buffer used while streaming a download.
const ChunkSize = 8192

// ProgressSink observes download progress. Progress receives a percentage in
// [0, 100]. Implementations must return quickly; a panicking sink is
// recovered and ignored.
type ProgressSink interface {
	Progress(percent float64)
}

// Download streams url into dst. The parent directory is created when
// missing and an existing dst is truncated and overwritten.
//
// sink, if not nil, is notified every `every` chunks received (independently
// of how many bytes each chunk carried) and once more with 100 when the body
// has been fully written. Intermediate reports are only made when the server
// announced a Content-Length.
//
// A failed download may leave a truncated dst behind.
func Download(ctx context.Context, c *http.Client, url, dst string, sink ProgressSink, every int) (int64, error) {
	if c == nil {
		c = http.DefaultClient
	}

	if err := filex.EnsureDir(filepath.Dir(dst)); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("download failed: %s", resp.Status)
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	total := resp.ContentLength
	buf := make([]byte, ChunkSize)

	var written, chunks int64
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			chunks++

			if every > 0 && chunks%int64(every) == 0 && total > 0 {
				notify(sink, float64(written)/float64(total)*100)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return written, rerr
		}
	}

	if err := f.Close(); err != nil {
		return written, err
	}
	notify(sink, 100)
	return written, nil
}

func notify(sink ProgressSink, percent float64) {
	if sink == nil {
		return
	}
	defer func() { _ = recover() }()
	sink.Progress(percent)
}
