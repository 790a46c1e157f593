package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Fetcher downloads remote resources to local files with optional
// byte-range resume and a throughput cap.
type Fetcher struct {
	HTTP *http.Client
	// RateLimit caps throughput in MB/s. 0 means unlimited.
	RateLimit float64
	// Progress, when non-nil, receives a percentage indicator. Only used
	// when the total size is known.
	Progress io.Writer
}

const fallbackChunk = 1024 * 1024

// NewFetcher returns a Fetcher with the default transport. There is no
// request timeout: downloads are long-lived and the pipeline is sequential,
// so a stalled transfer stalls the run rather than corrupting it.
func NewFetcher(rateLimit float64) *Fetcher {
	return &Fetcher{HTTP: &http.Client{}, RateLimit: rateLimit}
}

// Fetch writes the resource at url to path. With resume set, the request
// asks the server to skip the bytes already present in path and appends to
// it; a server that ignores the range restarts the file from scratch.
func (f *Fetcher) Fetch(url, path string, resume bool) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	var offset int64
	if resume {
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		offset = fi.Size()
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusOK:
		// Full body, also when the server ignored the range request.
		flags |= os.O_TRUNC
		offset = 0
	default:
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	out, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}

	total := int64(-1)
	if resp.ContentLength >= 0 {
		total = offset + resp.ContentLength
	}
	if err := f.copyThrottled(out, resp.Body, offset, total); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// copyThrottled copies body to out in chunks sized so that each chunk takes
// about one wall-clock second at the configured rate.
func (f *Fetcher) copyThrottled(out *os.File, body io.Reader, written, total int64) error {
	chunk := int64(fallbackChunk)
	limited := f.RateLimit > 0
	if limited {
		chunk = int64(f.RateLimit * 1024 * 1024)
		if chunk < 1 {
			chunk = 1
		}
	}

	for {
		start := time.Now()
		n, err := io.CopyN(out, body, chunk)
		written += n

		if f.Progress != nil && total > 0 {
			fmt.Fprintf(f.Progress, "\r%3d%%", written*100/total)
		}

		if err == io.EOF {
			if f.Progress != nil && total > 0 {
				fmt.Fprintln(f.Progress)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if limited {
			if rest := time.Second - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
}
