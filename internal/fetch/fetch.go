// Package fetch resolves a document reference into raw bytes.
// A reference is either an http(s) URL or a local file path.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBytes caps the size of a downloaded document (50 MB).
const DefaultMaxBytes int64 = 50 << 20

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeExtractor/1.0)"

// Result holds the downloaded document.
type Result struct {
	Data        []byte
	ContentType string
	Source      string
}

// DownloadError is returned for every failure to obtain a document:
// a bad reference, a timeout, an oversize body, a network failure or a non-200 status.
type DownloadError struct {
	Ref        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *DownloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("download error for %s: %s: %v", e.Ref, e.Message, e.Cause)
	}
	return fmt.Sprintf("download error for %s: %s", e.Ref, e.Message)
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the failure was a deadline being hit.
func (e *DownloadError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Headers   map[string]string
	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		MaxBytes:  DefaultMaxBytes,
		UserAgent: DefaultUserAgent,
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o == nil {
		return out
	}
	if o.Timeout > 0 {
		out.Timeout = o.Timeout
	}
	if o.MaxBytes > 0 {
		out.MaxBytes = o.MaxBytes
	}
	if o.UserAgent != "" {
		out.UserAgent = o.UserAgent
	}
	out.Headers = o.Headers
	out.Client = o.Client
	return out
}

// IsRemote reports whether ref should be downloaded rather than read from disk.
func IsRemote(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Document downloads ref, or reads it from disk when it is not an http(s) URL.
func Document(ctx context.Context, ref string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &DownloadError{Ref: ref, Message: "empty document reference"}
	}
	if IsRemote(ref) {
		return URL(ctx, ref, opts)
	}
	return File(ref, opts)
}

// URL downloads a document over HTTP(S).
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &DownloadError{Ref: urlStr, Message: "invalid URL", Cause: err}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &DownloadError{Ref: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &DownloadError{Ref: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{
			Ref:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	if resp.ContentLength > opts.MaxBytes {
		return nil, tooLarge(urlStr, opts.MaxBytes)
	}

	data, err := readLimited(resp.Body, opts.MaxBytes)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, tooLarge(urlStr, opts.MaxBytes)
		}
		return nil, &DownloadError{Ref: urlStr, Message: "failed to read response body", Cause: err}
	}

	return &Result{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Source:      urlStr,
	}, nil
}

// File reads a local document, enforcing the same size cap as downloads.
func File(path string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(path)
	if err != nil {
		return nil, &DownloadError{Ref: path, Message: "failed to stat file", Cause: err}
	}
	if info.IsDir() {
		return nil, &DownloadError{Ref: path, Message: "path is a directory"}
	}
	if info.Size() > opts.MaxBytes {
		return nil, tooLarge(path, opts.MaxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DownloadError{Ref: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, opts.MaxBytes)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, tooLarge(path, opts.MaxBytes)
		}
		return nil, &DownloadError{Ref: path, Message: "failed to read file", Cause: err}
	}
	return &Result{Data: data, Source: path}, nil
}

var errTooLarge = errors.New("document exceeds size limit")

// readLimited reads at most limit bytes, failing if the source holds more.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errTooLarge
	}
	return data, nil
}

func tooLarge(ref string, limit int64) *DownloadError {
	return &DownloadError{Ref: ref, Message: fmt.Sprintf("document larger than %d bytes", limit), Cause: errTooLarge}
}
