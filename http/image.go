package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/fs"
)

// DefaultImageTimeout is the default timeout for a single image request.
const DefaultImageTimeout = 30 * time.Second

// DefaultRetryDelays returns the backoff delays for image retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// Ensure ImageFetcher implements newsdigest.ImageFetcher at compile time.
var _ newsdigest.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads images over HTTP and writes them to disk.
// Transport errors, 429 and 5xx responses are retried; other failures are not.
type ImageFetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	limiter     *DomainLimiter
	retryDelays []time.Duration
}

// ImageOption configures an ImageFetcher.
type ImageOption func(*ImageFetcher)

// WithImageTimeout sets the timeout for a single image request.
func WithImageTimeout(d time.Duration) ImageOption {
	return func(f *ImageFetcher) {
		f.timeout = d
	}
}

// WithImageUserAgent sets the User-Agent header sent with image requests.
func WithImageUserAgent(ua string) ImageOption {
	return func(f *ImageFetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per host. Zero disables limiting.
func WithRateLimit(rps float64) ImageOption {
	return func(f *ImageFetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = NewDomainLimiter(rps)
	}
}

// WithRetryDelays sets the delays between attempts. An empty slice disables
// retries. Defaults to DefaultRetryDelays().
func WithRetryDelays(delays []time.Duration) ImageOption {
	return func(f *ImageFetcher) {
		f.retryDelays = delays
	}
}

// NewImageFetcher creates a new ImageFetcher.
func NewImageFetcher(opts ...ImageOption) *ImageFetcher {
	f := &ImageFetcher{
		timeout:     DefaultImageTimeout,
		userAgent:   DefaultUserAgent,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchImage downloads rawURL and writes the body to dest.
// dest is replaced only after a 2xx response body was fully received.
func (f *ImageFetcher) FetchImage(ctx context.Context, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return newsdigest.Errorf(newsdigest.EINVALID, "invalid image URL %q", rawURL)
	}

	maxAttempts := len(f.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}

		lastErr = f.fetchOnce(ctx, rawURL, dest)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if newsdigest.ErrorCode(lastErr) != newsdigest.EUNAVAILABLE {
			return lastErr
		}

		// Don't wait after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return lastErr
}

func (f *ImageFetcher) fetchOnce(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return newsdigest.Errorf(newsdigest.EINVALID, "invalid image request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return newsdigest.Errorf(newsdigest.EUNAVAILABLE, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return statusError(resp.StatusCode, rawURL)
	}

	if _, err := fs.WriteFileAtomic(dest, resp.Body); err != nil {
		return fmt.Errorf("saving %s: %w", dest, err)
	}
	return nil
}

// statusError classifies a non-2xx response.
func statusError(status int, rawURL string) error {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return newsdigest.Errorf(newsdigest.ENOTFOUND, "HTTP %d for %s", status, rawURL)
	case status == http.StatusTooManyRequests || status >= 500:
		return newsdigest.Errorf(newsdigest.EUNAVAILABLE, "HTTP %d for %s", status, rawURL)
	default:
		return newsdigest.Errorf(newsdigest.EINTERNAL, "HTTP %d for %s", status, rawURL)
	}
}
