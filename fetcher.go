package newsdigest

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations do not execute JavaScript; they back static page access.
type Fetcher interface {
	// Fetch retrieves the HTML at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
