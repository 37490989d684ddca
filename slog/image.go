package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Ensure LoggingImageFetcher implements newsdigest.ImageFetcher.
var _ newsdigest.ImageFetcher = (*LoggingImageFetcher)(nil)

// LoggingImageFetcher wraps an ImageFetcher with debug logging.
type LoggingImageFetcher struct {
	next   newsdigest.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next newsdigest.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage delegates to the wrapped fetcher and logs the download.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url, dest string) (err error) {
	defer func(begin time.Time) {
		f.logger.Debug("image download",
			"url", url,
			"dest", dest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url, dest)
}
