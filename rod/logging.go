package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Ensure LoggingAccessor implements newsdigest.PageAccessor.
var _ newsdigest.PageAccessor = (*LoggingAccessor)(nil)

// LoggingAccessor wraps a PageAccessor with logging.
type LoggingAccessor struct {
	next   newsdigest.PageAccessor
	logger *slog.Logger
}

// NewLoggingAccessor creates a new LoggingAccessor.
func NewLoggingAccessor(next newsdigest.PageAccessor, logger *slog.Logger) *LoggingAccessor {
	return &LoggingAccessor{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped accessor.
func (a *LoggingAccessor) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		a.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Navigate(ctx, url)
}

// WaitFor logs the wait and delegates to the wrapped accessor.
func (a *LoggingAccessor) WaitFor(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) (elements []newsdigest.Element, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("wait",
			"selector", selector,
			"condition", cond.String(),
			"timeout", timeout,
			"count", len(elements),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.WaitFor(ctx, selector, cond, timeout)
}

// Close delegates to the wrapped accessor.
func (a *LoggingAccessor) Close() error {
	return a.next.Close()
}
