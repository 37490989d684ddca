package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Consent dialog defaults for the Didomi banner used by elpais.com.
const (
	DefaultConsentSelector = "#didomi-notice-agree-button"
	DefaultConsentTimeout  = 5 * time.Second
)

// Compile-time interface verification.
var _ newsdigest.ConsentHandler = (*ConsentHandler)(nil)

// ConsentHandler dismisses a cookie consent dialog when one is shown.
type ConsentHandler struct {
	Selector string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewConsentHandler creates a ConsentHandler with default selector and timeout.
func NewConsentHandler(logger *slog.Logger) *ConsentHandler {
	return &ConsentHandler{
		Selector: DefaultConsentSelector,
		Timeout:  DefaultConsentTimeout,
		Logger:   logger,
	}
}

// DismissIfPresent waits for the accept button to become clickable and
// clicks it. A missing dialog or a failed click is logged and reported as
// false with a nil error; only context cancellation is returned.
func (h *ConsentHandler) DismissIfPresent(ctx context.Context, page newsdigest.PageAccessor) (bool, error) {
	logger := loggerOrDiscard(h.Logger)

	selector := h.Selector
	if selector == "" {
		selector = DefaultConsentSelector
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultConsentTimeout
	}

	elements, err := page.WaitFor(ctx, selector, newsdigest.WaitClickable, timeout)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if newsdigest.ErrorCode(err) == newsdigest.ETIMEOUT {
			logger.Info("no consent dialog", "selector", selector)
		} else {
			logger.Warn("consent dialog lookup failed", "selector", selector, "error", err)
		}
		return false, nil
	}
	if len(elements) == 0 {
		logger.Info("no consent dialog", "selector", selector)
		return false, nil
	}

	if err := elements[0].Click(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		logger.Warn("consent click failed", "selector", selector, "error", err)
		return false, nil
	}

	logger.Info("consent dialog dismissed", "selector", selector)
	return true, nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
