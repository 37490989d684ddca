// Package slog provides logging decorators for newsdigest services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Ensure LoggingTranslator implements newsdigest.Translator.
var _ newsdigest.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with debug logging.
type LoggingTranslator struct {
	next   newsdigest.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next newsdigest.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the call.
func (t *LoggingTranslator) Translate(ctx context.Context, text, source, target string) (translated string, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("translate",
			"source", source,
			"target", target,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text, source, target)
}
