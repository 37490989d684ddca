package mock

import (
	"context"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.Translator = (*Translator)(nil)

// Translator is a mock implementation of newsdigest.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text, source, target string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return t.TranslateFn(ctx, text, source, target)
}
