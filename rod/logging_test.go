package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/mock"
	"github.com/fwojciec/newsdigest/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingAccessor_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("logs url and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageAccessor{
			NavigateFn: func(context.Context, string) error { return nil },
		}

		a := rod.NewLoggingAccessor(inner, debugLogger(&buf))
		err := a.Navigate(context.Background(), "https://elpais.com/opinion/")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=navigate")
		assert.Contains(t, output, "url=https://elpais.com/opinion/")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs and returns error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageAccessor{
			NavigateFn: func(context.Context, string) error { return errors.New("net::ERR_NAME_NOT_RESOLVED") },
		}

		a := rod.NewLoggingAccessor(inner, debugLogger(&buf))
		err := a.Navigate(context.Background(), "https://invalid.example")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "ERR_NAME_NOT_RESOLVED")
	})
}

func TestLoggingAccessor_WaitFor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.PageAccessor{
		WaitForFn: func(context.Context, string, newsdigest.WaitCondition, time.Duration) ([]newsdigest.Element, error) {
			return []newsdigest.Element{&mock.Element{}, &mock.Element{}}, nil
		},
	}

	a := rod.NewLoggingAccessor(inner, debugLogger(&buf))
	els, err := a.WaitFor(context.Background(), "article", newsdigest.WaitPresent, 20*time.Second)

	require.NoError(t, err)
	assert.Len(t, els, 2)
	output := buf.String()
	assert.Contains(t, output, "selector=article")
	assert.Contains(t, output, "condition=present")
	assert.Contains(t, output, "count=2")
	assert.Contains(t, output, "timeout=20s")
}

func TestLoggingAccessor_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.PageAccessor{CloseFn: func() error {
		closed = true
		return nil
	}}

	a := rod.NewLoggingAccessor(inner, slog.New(slog.DiscardHandler))

	require.NoError(t, a.Close())
	assert.True(t, closed)
}
