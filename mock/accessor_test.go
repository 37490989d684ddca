package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageAccessor_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ newsdigest.PageAccessor = &mock.PageAccessor{}
}

func TestPageAccessor_WaitFor(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WaitForFn", func(t *testing.T) {
		t.Parallel()

		var gotSelector string
		var gotCond newsdigest.WaitCondition
		var gotTimeout time.Duration
		el := &mock.Element{}
		p := &mock.PageAccessor{
			WaitForFn: func(_ context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error) {
				gotSelector, gotCond, gotTimeout = selector, cond, timeout
				return []newsdigest.Element{el}, nil
			},
		}

		els, err := p.WaitFor(context.Background(), "#agree", newsdigest.WaitClickable, time.Second)

		require.NoError(t, err)
		assert.Equal(t, []newsdigest.Element{el}, els)
		assert.Equal(t, "#agree", gotSelector)
		assert.Equal(t, newsdigest.WaitClickable, gotCond)
		assert.Equal(t, time.Second, gotTimeout)
	})
}
