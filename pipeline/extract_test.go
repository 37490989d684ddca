package pipeline_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/goquery"
	"github.com/fwojciec/newsdigest/mock"
	"github.com/fwojciec/newsdigest/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleBlock renders one elpais-style article block. Empty arguments omit
// the corresponding element.
func articleBlock(title, content, imgAttrs string) string {
	var b strings.Builder
	b.WriteString(`<article class="c c-o c-d">`)
	if imgAttrs != "" {
		fmt.Fprintf(&b, `<figure><img %s></figure>`, imgAttrs)
	}
	if title != "" {
		fmt.Fprintf(&b, `<h2 class="c_t"><a href="#">%s</a></h2>`, title)
	}
	if content != "" {
		fmt.Fprintf(&b, `<p class="c_d">%s</p>`, content)
	}
	b.WriteString(`</article>`)
	return b.String()
}

func page(blocks ...string) string {
	return "<html><body><main>" + strings.Join(blocks, "\n") + "</main></body></html>"
}

func newStaticPage(t *testing.T, html string) newsdigest.PageAccessor {
	t.Helper()
	accessor, err := goquery.NewAccessorFromHTML(html)
	require.NoError(t, err)
	return accessor
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts all fields in document order", func(t *testing.T) {
		t.Parallel()

		html := page(
			articleBlock("Primero", "Uno", `srcset="https://img.example.com/1.jpg 414w, https://img.example.com/1b.jpg 828w"`),
			articleBlock("Segundo", "Dos", `srcset="https://img.example.com/2.jpg 414w"`),
		)

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, html), 5)

		require.Len(t, articles, 2)
		assert.Equal(t, &newsdigest.Article{Position: 0, Title: "Primero", Content: "Uno", ImageURL: "https://img.example.com/1.jpg"}, articles[0])
		assert.Equal(t, &newsdigest.Article{Position: 1, Title: "Segundo", Content: "Dos", ImageURL: "https://img.example.com/2.jpg"}, articles[1])
	})

	t.Run("caps result at limit", func(t *testing.T) {
		t.Parallel()

		var blocks []string
		for i := range 8 {
			blocks = append(blocks, articleBlock(fmt.Sprintf("T%d", i), "c", ""))
		}

		for _, limit := range []int{0, 1, 5, 8, 10} {
			articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, page(blocks...)), limit)
			assert.LessOrEqual(t, len(articles), limit, "limit %d", limit)
			assert.Len(t, articles, min(limit, 8), "limit %d", limit)
		}
	})

	t.Run("missing fields fall back independently", func(t *testing.T) {
		t.Parallel()

		html := page(
			articleBlock("", "Solo contenido", `srcset="https://img.example.com/a.jpg 1x"`),
			articleBlock("Solo titulo", "", ""),
		)

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, html), 5)

		require.Len(t, articles, 2)
		assert.Equal(t, newsdigest.TitleNotAvailable, articles[0].Title)
		assert.Equal(t, "Solo contenido", articles[0].Content)
		assert.Equal(t, "https://img.example.com/a.jpg", articles[0].ImageURL)

		assert.Equal(t, "Solo titulo", articles[1].Title)
		assert.Equal(t, newsdigest.ContentNotAvailable, articles[1].Content)
		assert.False(t, articles[1].HasImage())
	})

	t.Run("image without srcset yields no URL", func(t *testing.T) {
		t.Parallel()

		html := page(articleBlock("T", "C", `src="https://img.example.com/lazy.jpg"`))

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, html), 5)

		require.Len(t, articles, 1)
		assert.Empty(t, articles[0].ImageURL)
		assert.False(t, articles[0].HasImage())
	})

	t.Run("image without source yields no URL", func(t *testing.T) {
		t.Parallel()

		html := page(articleBlock("T", "C", `alt="no source"`))

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, html), 5)

		require.Len(t, articles, 1)
		assert.Empty(t, articles[0].ImageURL)
	})

	t.Run("returns empty slice when no blocks match", func(t *testing.T) {
		t.Parallel()

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), newStaticPage(t, page()), 5)

		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})

	t.Run("passes wait window to accessor", func(t *testing.T) {
		t.Parallel()

		var gotTimeout time.Duration
		var gotCond newsdigest.WaitCondition
		accessor := &mock.PageAccessor{
			WaitForFn: func(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error) {
				gotTimeout, gotCond = timeout, cond
				return nil, newsdigest.Errorf(newsdigest.ETIMEOUT, "timed out")
			},
		}

		e := pipeline.NewExtractor(nil)
		e.WaitTimeout = 3 * time.Second
		articles := e.Extract(context.Background(), accessor, 5)

		assert.Empty(t, articles)
		assert.Equal(t, 3*time.Second, gotTimeout)
		assert.Equal(t, newsdigest.WaitPresent, gotCond)
	})

	t.Run("field read errors yield sentinels", func(t *testing.T) {
		t.Parallel()

		broken := &mock.Element{
			TextFn: func() (string, error) { return "", fmt.Errorf("stale element") },
			AttributeFn: func(name string) (string, bool, error) {
				return "", false, fmt.Errorf("stale element")
			},
		}
		block := &mock.Element{
			FindFn: func(selector string) (newsdigest.Element, error) { return broken, nil },
		}
		accessor := &mock.PageAccessor{
			WaitForFn: func(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error) {
				return []newsdigest.Element{block}, nil
			},
		}

		articles := pipeline.NewExtractor(nil).Extract(context.Background(), accessor, 5)

		require.Len(t, articles, 1)
		assert.Equal(t, newsdigest.TitleNotAvailable, articles[0].Title)
		assert.Equal(t, newsdigest.ContentNotAvailable, articles[0].Content)
		assert.Empty(t, articles[0].ImageURL)
	})
}

func TestFirstSrcsetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		srcset string
		want   string
	}{
		{"single candidate", "https://a.example/x.jpg 414w", "https://a.example/x.jpg"},
		{"multiple candidates", "https://a.example/x.jpg 414w, https://a.example/y.jpg 828w", "https://a.example/x.jpg"},
		{"url only", "https://a.example/x.jpg", "https://a.example/x.jpg"},
		{"trailing comma", "https://a.example/x.jpg, https://a.example/y.jpg", "https://a.example/x.jpg"},
		{"leading whitespace", "   https://a.example/x.jpg 1x", "https://a.example/x.jpg"},
		{"empty", "", ""},
		{"whitespace only", "  \n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pipeline.FirstSrcsetURL(tt.srcset))
		})
	}
}
