package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Compile-time interface verification.
var _ newsdigest.ArticleExtractor = (*Extractor)(nil)

// Selectors locate an article block and its fields. Field selectors are
// evaluated relative to the block.
type Selectors struct {
	Article string
	Title   string
	Content string
	Image   string
}

// DefaultSelectors returns the selectors for the elpais.com section layout.
func DefaultSelectors() Selectors {
	return Selectors{
		Article: "article.c.c-o.c-d",
		Title:   ".c_t",
		Content: ".c_d",
		Image:   "img",
	}
}

// Extractor extracts article summaries from a section page.
type Extractor struct {
	Selectors   Selectors
	WaitTimeout time.Duration
	Logger      *slog.Logger
}

// NewExtractor creates an Extractor with default selectors and wait window.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		Selectors:   DefaultSelectors(),
		WaitTimeout: newsdigest.DefaultWaitTimeout,
		Logger:      logger,
	}
}

// Extract waits for article blocks and returns up to limit articles in
// document order. Each field falls back to its sentinel independently.
func (e *Extractor) Extract(ctx context.Context, page newsdigest.PageAccessor, limit int) []*newsdigest.Article {
	logger := loggerOrDiscard(e.Logger)
	articles := []*newsdigest.Article{}
	if limit <= 0 {
		return articles
	}

	timeout := e.WaitTimeout
	if timeout <= 0 {
		timeout = newsdigest.DefaultWaitTimeout
	}

	blocks, err := page.WaitFor(ctx, e.Selectors.Article, newsdigest.WaitPresent, timeout)
	if err != nil {
		logger.Error("article blocks not found", "selector", e.Selectors.Article, "error", err)
		return articles
	}
	if len(blocks) == 0 {
		logger.Error("article blocks not found", "selector", e.Selectors.Article)
		return articles
	}
	if len(blocks) > limit {
		blocks = blocks[:limit]
	}

	for i, block := range blocks {
		article := &newsdigest.Article{
			Position: i,
			Title:    extractText(block, e.Selectors.Title, newsdigest.TitleNotAvailable),
			Content:  extractText(block, e.Selectors.Content, newsdigest.ContentNotAvailable),
			ImageURL: extractImageURL(block, e.Selectors.Image),
		}
		if !article.HasTitle() {
			logger.Warn("title not found", "position", i)
		}
		if article.Content == newsdigest.ContentNotAvailable {
			logger.Warn("content not found", "position", i)
		}
		if !article.HasImage() {
			logger.Warn("image not found", "position", i)
		}
		logger.Debug("article extracted", "position", i, "title", article.Title)
		articles = append(articles, article)
	}

	return articles
}

// extractText returns the text of the first element matching selector
// inside block, or fallback when it cannot be read.
func extractText(block newsdigest.Element, selector, fallback string) string {
	el, err := block.Find(selector)
	if err != nil {
		return fallback
	}
	text, err := el.Text()
	if err != nil {
		return fallback
	}
	return text
}

// extractImageURL returns the first srcset candidate of the first image in
// block. An image without srcset has no usable URL.
func extractImageURL(block newsdigest.Element, selector string) string {
	img, err := block.Find(selector)
	if err != nil {
		return ""
	}
	srcset, ok, err := img.Attribute("srcset")
	if err != nil || !ok {
		return ""
	}
	return FirstSrcsetURL(srcset)
}

// FirstSrcsetURL returns the URL of the first candidate in a srcset value.
func FirstSrcsetURL(srcset string) string {
	fields := strings.Fields(srcset)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[0], ",")
}
