package newsdigest

import "context"

// DefaultArticleLimit is the number of articles extracted per run.
const DefaultArticleLimit = 5

// Sentinels substituted for fields that could not be extracted.
const (
	TitleNotAvailable   = "Title not available"
	ContentNotAvailable = "Content not available"
)

// Article is a summary extracted from one article block on a section page.
// Fields that could not be extracted carry a sentinel instead of failing the
// whole article.
type Article struct {
	// Position is the zero-based index of the block in document order.
	Position int    `json:"position"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	// ImageURL is empty when the block has no usable image.
	ImageURL string `json:"imageUrl,omitempty"`

	// Changed is set by RunService.CreateRun when no article of the latest
	// earlier run for the same source had the same content.
	Changed bool `json:"changed,omitempty"`
}

// HasTitle reports whether the title was extracted.
func (a *Article) HasTitle() bool {
	return a.Title != TitleNotAvailable
}

// HasImage reports whether the article carries an image URL.
func (a *Article) HasImage() bool {
	return a.ImageURL != ""
}

// ArticleExtractor extracts article summaries from the current page.
type ArticleExtractor interface {
	// Extract returns up to limit articles in document order.
	// It never fails: a missing article list yields an empty slice.
	Extract(ctx context.Context, page PageAccessor, limit int) []*Article
}

// ConsentHandler dismisses an optional consent dialog.
type ConsentHandler interface {
	// DismissIfPresent reports whether a dialog was found and dismissed.
	// Absence of the dialog is not an error.
	DismissIfPresent(ctx context.Context, page PageAccessor) (bool, error)
}
