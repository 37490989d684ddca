package newsdigest

import (
	"context"
	"time"
)

// State is a pipeline stage.
type State string

// Pipeline states in the order they are reached. StateFailed is terminal
// and reachable only through navigation failure or an empty extraction.
const (
	StateInit            State = "INIT"
	StateNavigated       State = "NAVIGATED"
	StateConsentResolved State = "CONSENT_RESOLVED"
	StateExtracted       State = "EXTRACTED"
	StateImagesSaved     State = "IMAGES_SAVED"
	StateTranslated      State = "TRANSLATED"
	StateAnalyzed        State = "ANALYZED"
	StateDone            State = "DONE"
	StateFailed          State = "FAILED"
)

// Run is the outcome of one pipeline execution.
type Run struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"sourceUrl"`
	State      State     `json:"state"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// ArticleCount is the number of extracted articles. It is set on
	// summaries, which carry no article bodies.
	ArticleCount int `json:"articleCount"`

	Articles     []*Article      `json:"articles"`
	Images       []SavedImage    `json:"images"`
	Translations []Translation   `json:"translations"`
	Frequencies  FrequencyReport `json:"frequencies"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	if r.State == "" {
		return Errorf(EINVALID, "run state required")
	}
	return nil
}

// ChangedArticles returns the number of articles marked Changed.
func (r *Run) ChangedArticles() int {
	n := 0
	for _, a := range r.Articles {
		if a.Changed {
			n++
		}
	}
	return n
}

// TranslatedTitles returns the translated titles in article order.
func (r *Run) TranslatedTitles() []string {
	titles := make([]string, 0, len(r.Translations))
	for _, tr := range r.Translations {
		titles = append(titles, tr.Text)
	}
	return titles
}

// RunService persists pipeline runs.
type RunService interface {
	// CreateRun stores a finished run and assigns its ID. Articles whose
	// content did not appear in the latest earlier run with articles for the
	// same source URL are marked Changed.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with all of its articles.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves run summaries, most recent first.
	// Summaries do not include articles, translations, or frequencies.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
