package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsdigest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsdigest.RunService = (*RunService)(nil)

// RunService implements newsdigest.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// HashContent computes the xxHash of content as a hex string.
// Equal hashes across runs mean an article body did not change.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// CreateRun stores a run with its articles, images, translations, and
// word counts in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *newsdigest.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, state, error, article_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, run.SourceURL, string(run.State), run.Error, len(run.Articles),
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	previous, err := previousHashes(ctx, tx, id, run.SourceURL, run.StartedAt)
	if err != nil {
		return err
	}

	for _, a := range run.Articles {
		hash := HashContent(a.Content)
		a.Changed = !previous[hash]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO articles (run_id, position, title, content, content_hash, image_url, changed)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, a.Position, a.Title, a.Content, hash, a.ImageURL, a.Changed); err != nil {
			return err
		}
	}

	for _, img := range run.Images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO images (run_id, position, url, path) VALUES (?, ?, ?, ?)
		`, id, img.Position, img.URL, img.Path); err != nil {
			return err
		}
	}

	for _, tr := range run.Translations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO translations (run_id, position, original, text) VALUES (?, ?, ?, ?)
		`, id, tr.Position, tr.Original, tr.Text); err != nil {
			return err
		}
	}

	for i, wc := range run.Frequencies {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO word_counts (run_id, ordinal, word, count) VALUES (?, ?, ?, ?)
		`, id, i, wc.Word, wc.Count); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	run.ID = id
	run.ArticleCount = len(run.Articles)
	return nil
}

// previousHashes returns the content hashes of the latest run other than
// runID with articles for sourceURL that started no later than before. The
// set is empty when there is no such run.
func previousHashes(ctx context.Context, tx *sql.Tx, runID, sourceURL string, before time.Time) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT content_hash FROM articles
		WHERE run_id = (
			SELECT id FROM runs
			WHERE id != ? AND source_url = ? AND article_count > 0 AND started_at <= ?
			ORDER BY started_at DESC, rowid DESC
			LIMIT 1
		)
	`, runID, sourceURL, before.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]bool)
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		hashes[hash] = true
	}
	return hashes, rows.Err()
}

// FindRunByID retrieves a run with all of its details.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsdigest.Run, error) {
	var run newsdigest.Run
	var state, startedAt, finishedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, state, error, article_count, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SourceURL, &state, &run.Error, &run.ArticleCount, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, newsdigest.Errorf(newsdigest.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	run.State = newsdigest.State(state)

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	if run.Articles, err = s.findArticles(ctx, id); err != nil {
		return nil, err
	}
	if run.Images, err = s.findImages(ctx, id); err != nil {
		return nil, err
	}
	if run.Translations, err = s.findTranslations(ctx, id); err != nil {
		return nil, err
	}
	if run.Frequencies, err = s.findWordCounts(ctx, id); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves run summaries, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter newsdigest.RunFilter) ([]*newsdigest.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, state, error, article_count, started_at, finished_at FROM runs WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	if filter.Limit <= 0 && filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*newsdigest.Run
	for rows.Next() {
		var run newsdigest.Run
		var state, startedAt, finishedAt string
		var articleCount int

		if err := rows.Scan(&run.ID, &run.SourceURL, &state, &run.Error, &articleCount, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.State = newsdigest.State(state)
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
		run.ArticleCount = articleCount

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func (s *RunService) findArticles(ctx context.Context, runID string) ([]*newsdigest.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, title, content, image_url, changed FROM articles WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*newsdigest.Article
	for rows.Next() {
		var a newsdigest.Article
		if err := rows.Scan(&a.Position, &a.Title, &a.Content, &a.ImageURL, &a.Changed); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

func (s *RunService) findImages(ctx context.Context, runID string) ([]newsdigest.SavedImage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, url, path FROM images WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []newsdigest.SavedImage
	for rows.Next() {
		var img newsdigest.SavedImage
		if err := rows.Scan(&img.Position, &img.URL, &img.Path); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *RunService) findTranslations(ctx context.Context, runID string) ([]newsdigest.Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, original, text FROM translations WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []newsdigest.Translation
	for rows.Next() {
		var tr newsdigest.Translation
		if err := rows.Scan(&tr.Position, &tr.Original, &tr.Text); err != nil {
			return nil, err
		}
		translations = append(translations, tr)
	}
	return translations, rows.Err()
}

func (s *RunService) findWordCounts(ctx context.Context, runID string) (newsdigest.FrequencyReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, count FROM word_counts WHERE run_id = ? ORDER BY ordinal
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := newsdigest.FrequencyReport{}
	for rows.Next() {
		var wc newsdigest.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, err
		}
		report = append(report, wc)
	}
	return report, rows.Err()
}
