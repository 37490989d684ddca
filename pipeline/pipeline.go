// Package pipeline orchestrates a news digest run: it navigates to a
// section page, dismisses the consent dialog, extracts article summaries,
// saves their images, translates their titles, and counts repeated words.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// DefaultURL is the section page scraped when no URL is configured.
const DefaultURL = "https://elpais.com/opinion/"

// Config holds the per-run parameters.
type Config struct {
	URL        string
	Limit      int
	Threshold  int
	SourceLang string
	TargetLang string
}

// DefaultConfig returns the configuration for the opinion section digest.
func DefaultConfig() Config {
	return Config{
		URL:        DefaultURL,
		Limit:      newsdigest.DefaultArticleLimit,
		Threshold:  newsdigest.DefaultRepeatThreshold,
		SourceLang: newsdigest.DefaultSourceLang,
		TargetLang: newsdigest.DefaultTargetLang,
	}
}

// Pipeline runs every stage once, in order, against a single page.
// Runs is optional; when set the finished run is stored.
type Pipeline struct {
	Accessor   newsdigest.PageAccessor
	Consent    newsdigest.ConsentHandler
	Extractor  newsdigest.ArticleExtractor
	Images     newsdigest.ImageFetcher
	ImageStore newsdigest.ImageStore
	Translator newsdigest.Translator
	Runs       newsdigest.RunService
	Logger     *slog.Logger
	Config     Config
}

// Run executes the pipeline. The accessor is closed before Run returns.
//
// Navigation failure returns an ENAVIGATION error and an empty extraction
// returns ENOARTICLES; in both cases the partial run is returned alongside
// the error with State set to StateFailed. All other failures are logged and
// the affected item is dropped.
func (p *Pipeline) Run(ctx context.Context) (run *newsdigest.Run, err error) {
	if p.Accessor == nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "pipeline accessor required")
	}

	logger := loggerOrDiscard(p.Logger)
	cfg := p.Config

	run = &newsdigest.Run{
		SourceURL:    cfg.URL,
		State:        newsdigest.StateInit,
		StartedAt:    time.Now().UTC(),
		Articles:     []*newsdigest.Article{},
		Images:       []newsdigest.SavedImage{},
		Translations: []newsdigest.Translation{},
		Frequencies:  newsdigest.FrequencyReport{},
	}
	logger.Info("pipeline started", "url", cfg.URL, "limit", cfg.Limit)

	defer func() {
		if closeErr := p.Accessor.Close(); closeErr != nil {
			logger.Warn("close accessor", "error", closeErr)
		}
		run.FinishedAt = time.Now().UTC()
		if err != nil {
			run.State = newsdigest.StateFailed
			run.Error = err.Error()
			logger.Error("pipeline failed", "state", run.State, "error", err)
		}
		p.store(ctx, run)
	}()

	if err := p.validate(); err != nil {
		return run, err
	}

	// Navigate
	if err := p.Accessor.Navigate(ctx, cfg.URL); err != nil {
		if newsdigest.ErrorCode(err) != newsdigest.ENAVIGATION {
			err = newsdigest.Errorf(newsdigest.ENAVIGATION, "navigate to %s: %v", cfg.URL, err)
		}
		return run, err
	}
	p.transition(logger, run, newsdigest.StateNavigated)

	// Consent
	if p.Consent != nil {
		if _, err := p.Consent.DismissIfPresent(ctx, p.Accessor); err != nil {
			return run, fmt.Errorf("consent: %w", err)
		}
	}
	p.transition(logger, run, newsdigest.StateConsentResolved)

	// Extract
	run.Articles = p.Extractor.Extract(ctx, p.Accessor, cfg.Limit)
	run.ArticleCount = len(run.Articles)
	if err := ctx.Err(); err != nil {
		return run, err
	}
	p.transition(logger, run, newsdigest.StateExtracted, "articles", len(run.Articles))
	if len(run.Articles) == 0 {
		return run, newsdigest.Errorf(newsdigest.ENOARTICLES, "no articles found at %s", cfg.URL)
	}

	// Images
	run.Images = p.saveImages(ctx, logger, run.Articles)
	p.transition(logger, run, newsdigest.StateImagesSaved, "images", len(run.Images))

	// Translate
	if err := ctx.Err(); err != nil {
		return run, err
	}
	run.Translations = p.translateTitles(ctx, logger, run.Articles)
	p.transition(logger, run, newsdigest.StateTranslated, "translations", len(run.Translations))

	// Analyze
	run.Frequencies = newsdigest.AnalyzeFrequency(run.TranslatedTitles(), cfg.Threshold)
	p.transition(logger, run, newsdigest.StateAnalyzed, "repeated_words", len(run.Frequencies))
	for _, wc := range run.Frequencies {
		logger.Info("repeated word", "word", wc.Word, "count", wc.Count)
	}

	p.transition(logger, run, newsdigest.StateDone)
	return run, nil
}

func (p *Pipeline) validate() error {
	if p.Config.URL == "" {
		return newsdigest.Errorf(newsdigest.EINVALID, "pipeline URL required")
	}
	if p.Extractor == nil {
		return newsdigest.Errorf(newsdigest.EINVALID, "pipeline extractor required")
	}
	if p.Images == nil || p.ImageStore == nil {
		return newsdigest.Errorf(newsdigest.EINVALID, "pipeline image fetcher and store required")
	}
	if p.Translator == nil {
		return newsdigest.Errorf(newsdigest.EINVALID, "pipeline translator required")
	}
	return nil
}

func (p *Pipeline) transition(logger *slog.Logger, run *newsdigest.Run, state newsdigest.State, args ...any) {
	run.State = state
	logger.Info("state changed", append([]any{"state", state}, args...)...)
}

// saveImages downloads the image of every article that has one. Failed
// downloads are logged and omitted.
func (p *Pipeline) saveImages(ctx context.Context, logger *slog.Logger, articles []*newsdigest.Article) []newsdigest.SavedImage {
	images := []newsdigest.SavedImage{}

	if err := p.ImageStore.Prepare(); err != nil {
		logger.Error("prepare image directory", "error", err)
		return images
	}

	for _, a := range articles {
		if !a.HasImage() {
			continue
		}
		dest := p.ImageStore.Path(a.Position)
		if err := p.Images.FetchImage(ctx, a.ImageURL, dest); err != nil {
			logger.Error("image download failed", "position", a.Position, "url", a.ImageURL, "error", err)
			continue
		}
		logger.Info("image saved", "position", a.Position, "path", dest)
		images = append(images, newsdigest.SavedImage{Position: a.Position, URL: a.ImageURL, Path: dest})
	}

	return images
}

// translateTitles translates each extracted title, placeholders included.
// Failed translations are logged and omitted.
func (p *Pipeline) translateTitles(ctx context.Context, logger *slog.Logger, articles []*newsdigest.Article) []newsdigest.Translation {
	translations := []newsdigest.Translation{}
	source, target := p.Config.SourceLang, p.Config.TargetLang
	if source == "" {
		source = newsdigest.DefaultSourceLang
	}
	if target == "" {
		target = newsdigest.DefaultTargetLang
	}

	for _, a := range articles {
		if !a.HasTitle() {
			logger.Warn("translating title placeholder", "position", a.Position)
		}
		text, err := p.Translator.Translate(ctx, a.Title, source, target)
		if err != nil {
			logger.Error("translation failed", "position", a.Position, "error", err)
			continue
		}
		logger.Info("title translated", "position", a.Position, "original", a.Title, "translated", text)
		translations = append(translations, newsdigest.Translation{Position: a.Position, Original: a.Title, Text: text})
	}

	return translations
}

// store persists the run when a RunService is configured. Failures are
// logged only.
func (p *Pipeline) store(ctx context.Context, run *newsdigest.Run) {
	if p.Runs == nil {
		return
	}
	logger := loggerOrDiscard(p.Logger)
	if err := p.Runs.CreateRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Error("store run", "error", err)
		return
	}
	logger.Info("run stored", "id", run.ID)
}
