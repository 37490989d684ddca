package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Pipeline *pipeline.Pipeline
	Runs     newsdigest.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"NEWSDIGEST_DB" help:"SQLite database for run history (disabled when empty)"`
	LogLevel string `name:"log-level" env:"NEWSDIGEST_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level (debug, info, warn, error)"`

	Run  RunCmd  `cmd:"" default:"withargs" help:"Scrape, translate, and analyze a news section (default)"`
	Runs RunsCmd `cmd:"" help:"List stored runs"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL            string        `name:"url" env:"NEWSDIGEST_URL" default:"https://elpais.com/opinion/" help:"Section page to scrape"`
	Limit          int           `short:"n" env:"NEWSDIGEST_LIMIT" default:"5" help:"Number of articles to extract"`
	Threshold      int           `env:"NEWSDIGEST_THRESHOLD" default:"2" help:"Report words occurring more than this many times"`
	SourceLang     string        `name:"source-lang" env:"NEWSDIGEST_SOURCE_LANG" default:"es" help:"Language of the article titles"`
	TargetLang     string        `name:"target-lang" env:"NEWSDIGEST_TARGET_LANG" default:"en" help:"Language to translate titles into"`
	Translator     string        `env:"NEWSDIGEST_TRANSLATOR" enum:"google,gemini,openai" default:"google" help:"Translation backend (google, gemini, openai)"`
	Model          string        `env:"NEWSDIGEST_MODEL" help:"Model for the gemini and openai backends"`
	ImageDir       string        `name:"image-dir" env:"NEWSDIGEST_IMAGE_DIR" default:"article_images" help:"Directory for downloaded images"`
	ImageRate      float64       `name:"image-rate" env:"NEWSDIGEST_IMAGE_RATE" default:"2" help:"Image requests per second per host (0 disables limiting)"`
	WaitTimeout    time.Duration `name:"wait-timeout" env:"NEWSDIGEST_WAIT_TIMEOUT" default:"20s" help:"How long to wait for article blocks"`
	ConsentTimeout time.Duration `name:"consent-timeout" env:"NEWSDIGEST_CONSENT_TIMEOUT" default:"5s" help:"How long to wait for the consent dialog"`
	NavTimeout     time.Duration `name:"navigation-timeout" env:"NEWSDIGEST_NAVIGATION_TIMEOUT" default:"60s" help:"Page load timeout"`
	Static         bool          `env:"NEWSDIGEST_STATIC" help:"Fetch HTML without a browser"`
	ShowBrowser    bool          `name:"show-browser" env:"NEWSDIGEST_SHOW_BROWSER" help:"Run the browser with a visible window"`
}

// Config returns the pipeline configuration for the command flags.
func (c *RunCmd) Config() pipeline.Config {
	return pipeline.Config{
		URL:        c.URL,
		Limit:      c.Limit,
		Threshold:  c.Threshold,
		SourceLang: c.SourceLang,
		TargetLang: c.TargetLang,
	}
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `help:"Only list runs for this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to list"`
	Show   string `help:"Show the full digest of the run with this ID"`
}
