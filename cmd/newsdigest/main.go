package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/fs"
	"github.com/fwojciec/newsdigest/gemini"
	"github.com/fwojciec/newsdigest/google"
	"github.com/fwojciec/newsdigest/goquery"
	ndhttp "github.com/fwojciec/newsdigest/http"
	"github.com/fwojciec/newsdigest/openai"
	"github.com/fwojciec/newsdigest/pipeline"
	"github.com/fwojciec/newsdigest/rod"
	ndslog "github.com/fwojciec/newsdigest/slog"
	"github.com/fwojciec/newsdigest/sqlite"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the run history. Nil when --db is empty.
	DB *sqlite.DB

	// Overrides for end-to-end testing. When nil, Run builds them from flags.
	Accessor   newsdigest.PageAccessor
	Translator newsdigest.Translator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsdigest"),
		kong.Description("Scrape a news section, translate its headlines, and report repeated words"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = NewLogger(stderr, cli.LogLevel)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set NEWSDIGEST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Runs = ndslog.NewLoggingRunService(sqlite.NewRunService(m.DB), deps.Logger)
	}

	if kongCtx.Command() == "run" {
		p, err := m.newPipeline(ctx, &cli.Run, deps.Logger, stderr)
		if err != nil {
			return err
		}
		p.Runs = deps.Runs
		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

// newPipeline wires the pipeline for the run command. The translator is
// built before the accessor so a configuration error never leaks a browser.
func (m *Main) newPipeline(ctx context.Context, cmd *RunCmd, logger *slog.Logger, stderr io.Writer) (*pipeline.Pipeline, error) {
	translator := m.Translator
	if translator == nil {
		var err error
		translator, err = newTranslator(ctx, cmd.Translator, cmd.Model, stderr)
		if err != nil {
			return nil, err
		}
	}

	accessor := m.Accessor
	if accessor == nil {
		if cmd.Static {
			accessor = goquery.NewAccessor(ndhttp.NewFetcher())
		} else {
			session, err := rod.NewSession(
				rod.WithHeadless(!cmd.ShowBrowser),
				rod.WithNavigationTimeout(cmd.NavTimeout),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			accessor = session
		}
	}

	consent := pipeline.NewConsentHandler(logger)
	consent.Timeout = cmd.ConsentTimeout

	extractor := pipeline.NewExtractor(logger)
	extractor.WaitTimeout = cmd.WaitTimeout

	images := ndhttp.NewImageFetcher(ndhttp.WithRateLimit(cmd.ImageRate))

	return &pipeline.Pipeline{
		Accessor:   rod.NewLoggingAccessor(accessor, logger),
		Consent:    consent,
		Extractor:  extractor,
		Images:     ndslog.NewLoggingImageFetcher(images, logger),
		ImageStore: fs.NewImageStore(cmd.ImageDir),
		Translator: ndslog.NewLoggingTranslator(translator, logger),
		Logger:     logger,
		Config:     cmd.Config(),
	}, nil
}

// newTranslator builds the named translation backend.
func newTranslator(ctx context.Context, name, model string, stderr io.Writer) (newsdigest.Translator, error) {
	switch name {
	case "", "google":
		return google.NewTranslator(), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		if model == "" {
			model = gemini.DefaultModel
		}
		return gemini.NewTranslator(client, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		if model == "" {
			model = openai.DefaultModel
		}
		return openai.NewTranslator(model, option.WithAPIKey(apiKey)), nil
	}

	return nil, newsdigest.Errorf(newsdigest.EINVALID, "unknown translator %q", name)
}

// NewLogger returns a text logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
