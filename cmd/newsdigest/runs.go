package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		return fmt.Errorf("no database configured. Set --db or NEWSDIGEST_DB")
	}

	if c.Show != "" {
		run, err := deps.Runs.FindRunByID(deps.Ctx, c.Show)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsdigest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d new\n\n", run.ID, run.State, run.SourceURL, run.ChangedArticles())
		fmt.Fprintln(deps.Stdout, newsdigest.FormatRun(run))
		return nil
	}

	filter := newsdigest.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdigest.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'newsdigest run' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-16s  %d articles  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.State, r.ArticleCount, r.SourceURL)
	}

	return nil
}
