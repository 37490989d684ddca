package main

import (
	"fmt"

	"github.com/fwojciec/newsdigest"
)

// Run executes the pipeline once and prints the digest.
func (c *RunCmd) Run(deps *Dependencies) error {
	run, err := deps.Pipeline.Run(deps.Ctx)
	if run != nil && len(run.Articles) > 0 {
		fmt.Fprintln(deps.Stdout, newsdigest.FormatRun(run))
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdigest.ErrorMessage(err))
		return err
	}
	return nil
}
