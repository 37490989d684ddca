package newsdigest

import (
	"fmt"
	"strings"
)

// FormatRun formats a run as a plain-text digest: extracted articles,
// translated titles, and repeated words. Articles marked Changed are tagged
// [new]. Sections are separated by blank lines.
func FormatRun(run *Run) string {
	if run == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "## Articles (%d)\n", len(run.Articles))
	for _, a := range run.Articles {
		marker := ""
		if a.Changed {
			marker = " [new]"
		}
		fmt.Fprintf(&b, "%d. %s%s\n", a.Position+1, a.Title, marker)
		fmt.Fprintf(&b, "   %s\n", a.Content)
		if a.HasImage() {
			fmt.Fprintf(&b, "   Image: %s\n", a.ImageURL)
		}
	}

	if len(run.Images) > 0 {
		fmt.Fprintf(&b, "\n## Images (%d)\n", len(run.Images))
		for _, img := range run.Images {
			fmt.Fprintf(&b, "%d. %s\n", img.Position+1, img.Path)
		}
	}

	fmt.Fprintf(&b, "\n## Translated titles (%d)\n", len(run.Translations))
	for _, tr := range run.Translations {
		fmt.Fprintf(&b, "%d. %s\n", tr.Position+1, tr.Text)
	}

	b.WriteString("\n## Repeated words\n")
	if len(run.Frequencies) == 0 {
		b.WriteString("(none)\n")
	}
	for _, wc := range run.Frequencies {
		fmt.Fprintf(&b, "%s: %d\n", wc.Word, wc.Count)
	}

	return strings.TrimRight(b.String(), "\n")
}
