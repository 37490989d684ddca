package newsdigest

import (
	"context"
	"time"
)

// DefaultWaitTimeout is the default window for explicit element waits.
const DefaultWaitTimeout = 20 * time.Second

// WaitCondition describes what WaitFor waits for.
type WaitCondition int

const (
	// WaitPresent waits until at least one element matches and returns all matches.
	WaitPresent WaitCondition = iota
	// WaitClickable waits until the first match is visible and enabled.
	WaitClickable
)

// String returns the condition name used in logs.
func (c WaitCondition) String() string {
	switch c {
	case WaitPresent:
		return "present"
	case WaitClickable:
		return "clickable"
	default:
		return "unknown"
	}
}

// PageAccessor owns a single page session and exposes element queries
// with explicit wait semantics.
type PageAccessor interface {
	// Navigate loads the URL into the session's page.
	// Returns ENAVIGATION if the page cannot be loaded.
	Navigate(ctx context.Context, url string) error

	// WaitFor waits up to timeout for elements matching the CSS selector to
	// satisfy the condition. Returns ETIMEOUT if the condition is not met.
	WaitFor(ctx context.Context, selector string, cond WaitCondition, timeout time.Duration) ([]Element, error)

	// Close releases the session. Close is safe to call multiple times.
	Close() error
}

// Element is a handle to an element of the current page.
type Element interface {
	// Find returns the first descendant matching the CSS selector without
	// waiting. Returns ENOTFOUND if nothing matches.
	Find(selector string) (Element, error)

	// Text returns the rendered text of the element.
	Text() (string, error)

	// Attribute returns the attribute value and whether it is present.
	Attribute(name string) (string, bool, error)

	// Click clicks the element.
	Click(ctx context.Context) error
}
