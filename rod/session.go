// Package rod provides a Chrome-backed implementation of newsdigest.PageAccessor.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigationTimeout bounds page navigation including the load event.
const DefaultNavigationTimeout = 60 * time.Second

// Ensure Session implements newsdigest.PageAccessor at compile time.
var _ newsdigest.PageAccessor = (*Session)(nil)

// Session owns a headless Chrome browser with a single page.
// Session is not safe for concurrent use, except for Close.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page

	headless          bool
	navigationTimeout time.Duration
	closed            atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHeadless controls whether the browser runs without a window.
// Defaults to true.
func WithHeadless(headless bool) SessionOption {
	return func(s *Session) {
		s.headless = headless
	}
}

// WithNavigationTimeout sets the upper bound for Navigate.
// Defaults to DefaultNavigationTimeout if not specified.
func WithNavigationTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.navigationTimeout = d
	}
}

// NewSession launches a browser and opens a blank page.
// Close must be called when the Session is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		headless:          true,
		navigationTimeout: DefaultNavigationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.launchBrowser(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	s.page = page

	return s, nil
}

// Navigate loads url and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.closed.Load() {
		return newsdigest.Errorf(newsdigest.EINVALID, "session is closed")
	}

	if s.navigationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.navigationTimeout)
		defer cancel()
	}
	page := s.page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return newsdigest.Errorf(newsdigest.ENAVIGATION, "failed to load %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return newsdigest.Errorf(newsdigest.ENAVIGATION, "page %s did not finish loading: %v", url, err)
	}
	return nil
}

// WaitFor waits up to timeout for cond to hold for elements matching selector.
// The returned elements are bound to ctx, not to the wait timeout.
func (s *Session) WaitFor(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error) {
	if s.closed.Load() {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "session is closed")
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Element retries until a match appears or the context expires.
	first, err := s.page.Context(waitCtx).Element(selector)
	if err != nil {
		return nil, waitError(ctx, err, selector, cond)
	}

	if cond == newsdigest.WaitClickable {
		if err := first.WaitVisible(); err != nil {
			return nil, waitError(ctx, err, selector, cond)
		}
		if err := first.WaitEnabled(); err != nil {
			return nil, waitError(ctx, err, selector, cond)
		}
		return []newsdigest.Element{&Element{el: first.Context(ctx)}}, nil
	}

	all, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]newsdigest.Element, 0, len(all))
	for _, el := range all {
		elements = append(elements, &Element{el: el})
	}
	return elements, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

// launchBrowser starts a browser instance with stability flags.
func (s *Session) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(s.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	s.launcher = lnchr
	return nil
}

// waitError maps an expired wait to ETIMEOUT. Cancellation of the caller's
// context is returned as is.
func waitError(ctx context.Context, err error, selector string, cond newsdigest.WaitCondition) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newsdigest.Errorf(newsdigest.ETIMEOUT, "waiting for %q to be %s", selector, cond)
	}
	return err
}

// Ensure Element implements newsdigest.Element at compile time.
var _ newsdigest.Element = (*Element)(nil)

// Element wraps a rod element.
type Element struct {
	el *rod.Element
}

// Find returns the first descendant matching selector without waiting.
func (e *Element) Find(selector string) (newsdigest.Element, error) {
	found, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	if found.Empty() {
		return nil, newsdigest.Errorf(newsdigest.ENOTFOUND, "no descendant matches %q", selector)
	}
	return &Element{el: found.First()}, nil
}

// Text returns the rendered text of the element.
func (e *Element) Text() (string, error) {
	return e.el.Text()
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Click performs a left click on the element.
func (e *Element) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}
