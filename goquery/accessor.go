// Package goquery provides a static-HTML implementation of
// newsdigest.PageAccessor backed by goquery documents.
package goquery

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdigest"
)

// Ensure Accessor implements newsdigest.PageAccessor at compile time.
var _ newsdigest.PageAccessor = (*Accessor)(nil)

// Accessor evaluates element queries against HTML fetched without a browser.
// A static document never changes, so wait conditions are checked once and
// an unmet condition fails immediately with ETIMEOUT.
type Accessor struct {
	fetcher newsdigest.Fetcher
	doc     *goquery.Document
	closed  bool
}

// NewAccessor creates an Accessor that loads pages with fetcher.
// The Accessor takes ownership of fetcher and closes it on Close.
func NewAccessor(fetcher newsdigest.Fetcher) *Accessor {
	return &Accessor{fetcher: fetcher}
}

// NewAccessorFromHTML creates an Accessor with html already loaded.
func NewAccessorFromHTML(html string) (*Accessor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Accessor{doc: doc}, nil
}

// Navigate fetches the URL and parses it as the current document.
func (a *Accessor) Navigate(ctx context.Context, url string) error {
	if a.closed {
		return newsdigest.Errorf(newsdigest.EINVALID, "accessor is closed")
	}
	if a.fetcher == nil {
		return newsdigest.Errorf(newsdigest.EINVALID, "accessor has no fetcher")
	}

	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return newsdigest.Errorf(newsdigest.ENAVIGATION, "failed to load %s: %v", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return newsdigest.Errorf(newsdigest.ENAVIGATION, "failed to parse %s: %v", url, err)
	}
	a.doc = doc
	return nil
}

// WaitFor returns the elements matching selector if cond already holds.
// The timeout is accepted for interface compatibility and never waited on.
func (a *Accessor) WaitFor(ctx context.Context, selector string, cond newsdigest.WaitCondition, _ time.Duration) ([]newsdigest.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.closed {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "accessor is closed")
	}
	if a.doc == nil {
		return nil, newsdigest.Errorf(newsdigest.EINVALID, "no page loaded")
	}

	sel := a.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, newsdigest.Errorf(newsdigest.ETIMEOUT, "no element matches %q", selector)
	}

	if cond == newsdigest.WaitClickable {
		first := sel.First()
		if !isClickable(first) {
			return nil, newsdigest.Errorf(newsdigest.ETIMEOUT, "element %q is not clickable", selector)
		}
		return []newsdigest.Element{&Element{sel: first}}, nil
	}

	elements := make([]newsdigest.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements, nil
}

// Close releases the underlying fetcher. Close is safe to call multiple times.
func (a *Accessor) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.fetcher != nil {
		return a.fetcher.Close()
	}
	return nil
}

// isClickable approximates visibility and enablement from markup alone.
func isClickable(s *goquery.Selection) bool {
	if _, disabled := s.Attr("disabled"); disabled {
		return false
	}
	if _, hidden := s.Attr("hidden"); hidden {
		return false
	}
	style, _ := s.Attr("style")
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}

// Ensure Element implements newsdigest.Element at compile time.
var _ newsdigest.Element = (*Element)(nil)

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Find returns the first descendant matching selector.
func (e *Element) Find(selector string) (newsdigest.Element, error) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, newsdigest.Errorf(newsdigest.ENOTFOUND, "no descendant matches %q", selector)
	}
	return &Element{sel: found}, nil
}

// Text returns the element text with whitespace runs collapsed, the way a
// browser renders inline text.
func (e *Element) Text() (string, error) {
	return strings.Join(strings.Fields(e.sel.Text()), " "), nil
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

// Click is a no-op for static documents.
func (e *Element) Click(ctx context.Context) error {
	return ctx.Err()
}
