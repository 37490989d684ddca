package mock

import (
	"context"
	"time"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.PageAccessor = (*PageAccessor)(nil)

// PageAccessor is a mock implementation of newsdigest.PageAccessor.
type PageAccessor struct {
	NavigateFn func(ctx context.Context, url string) error
	WaitForFn  func(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error)
	CloseFn    func() error
}

func (p *PageAccessor) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *PageAccessor) WaitFor(ctx context.Context, selector string, cond newsdigest.WaitCondition, timeout time.Duration) ([]newsdigest.Element, error) {
	return p.WaitForFn(ctx, selector, cond, timeout)
}

func (p *PageAccessor) Close() error {
	return p.CloseFn()
}

var _ newsdigest.Element = (*Element)(nil)

// Element is a mock implementation of newsdigest.Element.
type Element struct {
	FindFn      func(selector string) (newsdigest.Element, error)
	TextFn      func() (string, error)
	AttributeFn func(name string) (string, bool, error)
	ClickFn     func(ctx context.Context) error
}

func (e *Element) Find(selector string) (newsdigest.Element, error) {
	return e.FindFn(selector)
}

func (e *Element) Text() (string, error) {
	return e.TextFn()
}

func (e *Element) Attribute(name string) (string, bool, error) {
	return e.AttributeFn(name)
}

func (e *Element) Click(ctx context.Context) error {
	return e.ClickFn(ctx)
}
