package mock

import (
	"context"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of newsdigest.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url, dest string) error
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url, dest string) error {
	return f.FetchImageFn(ctx, url, dest)
}

var _ newsdigest.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of newsdigest.ImageStore.
type ImageStore struct {
	PrepareFn func() error
	PathFn    func(position int) string
}

func (s *ImageStore) Prepare() error {
	return s.PrepareFn()
}

func (s *ImageStore) Path(position int) string {
	return s.PathFn(position)
}
