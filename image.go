package newsdigest

import "context"

// DefaultImageDir is the directory article images are saved to.
const DefaultImageDir = "article_images"

// SavedImage records an image written for an article.
type SavedImage struct {
	Position int    `json:"position"`
	URL      string `json:"url"`
	Path     string `json:"path"`
}

// ImageFetcher downloads images to local files.
type ImageFetcher interface {
	// FetchImage downloads url and writes the raw bytes to dest, replacing
	// any existing file. On failure dest is left untouched.
	FetchImage(ctx context.Context, url, dest string) error
}

// ImageStore decides where article images are written.
type ImageStore interface {
	// Prepare creates the image directory if it does not exist.
	Prepare() error

	// Path returns the destination file for the article at position.
	Path(position int) string
}
