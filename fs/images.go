// Package fs provides file-based storage for article images.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/newsdigest"
)

// ImageFilename returns the file name for the article at position.
// Positions are zero-based; file names are one-based: article_1.jpg, ...
func ImageFilename(position int) string {
	return fmt.Sprintf("article_%d.jpg", position+1)
}

// Ensure ImageStore implements newsdigest.ImageStore at compile time.
var _ newsdigest.ImageStore = (*ImageStore)(nil)

// ImageStore lays out article images in a single directory.
type ImageStore struct {
	dir string
}

// NewImageStore creates a new ImageStore rooted at dir.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Dir returns the image directory.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Prepare creates the image directory if it does not exist.
func (s *ImageStore) Prepare() error {
	return os.MkdirAll(s.dir, 0755)
}

// Path returns the destination file for the article at position.
func (s *ImageStore) Path(position int) string {
	return filepath.Join(s.dir, ImageFilename(position))
}

// WriteFileAtomic copies r into path. Data goes to a temporary file in the
// same directory which is renamed over path only after r is fully read, so
// a failed write never creates or truncates path.
func WriteFileAtomic(path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()

	// Remove the temp file unless it was renamed into place.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return n, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return n, err
	}
	committed = true
	return n, nil
}
