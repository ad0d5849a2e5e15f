// Package batch runs a whole directory of receipt images through OCR and the
// analysis pipeline, in a fixed deterministic order.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Image is one receipt file discovered on disk. ID is the path relative to
// the scanned directory, in slash form, and doubles as the receipt
// identifier in reports.
type Image struct {
	ID          string
	Path        string
	ContentType string
}

// contentTypes maps recognized receipt file extensions to MIME types. The
// scanners accept all of these.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
	".pdf":  "application/pdf",
}

// List walks dir recursively and returns every recognized receipt file,
// sorted by relative path. The order is stable so that repeated runs over
// the same directory produce identical reports.
func List(dir string) ([]Image, error) {
	var images []Image
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		contentType, ok := contentTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		images = append(images, Image{
			ID:          filepath.ToSlash(rel),
			Path:        path,
			ContentType: contentType,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images, nil
}

// ReadImage loads a receipt file's bytes.
func ReadImage(img Image) ([]byte, error) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", img.Path, err)
	}
	return data, nil
}
