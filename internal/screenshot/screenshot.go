// Package screenshot writes display snapshots to image files.
package screenshot

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save encodes img to path, choosing the format from the file extension
// (.png, .jpg/.jpeg, .gif). A path without a recognized extension gets
// ".png" appended. It returns the path actually written.
func Save(img image.Image, path string) (string, error) {
	var encode func(io.Writer, image.Image) error = png.Encode
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, nil)
		}
	case ".gif":
		encode = func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		}
	default:
		path += ".png"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create screenshot dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return path, nil
}
