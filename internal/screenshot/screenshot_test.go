package screenshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"png", "shot.png", "shot.png"},
		{"jpeg", "shot.jpg", "shot.jpg"},
		{"gif", "shot.gif", "shot.gif"},
		{"no extension defaults to png", "shot", "shot.png"},
		{"unknown extension defaults to png", "shot.webp", "shot.webp.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Save(testImage(), filepath.Join(dir, tt.path))
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			want := filepath.Join(dir, tt.wantPath)
			if got != want {
				t.Fatalf("Save returned %q, want %q", got, want)
			}
			if info, err := os.Stat(got); err != nil || info.Size() == 0 {
				t.Fatalf("stat %q: err=%v", got, err)
			}
		})
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "shot.png")
	got, err := Save(testImage(), path)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(got)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
