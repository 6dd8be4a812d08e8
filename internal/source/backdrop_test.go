package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = c.R
		case 1:
			img.Pix[i] = c.G
		case 2:
			img.Pix[i] = c.B
		case 3:
			img.Pix[i] = c.A
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestBackdropScalesImageToFrame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	writePNG(t, path, 40, 30, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img, err := Backdrop(path, 64, 48, 0)
	if err != nil {
		t.Fatalf("Backdrop() error = %v", err)
	}

	if got := img.Bounds(); got.Dx() != 64 || got.Dy() != 48 {
		t.Errorf("bounds = %v, want 64x48", got)
	}
}

func TestBackdropPicksLatestImageInDir(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "a.png")
	newer := filepath.Join(dir, "b.png")
	writePNG(t, older, 8, 8, color.RGBA{R: 255, A: 255})
	writePNG(t, newer, 8, 8, color.RGBA{B: 255, A: 255})

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	img, err := Backdrop(dir, 8, 8, 0)
	if err != nil {
		t.Fatalf("Backdrop() error = %v", err)
	}

	// The newer image is solid blue.
	if r, _, b, _ := img.At(4, 4).RGBA(); b == 0 || r != 0 {
		t.Errorf("pixel = %v, want blue from the newer file", img.At(4, 4))
	}
}

func TestBackdropEmptyDir(t *testing.T) {
	if _, err := Backdrop(t.TempDir(), 8, 8, 0); err == nil {
		t.Fatal("Backdrop() on empty dir should fail")
	}
}

func TestBackdropMissingPath(t *testing.T) {
	if _, err := Backdrop(filepath.Join(t.TempDir(), "nope.png"), 8, 8, 0); err == nil {
		t.Fatal("Backdrop() on missing path should fail")
	}
}
