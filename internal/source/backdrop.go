// Package source loads backdrop pictures for a rendering run: a PDF page,
// a single image file, or the freshest image in a directory.
package source

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

const pdfRenderDPI = 144

// Backdrop loads the picture at path and scales it to cover a w by h
// frame, centered and aspect-preserving. For PDFs, page selects the
// zero-based page to render. A directory path resolves to its most
// recently modified image.
func Backdrop(path string, w, h, page int) (*image.RGBA, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat backdrop")
	}

	if fi.IsDir() {
		path, err = latestImage(path)
		if err != nil {
			return nil, err
		}
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		img, err = renderPDFPage(path, page)
	} else {
		img, err = decodeImage(path)
	}

	if err != nil {
		return nil, err
	}

	return fit(img, w, h), nil
}

func renderPDFPage(path string, page int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}
	defer doc.Close()

	if page < 0 || page >= doc.NumPage() {
		return nil, errors.Errorf("page %d out of range, pdf has %d pages", page, doc.NumPage())
	}

	img, err := doc.ImageDPI(page, pdfRenderDPI)
	if err != nil {
		return nil, errors.Wrapf(err, "render pdf page %d", page)
	}

	return img, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}

	return img, nil
}

// latestImage picks the most recently modified jpg or png in dir.
func latestImage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(err, "read backdrop dir")
	}

	var (
		latest   string
		latestAt time.Time
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
		default:
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().After(latestAt) {
			latestAt = info.ModTime()
			latest = filepath.Join(dir, entry.Name())
		}
	}

	if latest == "" {
		return "", errors.Errorf("no images in %s", dir)
	}

	return latest, nil
}

// fit scales img to cover w by h, cropping the overflow around the center.
func fit(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	sb := img.Bounds()
	scaleX := float64(w) / float64(sb.Dx())
	scaleY := float64(h) / float64(sb.Dy())

	scale := scaleX
	if scaleY > scale {
		scale = scaleY
	}

	sw := int(float64(sb.Dx()) * scale)
	sh := int(float64(sb.Dy()) * scale)

	offX := (w - sw) / 2
	offY := (h - sh) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(offX, offY, offX+sw, offY+sh), img, sb, xdraw.Src, nil)

	return dst
}
