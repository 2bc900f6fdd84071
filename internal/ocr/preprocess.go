package ocr

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// maxOCRDimension bounds the longest side of an enhanced image.
const maxOCRDimension = 3000

// decodeImage opens and fully decodes path, applying EXIF orientation.
func decodeImage(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// enhance prepares a photographed invoice for OCR.
func enhance(img image.Image) *image.NRGBA {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 30)
	out = imaging.Sharpen(out, 1.5)
	b := out.Bounds()
	if b.Dx() > maxOCRDimension || b.Dy() > maxOCRDimension {
		out = imaging.Fit(out, maxOCRDimension, maxOCRDimension, imaging.Lanczos)
	}
	return out
}

// writeTempPNG saves img to a fresh temp dir. Call cleanup() to remove it.
func writeTempPNG(img image.Image) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "invoice-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "page.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, err
	}
	return out, cleanup, nil
}
