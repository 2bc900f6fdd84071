//go:build !gosseract

package ocr

import "errors"

func newGosseract(Config) (Recognizer, error) {
	return nil, errors.New("gosseract engine not compiled in: rebuild with -tags gosseract (requires libtesseract)")
}
