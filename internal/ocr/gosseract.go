//go:build gosseract

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// gosseractEngine calls libtesseract in-process through cgo.
type gosseractEngine struct {
	lang        string
	tessdataDir string
	psm         int
}

func newGosseract(cfg Config) (Recognizer, error) {
	return &gosseractEngine{lang: cfg.TesseractLang, tessdataDir: cfg.TessdataDir, psm: cfg.PSM}, nil
}

func (g *gosseractEngine) Name() string { return EngineGosseract }

// Recognize cannot be interrupted once libtesseract starts; ctx is only
// checked before the call.
func (g *gosseractEngine) Recognize(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if g.tessdataDir != "" {
		client.TessdataPrefix = g.tessdataDir
	}
	if err := client.SetLanguage(g.lang); err != nil {
		return "", fmt.Errorf("gosseract language: %w", err)
	}
	if g.psm > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(g.psm)); err != nil {
			return "", fmt.Errorf("gosseract psm: %w", err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("gosseract image: %w", err)
	}
	txt, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("gosseract: %w", err)
	}
	return txt, nil
}
