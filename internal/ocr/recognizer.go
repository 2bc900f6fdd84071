package ocr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Engine names accepted in Config.Engine.
const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
	EngineAzure     = "azure"
)

// ErrNoText is returned when the engine ran but recognized nothing.
var ErrNoText = errors.New("ocr produced no text")

// Recognizer is the OCR capability: one image file in, plain text out.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) (string, error)
}

func newRecognizer(cfg Config, r Runner) (Recognizer, error) {
	switch cfg.Engine {
	case EngineTesseract:
		return &tesseractCLI{cfg: cfg, runner: r}, nil
	case EngineGosseract:
		return newGosseract(cfg)
	case EngineAzure:
		return newAzure(cfg)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
	}
}

// tesseractCLI shells out to the tesseract binary.
type tesseractCLI struct {
	cfg    Config
	runner Runner
}

func (t *tesseractCLI) Name() string { return EngineTesseract }

func (t *tesseractCLI) Recognize(ctx context.Context, path string) (string, error) {
	// tesseract <file> stdout -l <lang> [--psm N] [--oem N] [--tessdata-dir D]
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(path)...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, truncate(msg, 512))
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

func (t *tesseractCLI) args(path string, extra ...string) []string {
	args := []string{path, "stdout", "-l", t.cfg.TesseractLang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(t.cfg.OEM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return append(args, extra...)
}
