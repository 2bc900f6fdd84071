package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
)

type Config struct {
	Engine    string // "tesseract" (default) | "gosseract" | "azure"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string // default "eng"
	TessdataDir   string
	PSM           int // e.g., 6 is good for uniform block of text
	OEM           int // 1 = LSTM; leave 0 to use default

	DPI      int // rasterization DPI for scanned PDFs, default 300
	MaxPages int // 0 = no limit

	AzureEndpoint string
	AzureKey      string

	Timeout             time.Duration // deadline for the OCR call; 0 = none
	Preprocess          bool          // grayscale/contrast/sharpen before OCR
	NormalizeText       bool          // collapse whitespace noise in recognized text
	EnableTSVConfidence bool
}

// ConfigFrom maps application config onto extractor config.
func ConfigFrom(c *common.Config) Config {
	return Config{
		Engine:              c.OCR.Engine,
		Tesseract:           c.OCR.Tesseract,
		Pdftotext:           c.PDF.Pdftotext,
		Pdftoppm:            c.PDF.Pdftoppm,
		TesseractLang:       c.OCR.Lang,
		TessdataDir:         c.OCR.TessdataDir,
		PSM:                 c.OCR.PSM,
		OEM:                 c.OCR.OEM,
		DPI:                 c.PDF.DPI,
		MaxPages:            c.PDF.MaxPages,
		AzureEndpoint:       c.Azure.Endpoint,
		AzureKey:            c.Azure.Key,
		Timeout:             c.OCR.Timeout,
		Preprocess:          c.OCR.Preprocess,
		NormalizeText:       c.OCR.Normalize,
		EnableTSVConfidence: c.OCR.TSVConfidence,
	}
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // engine name | "pdf-text" | "pdf-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg        Config
	runner     Runner
	recognizer Recognizer
	logger     *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithRunner replaces the exec runner used for tesseract and poppler tools.
func WithRunner(r Runner) Option {
	return func(e *Extractor) { e.runner = r }
}

// WithRecognizer replaces the OCR engine selected by Config.Engine.
func WithRecognizer(r Recognizer) Option {
	return func(e *Extractor) { e.recognizer = r }
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineTesseract
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}

	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	if e.recognizer == nil {
		rec, err := newRecognizer(cfg, e.runner)
		if err != nil {
			return nil, common.NewAppError(string(constants.KindConfig), "init ocr engine", err)
		}
		e.recognizer = rec
	}
	return e, nil
}

// Extract recognizes the text of the invoice at path. Failures are returned
// as *common.StageError tagged RESOURCE_UNAVAILABLE or RECOGNITION_FAILURE.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return ExtractionResult{}, resourceErr("stat source", err)
	}
	if !info.Mode().IsRegular() {
		return ExtractionResult{}, resourceErr("stat source", fmt.Errorf("%s is not a regular file", path))
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "engine", e.recognizer.Name(), "ext", ext)

	var res ExtractionResult
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	default:
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return ExtractionResult{}, resourceErr("detect format", fmt.Errorf("unsupported extension: %q", ext))
	}
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	if e.cfg.NormalizeText {
		res.Text = Normalize(res.Text)
	}
	if strings.TrimSpace(res.Text) == "" {
		return res, recognitionErr("recognize text", ErrNoText)
	}

	e.logger.Debug("ocr extraction done",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// recognize runs the OCR engine under the configured deadline.
func (e *Extractor) recognize(ctx context.Context, imagePath string) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	return e.recognizer.Recognize(ctx, imagePath)
}

func resourceErr(msg string, cause error) error {
	return common.NewStageError(constants.StageExtract, constants.KindResourceUnavailable, msg, cause)
}

func recognitionErr(msg string, cause error) error {
	return common.NewStageError(constants.StageExtract, constants.KindRecognitionFailure, msg, cause)
}
