package pipeline

import (
	"context"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
	"github.com/joseph-ayodele/invoice-ocr/internal/ocr"
)

// SourceResolver turns an image reference into a local file.
type SourceResolver interface {
	Resolve(ctx context.Context, ref string) (path string, cleanup func(), err error)
}

// TextExtractor is Stage 1: image -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// FieldParser is Stage 2: text -> record.
type FieldParser interface {
	Parse(text string) (*invoice.Record, error)
}

// ReportWriter is Stage 3: record -> report artifact.
type ReportWriter interface {
	Write(rec *invoice.Record, path string, format constants.ReportFormat) (string, error)
}
