package ingest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

// Handler processes one discovered invoice image.
type Handler func(ctx context.Context, path string) error

// FileResult is the per-file outcome of a directory run.
type FileResult struct {
	Path string
	Err  string
}

// DirStats summarizes a directory run.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// ReportPathFor places the report next to the image:
// scans/inv-7.png -> scans/inv-7.report.txt
func ReportPathFor(imagePath string, format constants.ReportFormat) string {
	if format == "" {
		format = constants.ReportText
	}
	base := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	return base + ".report." + format.Ext()
}

// IsReport reports whether path looks like a report written by ReportPathFor.
func IsReport(path string) bool {
	ext := filepath.Ext(path)
	if _, ok := constants.ParseReportFormat(constants.NormalizeExt(ext)); !ok {
		return false
	}
	return strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), ext), ".report")
}
