package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
)

// Writer serializes invoice records into report artifacts.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Write renders rec in format and stores it at path, replacing any existing
// artifact. An empty path means constants.DefaultReportPath and an empty
// format is inferred from the path extension. Returns the written path.
func (w *Writer) Write(rec *invoice.Record, path string, format constants.ReportFormat) (string, error) {
	if path == "" {
		path = constants.DefaultReportPath
	}
	if format == "" {
		format = constants.FormatFromPath(path)
	}
	if err := rec.Validate(); err != nil {
		return "", common.NewStageError(constants.StageWrite, constants.KindWriteFailure, "invalid record", err)
	}

	data, err := Render(rec, format)
	if err != nil {
		return "", common.NewStageError(constants.StageWrite, constants.KindWriteFailure, fmt.Sprintf("render %s report", format), err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		w.logger.Error("write report failed", "path", path, "format", format, "error", err)
		return "", common.NewStageError(constants.StageWrite, constants.KindWriteFailure, "write report", err)
	}

	w.logger.Debug("report written", "path", path, "format", format, "bytes", len(data))
	return path, nil
}

// Render serializes rec without touching the filesystem.
func Render(rec *invoice.Record, format constants.ReportFormat) ([]byte, error) {
	switch format {
	case constants.ReportText:
		return renderText(rec), nil
	case constants.ReportJSON:
		return renderJSON(rec)
	case constants.ReportXLSX:
		return renderXLSX(rec)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Label turns a snake-case field key into its report label,
// e.g. "total_amount" -> "Total Amount".
func Label(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

func renderText(rec *invoice.Record) []byte {
	var b bytes.Buffer
	b.WriteString(constants.ReportHeader + "\n")
	b.WriteString(constants.ReportSeparator + "\n")
	for _, f := range rec.Fields() {
		fmt.Fprintf(&b, "%s: %s\n", Label(f.Key), f.Value)
	}
	return b.Bytes()
}

func renderJSON(rec *invoice.Record) ([]byte, error) {
	b, err := rec.MarshalIndentJSON()
	if err != nil {
		return nil, err
	}
	if err := invoice.ValidateJSON(b); err != nil {
		return nil, err
	}
	return b, nil
}

// writeFileAtomic writes to a temp file next to path and renames it into
// place, so a failed write never leaves a truncated report behind.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".invoice-report-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
