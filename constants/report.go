package constants

import (
	"path/filepath"
	"strings"
)

// ReportFormat selects how an invoice record is serialized.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportXLSX ReportFormat = "xlsx"
)

const (
	DefaultReportPath = "invoice_report.txt"
	ReportHeader      = "Invoice Report"
	ReportSeparator   = "===================="
)

// ParseReportFormat accepts "text"/"txt", "json" and "xlsx" (case-insensitive).
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return ReportText, true
	case "json":
		return ReportJSON, true
	case "xlsx":
		return ReportXLSX, true
	}
	return "", false
}

// FormatFromPath infers a report format from the output file extension,
// falling back to ReportText.
func FormatFromPath(path string) ReportFormat {
	if f, ok := ParseReportFormat(NormalizeExt(filepath.Ext(path))); ok {
		return f
	}
	return ReportText
}

// Ext returns the file extension (without dot) for a format.
func (f ReportFormat) Ext() string {
	if f == ReportText {
		return "txt"
	}
	return string(f)
}
