package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
)

const wantText = "Invoice Report\n" +
	"====================\n" +
	"Invoice Number: 123\n" +
	"Date: 2024-01-01\n" +
	"Total Amount: 1,250.00\n"

func sampleRecord() *invoice.Record {
	return &invoice.Record{InvoiceNumber: "123", Date: "2024-01-01", TotalAmount: "1,250.00"}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Invoice Number", Label("invoice_number"))
	assert.Equal(t, "Date", Label("date"))
	assert.Equal(t, "Total Amount", Label("total_amount"))
}

func TestWrite_TextExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	got, err := NewWriter(nil).Write(sampleRecord(), path, constants.ReportText)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wantText, string(b))
}

func TestWrite_OverwriteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the report will be ............................................."), 0o644))

	w := NewWriter(nil)
	_, err := w.Write(sampleRecord(), path, "")
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Write(sampleRecord(), path, "")
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, wantText, string(first))
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWrite_DefaultPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := NewWriter(nil).Write(sampleRecord(), "", "")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultReportPath, got)

	b, err := os.ReadFile(constants.DefaultReportPath)
	require.NoError(t, err)
	assert.Equal(t, wantText, string(b))
}

func TestWrite_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "report.txt")

	got, err := NewWriter(nil).Write(sampleRecord(), path, constants.ReportText)
	assert.Empty(t, got)
	require.ErrorIs(t, err, common.ErrWriteFailure)
	assert.Equal(t, constants.StageWrite, common.StageOf(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_RejectsIncompleteRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	_, err := NewWriter(nil).Write(&invoice.Record{InvoiceNumber: "1"}, path, constants.ReportText)
	require.ErrorIs(t, err, common.ErrWriteFailure)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	_, err := NewWriter(nil).Write(sampleRecord(), path, "")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoice_number":"123","date":"2024-01-01","total_amount":"1,250.00"}`, string(b))
}

func TestWrite_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	_, err := NewWriter(nil).Write(sampleRecord(), path, constants.ReportXLSX)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Field", "Value"},
		{"Invoice Number", "123"},
		{"Date", "2024-01-01"},
		{"Total Amount", "1,250.00"},
	}, rows)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(sampleRecord(), constants.ReportFormat("pdf"))
	assert.Error(t, err)
}
