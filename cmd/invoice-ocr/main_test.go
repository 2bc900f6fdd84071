package main

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-ocr/internal/ocr"
)

type fixedText string

func (f fixedText) Name() string { return "fixed" }

func (f fixedText) Recognize(context.Context, string) (string, error) { return string(f), nil }

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "invoice.png")
	require.NoError(t, imaging.Save(imaging.New(40, 20, color.White), path))
	return path
}

func runCLI(t *testing.T, args []string, opts ...ocr.Option) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, opts...)
	return code, stdout.String()
}

func TestRun_NoArgs(t *testing.T) {
	code, _ := runCLI(t, nil)
	assert.Equal(t, 2, code)
}

func TestRun_MissingImage(t *testing.T) {
	code, out := runCLI(t, []string{filepath.Join(t.TempDir(), "nope.png")})
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Image file does not exist")
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir)
	report := filepath.Join(dir, "out.txt")

	code, out := runCLI(t, []string{"-out", report, img},
		ocr.WithRecognizer(fixedText("Invoice Number: 42\nDate: 2024-01-31\nTotal Amount: $1,250.00\n")))
	require.Equal(t, 0, code)
	assert.Equal(t, "Invoice report generated: "+report+"\n", out)

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Report\n====================\nInvoice Number: 42\nDate: 2024-01-31\nTotal Amount: 1,250.00\n", string(b))
}

func TestRun_StageFailure(t *testing.T) {
	t.Setenv("TESSERACT_BIN", filepath.Join(t.TempDir(), "no-such-tesseract"))

	for _, tc := range []struct {
		name string
		args []string
		want int
	}{
		{"lenient", nil, 0},
		{"strict", []string{"-strict"}, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			img := writePNG(t, dir)
			report := filepath.Join(dir, "out.txt")

			args := append(append([]string{}, tc.args...), "-out", report, img)
			code, out := runCLI(t, args)
			assert.Equal(t, tc.want, code)
			assert.Contains(t, out, "Invoice processing failed at extract")
			assert.NoFileExists(t, report)
		})
	}
}

func TestRun_BadEngine(t *testing.T) {
	img := writePNG(t, t.TempDir())
	code, out := runCLI(t, []string{"-engine", "carbon-paper", img})
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Configuration error")
}
