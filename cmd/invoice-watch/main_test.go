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

func TestDirList(t *testing.T) {
	var d dirList
	require.NoError(t, d.Set("a"))
	require.NoError(t, d.Set("b"))
	assert.Error(t, d.Set(" "))
	assert.Equal(t, "a,b", d.String())
}

func TestRun_Usage(t *testing.T) {
	var out, errb bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &out, &errb))
	assert.Equal(t, 2, run(context.Background(), []string{"-dir", ".", "-format", "pdf"}, &out, &errb))
}

func TestRun_Once(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, imaging.Save(imaging.New(40, 20, color.White), filepath.Join(dir, "inv-7.png")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-once", "-format", "json", "-dir", dir}, &out, &errb,
		ocr.WithRecognizer(fixedText("Invoice Number: 7\nDate: 2024-02-02\nTotal Amount: $70.00")))
	require.Equal(t, 0, code, errb.String())

	b, err := os.ReadFile(filepath.Join(dir, "inv-7.report.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoice_number":"7","date":"2024-02-02","total_amount":"70.00"}`, string(b))
	assert.NoFileExists(t, filepath.Join(dir, "notes.report.json"))
}

func TestRun_OnceWithFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, imaging.Save(imaging.New(40, 20, color.White), filepath.Join(dir, "blank.png")))

	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-once", "-dir", dir}, &out, &errb,
		ocr.WithRecognizer(fixedText("no labels here")))
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, filepath.Join(dir, "blank.report.txt"))
}
