package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	cases := map[string]string{
		".PNG":  IMAGE,
		"jpeg":  IMAGE,
		".tiff": IMAGE,
		".pdf":  PDF,
		".docx": "",
		"":      "",
	}
	for ext, want := range cases {
		assert.Equal(t, want, MapExtToFormat(ext), "ext %q", ext)
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, ReportText, FormatFromPath("invoice_report.txt"))
	assert.Equal(t, ReportJSON, FormatFromPath("out/report.JSON"))
	assert.Equal(t, ReportXLSX, FormatFromPath("report.xlsx"))
	assert.Equal(t, ReportText, FormatFromPath("report"))
	assert.Equal(t, "txt", ReportText.Ext())
	assert.Equal(t, "xlsx", ReportXLSX.Ext())
}
