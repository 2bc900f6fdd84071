package ocr

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "a b\nc", Normalize("  a \t b \r\nc  \n\n"))
	assert.Equal(t, "Total Amount: $1,250.00", Normalize("Total Amount:  $1,250.00"))
	assert.Equal(t, "x\n\ny", Normalize("x\n=====\n___\ny"))
}

func TestHeuristicConfidence(t *testing.T) {
	low := heuristicConfidence("lorem ipsum")
	high := heuristicConfidence(invoiceText)
	assert.InDelta(t, 0.1, low, 1e-6)
	assert.Greater(t, high, low)
	assert.LessOrEqual(t, high, float32(1.0))
}

func TestOCRResultText(t *testing.T) {
	word := func(s string) computervision.OcrWord { return computervision.OcrWord{Text: &s} }
	line := func(ws ...computervision.OcrWord) computervision.OcrLine { return computervision.OcrLine{Words: &ws} }

	regions := []computervision.OcrRegion{
		{Lines: &[]computervision.OcrLine{
			line(word("Invoice"), word("Number:"), word("123")),
			line(word("Date:"), word("2024-01-01")),
		}},
		{Lines: nil},
		{Lines: &[]computervision.OcrLine{line(word("Total"), word("Amount:"), word("$5.00"))}},
	}

	got := ocrResultText(computervision.OcrResult{Regions: &regions})
	assert.Equal(t, "Invoice Number: 123\nDate: 2024-01-01\nTotal Amount: $5.00\n", got)
	assert.Equal(t, "", ocrResultText(computervision.OcrResult{}))
}
