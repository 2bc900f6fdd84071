package invoice

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
)

// Each pattern is anchored on a literal label and captures the value after it.
// Matching is case-sensitive and the first occurrence in the text wins.
var fieldPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyInvoiceNumber, regexp.MustCompile(`Invoice Number:\s*(\d+)`)},
	{KeyDate, regexp.MustCompile(`Date:\s*([\d-]+)`)},
	{KeyTotalAmount, regexp.MustCompile(`Total Amount:\s*\$?([\d,.]+)`)},
}

// MissingFieldsError lists the labeled fields absent from the OCR text.
type MissingFieldsError struct {
	Keys []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Keys, ", "))
}

// Parser turns raw OCR text into a Record.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse applies every field pattern to text. It returns a complete Record, or
// nil and a FIELD_NOT_FOUND StageError naming each missing field.
func (p *Parser) Parse(text string) (*Record, error) {
	values := make(map[string]string, len(fieldPatterns))
	var missing []string
	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil {
			missing = append(missing, fp.key)
			continue
		}
		values[fp.key] = m[1]
	}
	if len(missing) > 0 {
		p.logger.Debug("invoice fields missing", "missing", missing, "text_bytes", len(text))
		return nil, common.NewStageError(constants.StageParse, constants.KindFieldNotFound,
			"parse invoice text", &MissingFieldsError{Keys: missing})
	}

	rec := &Record{
		InvoiceNumber: values[KeyInvoiceNumber],
		Date:          values[KeyDate],
		TotalAmount:   values[KeyTotalAmount],
	}
	p.logger.Debug("invoice fields parsed",
		"invoice_number", rec.InvoiceNumber, "date", rec.Date, "total_amount", rec.TotalAmount)
	return rec, nil
}
