package ocr

import (
	"regexp"
	"strings"
)

// invoiceSignal is one piece of evidence that recognized text is a readable
// invoice; weight is added to the score when re matches the lowercased text.
type invoiceSignal struct {
	re     *regexp.Regexp
	weight float32
}

var invoiceSignals = []invoiceSignal{
	{regexp.MustCompile(`invoice number:`), 0.15},
	{regexp.MustCompile(`date:`), 0.15},
	{regexp.MustCompile(`total amount:`), 0.15},
	{regexp.MustCompile(`\b(19|20)\d{2}-\d{2}-\d{2}\b|\b\d{1,2}-\d{1,2}-\d{2,4}\b`), 0.1},
	{regexp.MustCompile(`\b(usd|eur|gbp|cad|aud|inr|jpy)\b|[$£€]`), 0.05},
	{regexp.MustCompile(`\b\d{1,3}(,\d{3})*\.\d{2}\b|\b\d+\.\d{2}\b`), 0.1},
}

const (
	baseConfidence    = 0.1
	longTextBonus     = 0.05
	longTextThreshold = 120
)

// heuristicConfidence scores text in 0..1 by how many invoice signals it
// carries. It says nothing about whether the fields will parse.
func heuristicConfidence(txt string) float32 {
	lower := strings.ToLower(txt)
	score := float32(baseConfidence)
	for _, s := range invoiceSignals {
		if s.re.MatchString(lower) {
			score += s.weight
		}
	}
	if len(txt) > longTextThreshold {
		score += longTextBonus
	}
	return min(score, 1)
}
