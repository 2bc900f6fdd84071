package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

const ImageConfidenceThreshold = 0.6

func (e *Extractor) extractImage(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.IMAGE, Language: e.cfg.TesseractLang, Pages: 1}

	img, err := decodeImage(path)
	if err != nil {
		e.logger.Error("image decode failed", "path", path, "error", err)
		return res, resourceErr("decode image", err)
	}

	ocrPath := path
	if e.cfg.Preprocess {
		tmp, cleanup, err := writeTempPNG(enhance(img))
		if err != nil {
			return res, resourceErr("write preprocessed image", err)
		}
		defer cleanup()
		ocrPath = tmp
	}

	txt, err := e.recognize(ctx, ocrPath)
	if err != nil {
		return res, recognitionErr(e.recognizer.Name(), err)
	}
	res.Text = txt
	res.Method = e.recognizer.Name()

	// compute confidence
	var ocrConf float32
	if tc, ok := e.recognizer.(*tesseractCLI); ok && e.cfg.EnableTSVConfidence {
		if c, err2 := e.tesseractTSVConfidence(ctx, tc, ocrPath); err2 == nil {
			ocrConf = c
		} else {
			res.Warnings = append(res.Warnings, err2.Error())
		}
	}
	heurConf := heuristicConfidence(txt)

	// blend: weight OCR higher if present
	if ocrConf > 0 {
		res.Confidence = 0.7*ocrConf + 0.3*heurConf
	} else {
		res.Confidence = heurConf
	}
	if res.Confidence > 1.0 {
		res.Confidence = 1.0
	}
	if res.Confidence < ImageConfidenceThreshold {
		e.logger.Warn("image ocr confidence low", "path", path, "confidence", res.Confidence)
	}
	return res, nil
}

// tesseractTSVConfidence runs tesseract in TSV mode and returns mean word conf in 0..1.
func (e *Extractor) tesseractTSVConfidence(ctx context.Context, tc *tesseractCLI, path string) (float32, error) {
	out, errb, err := e.runner.Run(ctx, tc.cfg.Tesseract, tc.args(path, "tsv")...)
	if err != nil {
		return 0, fmt.Errorf("tesseract TSV: %w: %s", err, truncate(string(errb), 512))
	}
	return meanTSVConfidence(string(out)), nil
}

// meanTSVConfidence averages the conf column of tesseract TSV output
// (level page block par line word left top width height conf text),
// skipping the header and non-word rows (conf -1).
func meanTSVConfidence(tsv string) float32 {
	var sum, n float64
	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 || len(ln) == 0 {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float32(sum / n / 100.0)
}
