package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// azureEngine sends the image to Azure Computer Vision printed-text OCR.
type azureEngine struct {
	client computervision.BaseClient
}

func newAzure(cfg Config) (Recognizer, error) {
	if cfg.AzureEndpoint == "" || cfg.AzureKey == "" {
		return nil, errors.New("azure engine requires an endpoint and a key")
	}
	client := computervision.New(cfg.AzureEndpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(cfg.AzureKey)
	return &azureEngine{client: client}, nil
}

func (a *azureEngine) Name() string { return EngineAzure }

func (a *azureEngine) Recognize(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	result, err := a.client.RecognizePrintedTextInStream(ctx, true, f, computervision.OcrLanguages(computervision.En))
	if err != nil {
		return "", fmt.Errorf("azure ocr: %w", err)
	}
	return ocrResultText(result), nil
}

// ocrResultText flattens regions/lines/words into newline-separated lines.
func ocrResultText(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}
	var b strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			words := make([]string, 0, len(*line.Words))
			for _, w := range *line.Words {
				if w.Text != nil {
					words = append(words, *w.Text)
				}
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
