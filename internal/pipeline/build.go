package pipeline

import (
	"log/slog"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
	"github.com/joseph-ayodele/invoice-ocr/internal/ocr"
	"github.com/joseph-ayodele/invoice-ocr/internal/report"
	"github.com/joseph-ayodele/invoice-ocr/internal/source"
)

// Build wires a Processor from validated application config.
func Build(cfg *common.Config, logger *slog.Logger, opts ...ocr.Option) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	extractor, err := ocr.NewExtractor(ocr.ConfigFrom(cfg), logger, opts...)
	if err != nil {
		return nil, err
	}
	// "" leaves the writer to infer the format from the report path
	format, _ := constants.ParseReportFormat(cfg.Report.Format)
	return NewProcessor(logger,
		Config{ReportPath: cfg.Report.Path, ReportFormat: format},
		source.NewResolver(cfg.AWS.Region, logger),
		extractor,
		invoice.NewParser(logger),
		report.NewWriter(logger),
	), nil
}
