package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/invoice"
)

// Config holds where and how reports are written.
type Config struct {
	ReportPath   string                 // default constants.DefaultReportPath
	ReportFormat constants.ReportFormat // "" = infer from ReportPath
}

// Outcome summarizes one pipeline run. Err is nil on success and otherwise
// holds the *common.StageError of the stage that stopped the run.
type Outcome struct {
	RunID      uuid.UUID
	Source     string
	ReportPath string
	Record     *invoice.Record
	Method     string
	Confidence float32
	Duration   time.Duration
	Err        error
}

// OK reports whether a report was produced.
func (o Outcome) OK() bool { return o.Err == nil }

// Processor coordinates resolve -> extract -> parse -> write.
type Processor struct {
	Logger    *slog.Logger
	Cfg       Config
	Resolver  SourceResolver
	Extractor TextExtractor
	Parser    FieldParser
	Writer    ReportWriter
}

func NewProcessor(logger *slog.Logger, cfg Config, resolver SourceResolver, extractor TextExtractor, parser FieldParser, writer ReportWriter) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = constants.DefaultReportPath
	}
	return &Processor{
		Logger:    logger,
		Cfg:       cfg,
		Resolver:  resolver,
		Extractor: extractor,
		Parser:    parser,
		Writer:    writer,
	}
}

// Process runs the pipeline for one image reference using the configured
// report location.
func (p *Processor) Process(ctx context.Context, ref string) Outcome {
	return p.ProcessTo(ctx, ref, p.Cfg.ReportPath, p.Cfg.ReportFormat)
}

// ProcessTo runs the pipeline for ref and writes the report to reportPath.
// The first failing stage is logged and ends the run; later stages never run.
func (p *Processor) ProcessTo(ctx context.Context, ref, reportPath string, format constants.ReportFormat) Outcome {
	start := time.Now()
	out := Outcome{RunID: uuid.New(), Source: ref}
	ctx = common.WithRunID(ctx, out.RunID)
	log := p.Logger.With("run_id", out.RunID.String(), "source", ref)

	fail := func(stage constants.Stage, err error) Outcome {
		out.Err = err
		out.Duration = time.Since(start)
		log.Error("pipeline."+string(stage)+".failed",
			"stage", stage,
			"kind", common.KindOf(err),
			"error", err,
			"duration_ms", out.Duration.Milliseconds(),
		)
		return out
	}

	// 0) resolve the reference to a local file
	path, cleanup, err := p.Resolver.Resolve(ctx, ref)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return fail(constants.StageResolve, err)
	}

	// 1) OCR
	res, err := p.Extractor.Extract(ctx, path)
	if err != nil {
		return fail(constants.StageExtract, err)
	}
	out.Method, out.Confidence = res.Method, res.Confidence
	log.Info("pipeline.extract.ok",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
	)

	// 2) fields
	rec, err := p.Parser.Parse(res.Text)
	if err != nil {
		return fail(constants.StageParse, err)
	}
	log.Info("pipeline.parse.ok",
		"invoice_number", rec.InvoiceNumber, "date", rec.Date, "total_amount", rec.TotalAmount)

	// 3) report
	written, err := p.Writer.Write(rec, reportPath, format)
	if err != nil {
		return fail(constants.StageWrite, err)
	}

	out.Record, out.ReportPath = rec, written
	out.Duration = time.Since(start)
	log.Info("invoice report generated", "path", written, "duration_ms", out.Duration.Milliseconds())
	return out
}
