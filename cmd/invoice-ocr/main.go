package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/ocr"
	"github.com/joseph-ayodele/invoice-ocr/internal/pipeline"
	"github.com/joseph-ayodele/invoice-ocr/internal/source"
)

const usage = "usage: invoice-ocr [flags] <image>"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 when the pipeline ran, 1 when it
// could not start (or, with -strict, when a stage failed), 2 on bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...ocr.Option) int {
	fs := flag.NewFlagSet("invoice-ocr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out        = fs.String("out", "", "report output path (default invoice_report.txt)")
		format     = fs.String("format", "", "report format: text, json or xlsx (default inferred from -out)")
		engine     = fs.String("engine", "", "ocr engine: tesseract, gosseract or azure")
		lang       = fs.String("lang", "", "tesseract language(s), e.g. eng or eng+deu")
		preprocess = fs.Bool("preprocess", false, "grayscale/contrast/sharpen the image before OCR")
		timeout    = fs.Duration("timeout", 0, "deadline for the OCR call (0 = none)")
		configPath = fs.String("config", "", "optional YAML config file")
		strict     = fs.Bool("strict", false, "exit 1 when any pipeline stage fails")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	ref := fs.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if !source.IsS3(ref) {
		if _, err := os.Stat(ref); err != nil {
			_, _ = fmt.Fprintf(stdout, "Image file does not exist: %s\n", ref)
			return 1
		}
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}

	// only flags given on the command line override file/env config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Report.Path = *out
		case "format":
			cfg.Report.Format = *format
		case "engine":
			cfg.OCR.Engine = *engine
		case "lang":
			cfg.OCR.Lang = *lang
		case "preprocess":
			cfg.OCR.Preprocess = *preprocess
		case "timeout":
			cfg.OCR.Timeout = *timeout
		}
	})

	proc, err := pipeline.Build(cfg, logger, opts...)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		_, _ = fmt.Fprintf(stdout, "Configuration error: %v\n", err)
		return 1
	}

	o := proc.Process(ctx, ref)
	if !o.OK() {
		_, _ = fmt.Fprintf(stdout, "Invoice processing failed at %s: %v\n", common.StageOf(o.Err), o.Err)
		if *strict {
			return 1
		}
		return 0
	}

	_, _ = fmt.Fprintf(stdout, "Invoice report generated: %s\n", o.ReportPath)
	return 0
}
