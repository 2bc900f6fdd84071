package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joseph-ayodele/invoice-ocr/constants"
	"github.com/joseph-ayodele/invoice-ocr/internal/common"
	"github.com/joseph-ayodele/invoice-ocr/internal/ingest"
	"github.com/joseph-ayodele/invoice-ocr/internal/ocr"
	"github.com/joseph-ayodele/invoice-ocr/internal/pipeline"
)

// dirList collects repeated -dir flags.
type dirList []string

func (d *dirList) String() string { return strings.Join(*d, ",") }

func (d *dirList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("empty directory")
	}
	*d = append(*d, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...ocr.Option) int {
	fs := flag.NewFlagSet("invoice-watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var dirs dirList
	fs.Var(&dirs, "dir", "directory to watch (repeatable, required)")
	var (
		format      = fs.String("format", "text", "report format: text, json or xlsx")
		initialScan = fs.Bool("initial-scan", false, "process images already present at startup")
		once        = fs.Bool("once", false, "process the directories once and exit instead of watching")
		debounce    = fs.Duration("debounce", 500*time.Millisecond, "quiet period before a changed file is processed")
		configPath  = fs.String("config", "", "optional YAML config file")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if len(dirs) == 0 {
		_, _ = fmt.Fprintln(stderr, "Error: -dir is required")
		fs.PrintDefaults()
		return 2
	}
	reportFormat, ok := constants.ParseReportFormat(*format)
	if !ok {
		_, _ = fmt.Fprintf(stderr, "Error: unknown -format %q\n", *format)
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}
	proc, err := pipeline.Build(cfg, logger, opts...)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		return 1
	}

	handle := func(ctx context.Context, path string) error {
		return proc.ProcessTo(ctx, path, ingest.ReportPathFor(path, reportFormat), reportFormat).Err
	}

	if *once {
		failed := false
		for _, dir := range dirs {
			_, stats, err := ingest.ProcessDirectory(ctx, dir, nil, true, handle)
			if err != nil {
				logger.Error("process directory", "dir", dir, "error", err)
				return 1
			}
			logger.Info("directory processed", "dir", dir,
				"scanned", stats.Scanned, "matched", stats.Matched,
				"succeeded", stats.Succeeded, "failed", stats.Failed)
			failed = failed || stats.Failed > 0
		}
		if failed {
			return 1
		}
		return 0
	}

	logger.Info("watching", "dirs", []string(dirs), "format", reportFormat)
	err = ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       dirs,
		InitialScan: *initialScan,
		Debounce:    *debounce,
		Logger:      logger,
	}, handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch stopped", "error", err)
		return 1
	}
	logger.Info("watch stopped")
	return 0
}
