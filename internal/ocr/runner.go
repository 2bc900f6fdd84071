package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-ocr/internal/common"
)

// Runner executes an external tool (tesseract, pdftotext, pdftoppm) and
// returns its captured output. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// maxLoggedStderr caps how much tool stderr ends up in a log line.
const maxLoggedStderr = 8 << 10

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	attrs := []any{
		"tool", name,
		"args", strings.Join(args, " "),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if id := common.RunIDFromContext(ctx); id != uuid.Nil {
		attrs = append(attrs, "run_id", id.String())
	}
	log := r.logger
	if log == nil {
		log = slog.Default()
	}
	if err != nil {
		log.Error("ocr.tool.failed", append(attrs, "error", err, "stderr", truncate(stderr.String(), maxLoggedStderr))...)
	} else {
		log.Debug("ocr.tool.ok", append(attrs, "stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())...)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
