package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/invoice-ocr/constants"
)

// ProcessDirectory walks root in lexical order and calls handle for every
// invoice source it finds (includeExts, or all allowed extensions when
// empty). Reports written next to images are skipped, and so are hidden
// entries when skipHidden is set. A failing file is recorded and the walk
// continues; only an unreadable root or a cancelled ctx stops it.
func ProcessDirectory(ctx context.Context, root string, includeExts []string, skipHidden bool, handle Handler) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	run := &dirRun{
		root:       root,
		exts:       extSet(includeExts),
		skipHidden: skipHidden,
		handle:     handle,
	}
	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		return run.visit(ctx, path, d, walkErr)
	}); err != nil {
		return run.results, run.stats, fmt.Errorf("walk %s: %w", root, err)
	}
	return run.results, run.stats, nil
}

type dirRun struct {
	root       string
	exts       map[string]struct{}
	skipHidden bool
	handle     Handler

	results []FileResult
	stats   DirStats
}

func (r *dirRun) visit(ctx context.Context, path string, d fs.DirEntry, walkErr error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if walkErr != nil {
		if path == r.root {
			return walkErr
		}
		r.record(path, walkErr)
		return nil
	}
	if r.skipHidden && path != r.root && IsHidden(path) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		return nil
	}

	r.stats.Scanned++
	if !candidate(path, r.exts, r.skipHidden) {
		return nil
	}
	r.stats.Matched++
	r.record(path, r.handle(ctx, path))
	return nil
}

func (r *dirRun) record(path string, err error) {
	if err != nil {
		r.results = append(r.results, FileResult{Path: path, Err: err.Error()})
		r.stats.Failed++
		return
	}
	r.results = append(r.results, FileResult{Path: path})
	r.stats.Succeeded++
}

// extSet builds the lookup set for includeExts, falling back to every
// allowed invoice extension.
func extSet(includeExts []string) map[string]struct{} {
	exts := make(map[string]struct{}, len(constants.AllowedExtensions))
	for _, e := range includeExts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			exts[e] = struct{}{}
		}
	}
	if len(exts) == 0 {
		for e := range constants.AllowedExtensions {
			exts[e] = struct{}{}
		}
	}
	return exts
}
