// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ProcessFile normalizes inPath into outPath. Output is written to a
// temporary file next to outPath and renamed into place only when the whole
// input was processed, so a failed run never leaves a partial file.
func (p *Processor) ProcessFile(ctx context.Context, inPath, outPath string) (Summary, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Summary{}, fmt.Errorf("opening input %s: %w", inPath, err)
	}
	defer in.Close()

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outPath)+".*")
	if err != nil {
		return Summary{}, fmt.Errorf("creating output in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	summary, err := p.Process(ctx, in, tmp)
	if err != nil {
		tmp.Close()
		return summary, fmt.Errorf("normalizing %s: %w", inPath, err)
	}
	if err := tmp.Close(); err != nil {
		return summary, fmt.Errorf("closing output %s: %w", outPath, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return summary, fmt.Errorf("setting mode on %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return summary, fmt.Errorf("writing output %s: %w", outPath, err)
	}
	return summary, nil
}

// BatchResult holds the outcome of a multi-file run.
type BatchResult struct {
	Normalized int
	Failed     int
	Summary    Summary
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Normalized + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ProcessPaths normalizes each input into outDir under the same base name,
// printing per-file status to w and returning a summary. A failed file does
// not stop the remaining ones; a cancelled context does.
func (p *Processor) ProcessPaths(ctx context.Context, paths []string, outDir string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, in := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		base := filepath.Base(in)
		out := filepath.Join(outDir, base)
		if sameFile(in, out) {
			fmt.Fprintf(w, "failed:  %s (output would overwrite input)\n", base)
			result.Failed++
			continue
		}

		s, err := p.ProcessFile(ctx, in, out)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "normalized: %s (%d lines)\n", base, s.Lines)
		result.Normalized++
		result.Summary.add(s)
	}
	fmt.Fprintf(w, "\nBatch summary: %d normalized, %d failed (total: %d)\n",
		result.Normalized, result.Failed, result.Total())
	return result, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// WriteSummary prints s in the batch summary format.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nlines: %d, numbered: %d, unnumbered: %d, removed: %d\n",
		s.Lines, s.Numbered, s.Unnumbered, s.Removed)
}
