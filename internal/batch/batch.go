// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch streams line-oriented verse files through a dotless.Map.
// It owns all I/O; the map itself never fails. One output line is written
// for every input line, in input order.
// Implements: batch driver.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/dotless/internal/dotless"
	"github.com/pdiddy/dotless/internal/logging"
)

const (
	readBufSize  = 64 * 1024
	writeBufSize = 64 * 1024
	// chunkLines is the number of lines handed to a worker at a time.
	chunkLines = 512
)

// ErrInvalidUTF8 is returned in strict mode for lines that are not UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Options tunes a Processor.
type Options struct {
	// Workers is the number of normalizing goroutines. Values below 2 run
	// everything on the calling goroutine.
	Workers int

	// FoldPresentation folds Arabic presentation forms in the text field to
	// base letters before mapping.
	FoldPresentation bool

	// Strict fails the run on the first line that is not valid UTF-8.
	Strict bool
}

// Summary counts what a run did.
type Summary struct {
	Lines      int `json:"lines" yaml:"lines"`
	Numbered   int `json:"numbered" yaml:"numbered"`
	Unnumbered int `json:"unnumbered" yaml:"unnumbered"`
	// Removed is the number of code points dropped by the map.
	Removed int `json:"removed" yaml:"removed"`
}

func (s *Summary) add(o Summary) {
	s.Lines += o.Lines
	s.Numbered += o.Numbered
	s.Unnumbered += o.Unnumbered
	s.Removed += o.Removed
}

// Processor applies a Map to whole streams.
type Processor struct {
	m      *dotless.Map
	opts   Options
	logger logging.Logger
}

// NewProcessor creates a Processor. A nil logger discards log output.
func NewProcessor(m *dotless.Map, opts Options, logger logging.Logger) *Processor {
	if m == nil {
		m = dotless.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Processor{m: m, opts: opts, logger: logger}
}

// Process reads records from r and writes their normalized form to w.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	var (
		summary Summary
		err     error
	)
	if p.opts.Workers > 1 {
		summary, err = p.processParallel(ctx, r, w)
	} else {
		summary, err = p.processSequential(ctx, r, w)
	}
	if err != nil {
		p.logger.Error("batch failed", "lines", summary.Lines, "error", err)
		return summary, err
	}
	p.logger.Info("batch finished",
		"lines", summary.Lines,
		"numbered", summary.Numbered,
		"unnumbered", summary.Unnumbered,
		"removed", summary.Removed,
		"workers", p.opts.Workers,
	)
	return summary, nil
}

// Line normalizes a single line and reports what happened to it.
func (p *Processor) Line(line string) (string, Summary) {
	line = dotless.TrimLineBreak(line)
	rec, numbered := dotless.SplitRecord(line)
	if p.opts.FoldPresentation {
		if numbered {
			rec.Text = dotless.FoldPresentationForms(rec.Text)
			line = rec.String()
		} else {
			line = dotless.FoldPresentationForms(line)
		}
	}

	out := p.m.NormalizeLine(line)
	s := Summary{
		Lines:   1,
		Removed: utf8.RuneCountInString(line) - utf8.RuneCountInString(out) + 1,
	}
	if numbered {
		s.Numbered = 1
	} else {
		s.Unnumbered = 1
	}
	return out, s
}

func (p *Processor) checkLine(line string, lineNo int) error {
	if p.opts.Strict && !utf8.ValidString(line) {
		return fmt.Errorf("line %d: %w", lineNo, ErrInvalidUTF8)
	}
	return nil
}

func (p *Processor) processSequential(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	var summary Summary
	br := bufio.NewReaderSize(r, readBufSize)
	bw := bufio.NewWriterSize(w, writeBufSize)

	for lineNo := 1; ; lineNo++ {
		if lineNo%chunkLines == 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}
		}

		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if cerr := p.checkLine(line, lineNo); cerr != nil {
				return summary, cerr
			}
			out, s := p.Line(line)
			if _, werr := bw.WriteString(out); werr != nil {
				return summary, fmt.Errorf("writing output: %w", werr)
			}
			summary.add(s)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("reading input: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("writing output: %w", err)
	}
	return summary, nil
}

// chunk is a run of consecutive lines. done is closed once out, summary and
// err are set.
type chunk struct {
	first   int
	lines   []string
	out     []byte
	summary Summary
	err     error
	done    chan struct{}
}

func (p *Processor) processChunk(c *chunk) {
	defer close(c.done)
	for i, line := range c.lines {
		if err := p.checkLine(line, c.first+i); err != nil {
			c.err = err
			return
		}
		out, s := p.Line(line)
		c.out = append(c.out, out...)
		c.summary.add(s)
	}
}

// readChunk reads up to n lines. It returns io.EOF together with the final
// lines when the input is exhausted.
func readChunk(br *bufio.Reader, n int) ([]string, error) {
	lines := make([]string, 0, n)
	for len(lines) < n {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err != nil {
			return lines, err
		}
	}
	return lines, nil
}

// processParallel fans chunks out to workers. The reader queues every chunk
// on order before handing it to a worker, so the single writer emits chunks
// in input order.
func (p *Processor) processParallel(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	workers := p.opts.Workers
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan *chunk, workers)
	order := make(chan *chunk, workers*2)

	g.Go(func() error {
		defer close(jobs)
		defer close(order)

		br := bufio.NewReaderSize(r, readBufSize)
		next := 1
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := readChunk(br, chunkLines)
			if len(lines) > 0 {
				c := &chunk{first: next, lines: lines, done: make(chan struct{})}
				next += len(lines)
				select {
				case order <- c:
				case <-ctx.Done():
					return ctx.Err()
				}
				select {
				case jobs <- c:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for c := range jobs {
				p.processChunk(c)
				if c.err != nil {
					return c.err
				}
			}
			return nil
		})
	}

	var summary Summary
	g.Go(func() error {
		bw := bufio.NewWriterSize(w, writeBufSize)
		for c := range order {
			select {
			case <-c.done:
			case <-ctx.Done():
				return ctx.Err()
			}
			if c.err != nil {
				return c.err
			}
			if _, err := bw.Write(c.out); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			summary.add(c.summary)
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	})

	err := g.Wait()
	return summary, err
}
