// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging adapts github.com/baditaflorin/l to the small Logger
// interface used across the pipeline.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"

	"github.com/pdiddy/dotless/pkg/types"
)

// Logger is the structured logger used by the pipeline stages.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// stdLogger wraps an l.Logger and the file it writes to, if any.
type stdLogger struct {
	logger l.Logger
	file   *os.File
}

// New creates a logger from cfg. Without a log file it writes to w.
func New(cfg types.LogConfig, w io.Writer) (Logger, error) {
	var file *os.File
	out := w
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		file = f
		out = f
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     out,
		JsonFormat: cfg.JSON,
		AsyncWrite: false,
		AddSource:  false,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return &stdLogger{logger: logger, file: file}, nil
}

func (s *stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger and closes its log file.
func (s *stdLogger) Close() error {
	err := s.logger.Close()
	if s.file != nil {
		// The logger may already have closed its output.
		if cerr := s.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
			err = cerr
		}
	}
	return err
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
