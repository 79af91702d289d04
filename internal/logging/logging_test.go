// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dotless/pkg/types"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := New(types.LogConfig{File: path}, nil)
	require.NoError(t, err)

	logger.Info("normalize finished", "lines", 6236)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "normalize finished")
}

func TestNewBadLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "run.log")
	_, err := New(types.LogConfig{File: path}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening log file")
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("ignored", "k", "v")
	assert.NoError(t, logger.Close())
}
