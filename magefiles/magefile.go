//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for dotless developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"corpus",
	"texts/source",
	"texts/dotless",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "dotless"
	cmdPkg  = "./cmd/dotless"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Normalize builds the CLI and rewrites every file in texts/source into
// texts/dotless.
func Normalize() error {
	mg.Deps(Init, Build)

	sources, err := filepath.Glob(filepath.Join("texts", "source", "*.txt"))
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Println("[normalize] No .txt files in texts/source.")
		return nil
	}
	args := append([]string{"normalize", "--out-dir", filepath.Join("texts", "dotless")}, sources...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Corpus builds the CLI and ingests every source file into the corpus
// database. Ingest stores the dotless form itself, so the normalized copies
// in texts/dotless are not needed.
func Corpus() error {
	mg.Deps(Init, Build)

	sources, err := filepath.Glob(filepath.Join("texts", "source", "*.txt"))
	if err != nil {
		return err
	}
	for _, src := range sources {
		if err := sh.RunV(filepath.Join(binDir, binName), "corpus", "ingest", src); err != nil {
			return fmt.Errorf("ingesting %s: %w", src, err)
		}
	}
	return nil
}

// Stats prints Go production/test line counts and the number of verse lines
// in the source and normalized text directories.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	for _, dir := range projectDirs[1:] {
		n, err := countTextLines(dir)
		if err != nil {
			return err
		}
		fmt.Printf("Lines of text (%s): %d\n", dir, n)
	}
	return nil
}

// countGoLines counts non-blank lines in production and test Go files,
// skipping hidden and underscore directories.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); len(name) > 1 && (name[0] == '_' || name[0] == '.') {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countTextLines counts non-blank lines in the .txt files of dir. A missing
// dir counts as zero.
func countTextLines(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += nonBlankLines(data)
	}
	return total, nil
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
