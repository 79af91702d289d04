// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dotless/internal/batch"
	"github.com/pdiddy/dotless/internal/mapfile"
	"github.com/pdiddy/dotless/pkg/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [files...]",
	Short: "Normalize verse files to their dotless form",
	Long: `Normalize rewrites every line of a verse file. Numbered lines
(<surah>|<ayah>|<text>) keep their numbering and have only the text
rewritten; other lines are rewritten whole. The output has exactly one line
per input line, in the same order.

With file arguments each file is written under --out-dir with the same
name. Without arguments --input and --output are used; "-" or an empty value
means stdin or stdout.`,
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ncfg := cfg.Normalize

	m, err := mapfile.Build(ncfg.MapFile)
	if err != nil {
		return err
	}
	p := batch.NewProcessor(m, batch.Options{
		Workers:          ncfg.Workers,
		FoldPresentation: ncfg.FoldPresentation,
		Strict:           ncfg.Strict,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) > 0 {
		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			return fmt.Errorf("--out-dir is required when files are given")
		}
		result, err := p.ProcessPaths(ctx, args, outDir, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed normalization", result.Failed)
		}
		return nil
	}

	summary, err := normalizeStream(ctx, p, ncfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	batch.WriteSummary(cmd.ErrOrStderr(), summary)
	return nil
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// normalizeStream runs one input to one output, with stdin and stdout
// standing in for "-" or empty paths.
func normalizeStream(ctx context.Context, p *batch.Processor, cfg types.NormalizeConfig, stdin io.Reader, stdout io.Writer) (batch.Summary, error) {
	switch {
	case !isStdio(cfg.Input) && !isStdio(cfg.Output):
		return p.ProcessFile(ctx, cfg.Input, cfg.Output)
	case isStdio(cfg.Output):
		in := stdin
		if !isStdio(cfg.Input) {
			f, err := os.Open(cfg.Input)
			if err != nil {
				return batch.Summary{}, fmt.Errorf("opening input %s: %w", cfg.Input, err)
			}
			defer f.Close()
			in = f
		}
		return p.Process(ctx, in, stdout)
	default:
		// stdin to a file.
		out, err := os.Create(cfg.Output)
		if err != nil {
			return batch.Summary{}, fmt.Errorf("creating output %s: %w", cfg.Output, err)
		}
		summary, err := p.Process(ctx, stdin, out)
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output %s: %w", cfg.Output, cerr)
		}
		return summary, err
	}
}

func init() {
	normalizeCmd.Flags().StringP("input", "i", "", "verse file to read (- for stdin)")
	normalizeCmd.Flags().StringP("output", "o", "", "file to write (- for stdout)")
	normalizeCmd.Flags().String("out-dir", "", "output directory when files are given as arguments")
	normalizeCmd.Flags().Int("workers", 1, "number of normalizing goroutines")
	normalizeCmd.Flags().Bool("fold-presentation", false, "fold Arabic presentation forms to base letters first")
	normalizeCmd.Flags().Bool("strict", false, "fail on input that is not valid UTF-8")

	mustBind("normalize.input", normalizeCmd.Flags().Lookup("input"))
	mustBind("normalize.output", normalizeCmd.Flags().Lookup("output"))
	mustBind("normalize.workers", normalizeCmd.Flags().Lookup("workers"))
	mustBind("normalize.fold_presentation", normalizeCmd.Flags().Lookup("fold-presentation"))
	mustBind("normalize.strict", normalizeCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(normalizeCmd)
}
