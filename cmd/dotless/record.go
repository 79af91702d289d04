// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dotless/internal/mapfile"
)

var recordCmd = &cobra.Command{
	Use:   "record LINE...",
	Short: "Normalize single records given as arguments",
	Long: `Record normalizes each argument as one line and prints the result.
Useful for checking how a verse or a word is rewritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := mapfile.Build(cfg.Normalize.MapFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, line := range args {
			fmt.Fprint(out, m.NormalizeRecord(line))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
