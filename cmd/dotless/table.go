// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dotless/internal/dotless"
	"github.com/pdiddy/dotless/internal/mapfile"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the substitution table",
	Long: `Table prints the effective substitution table: the built-in rows,
merged with --map when given. --format yaml writes a file that --map
accepts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := mapfile.Build(cfg.Normalize.MapFile)
		if err != nil {
			return err
		}

		switch format {
		case "yaml":
			return mapfile.Write(cmd.OutOrStdout(), m.Entries())
		case "text", "":
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SOURCE\tCODE POINTS\tREPLACEMENT\tCLASS")
			for _, e := range m.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.Source, codePoints(e.Source), displayReplacement(e), e.Class)
			}
			return tw.Flush()
		default:
			return fmt.Errorf("unsupported format %q: use text or yaml", format)
		}
	},
}

func codePoints(s string) string {
	var out string
	for i, r := range []rune(s) {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%U", r)
	}
	return out
}

func displayReplacement(e dotless.Entry) string {
	if e.Replacement == "" {
		return "(deleted)"
	}
	return e.Replacement + " " + codePoints(e.Replacement)
}

func init() {
	tableCmd.Flags().String("format", "text", "output format: text or yaml")
	rootCmd.AddCommand(tableCmd)
}
