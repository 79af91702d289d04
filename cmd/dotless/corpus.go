// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dotless/internal/corpus"
	"github.com/pdiddy/dotless/internal/mapfile"
	"github.com/pdiddy/dotless/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the verse corpus (ingest, lookup, search, export)",
	Long: `Corpus keeps numbered verses and their dotless form in a local SQLite
database. Searches are normalized first, so a dotted query and its dotless
spelling find the same verses.`,
}

// --- ingest subcommand ---

var corpusIngestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Store verses from a file (or stdin) in the corpus",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCorpusIngest,
}

func runCorpusIngest(cmd *cobra.Command, args []string) error {
	store, err := openCorpus()
	if err != nil {
		return err
	}
	defer store.Close()

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	summary, err := store.Ingest(context.Background(), in, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Info("corpus ingest finished", "stored", summary.Stored, "skipped", summary.Skipped)
	return nil
}

// --- lookup subcommand ---

var corpusLookupCmd = &cobra.Command{
	Use:   "lookup SURAH:AYAH",
	Short: "Print one verse and its dotless form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surah, ayah, err := parseVerseRef(args[0])
		if err != nil {
			return err
		}
		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		v, err := store.Lookup(context.Background(), surah, ayah)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return printVerses(cmd.OutOrStdout(), []types.Verse{v}, jsonOutput)
	},
}

// parseVerseRef parses "2:255" (or "2|255") into surah and ayah.
func parseVerseRef(ref string) (int, int, error) {
	sep := strings.IndexAny(ref, ":|")
	if sep < 0 {
		return 0, 0, fmt.Errorf("verse reference %q: want SURAH:AYAH", ref)
	}
	surah, err := strconv.Atoi(ref[:sep])
	if err != nil {
		return 0, 0, fmt.Errorf("verse reference %q: bad surah: %w", ref, err)
	}
	ayah, err := strconv.Atoi(ref[sep+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("verse reference %q: bad ayah: %w", ref, err)
	}
	return surah, ayah, nil
}

// --- search subcommand ---

var corpusSearchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Find verses whose dotless text contains the query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		verses, err := store.Search(context.Background(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		return printVerses(cmd.OutOrStdout(), verses, jsonOutput)
	},
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus as YAML, JSON or dotless records",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openCorpus()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Export(context.Background(), cmd.OutOrStdout(), format)
	},
}

// --- shared helpers ---

func openCorpus() (*corpus.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	m, err := mapfile.Build(cfg.Normalize.MapFile)
	if err != nil {
		return nil, err
	}
	return corpus.Open(cfg.Corpus, m)
}

func printVerses(w io.Writer, verses []types.Verse, jsonOutput bool) error {
	if jsonOutput {
		if verses == nil {
			verses = []types.Verse{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(verses)
	}

	if len(verses) == 0 {
		fmt.Fprintln(w, "No verses found.")
		return nil
	}
	for _, v := range verses {
		fmt.Fprintf(w, "%d:%d\n  %s\n  %s\n", v.Surah, v.Ayah, v.Text, v.Dotless)
	}
	fmt.Fprintf(w, "\n%d verses\n", len(verses))
	return nil
}

func init() {
	corpusCmd.PersistentFlags().String("corpus-dir", "corpus", "directory holding the corpus database")
	corpusCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	mustBind("corpus.dir", corpusCmd.PersistentFlags().Lookup("corpus-dir"))
	mustBind("corpus.max_results", corpusCmd.PersistentFlags().Lookup("max-results"))

	corpusLookupCmd.Flags().Bool("json", false, "output as JSON")

	corpusSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusSearchCmd.Flags().Bool("json", false, "output results as JSON")

	corpusExportCmd.Flags().String("format", corpus.FormatYAML, "export format: yaml, json or text")

	corpusCmd.AddCommand(corpusIngestCmd)
	corpusCmd.AddCommand(corpusLookupCmd)
	corpusCmd.AddCommand(corpusSearchCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
