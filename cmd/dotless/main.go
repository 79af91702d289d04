// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dotless CLI.
// Implements: batch driver, table inspection and verse corpus (CLI surface).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/dotless/internal/logging"
	"github.com/pdiddy/dotless/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the run logger, opened before any subcommand runs.
var logger = logging.Nop()

// rootCmd is the base command for the dotless CLI.
var rootCmd = &cobra.Command{
	Use:   "dotless",
	Short: "Fold dotted Arabic verse text onto its dotless skeleton",
	Long: `dotless rewrites vowelled, dotted Arabic text into its skeletal dotless
form with a fixed substitution table. Verse files use one record per line,
<surah>|<ayah>|<text>; the numbering is copied through untouched and only the
text is rewritten.

Subcommands: normalize (files or stdin), record (single lines), table (print
the map), and corpus (store, look up and search normalized verses).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("command started", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dotless.yaml or ~/.config/dotless/dotless.yaml)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write run logs as JSON")
	rootCmd.PersistentFlags().String("log-file", "", "append run logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("map", "", "YAML table merged over the built-in map")

	mustBind("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
	mustBind("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	mustBind("normalize.map_file", rootCmd.PersistentFlags().Lookup("map"))

	setDefaults(types.Defaults())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dotless")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dotless"))
		}
	}

	viper.SetEnvPrefix("DOTLESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: flags, then DOTLESS_*
// environment variables, then the config file, then defaults.
func loadConfig() (types.Config, error) {
	cfg := types.Defaults()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// mustBind ties a config key to a flag so a set flag wins over the file.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// setDefaults registers every config key so environment variables are seen
// by Unmarshal even when no file or flag mentions them.
func setDefaults(cfg types.Config) {
	viper.SetDefault("log.json", cfg.Log.JSON)
	viper.SetDefault("log.file", cfg.Log.File)
	viper.SetDefault("normalize.input", cfg.Normalize.Input)
	viper.SetDefault("normalize.output", cfg.Normalize.Output)
	viper.SetDefault("normalize.map_file", cfg.Normalize.MapFile)
	viper.SetDefault("normalize.workers", cfg.Normalize.Workers)
	viper.SetDefault("normalize.fold_presentation", cfg.Normalize.FoldPresentation)
	viper.SetDefault("normalize.strict", cfg.Normalize.Strict)
	viper.SetDefault("corpus.dir", cfg.Corpus.Dir)
	viper.SetDefault("corpus.max_results", cfg.Corpus.MaxResults)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
