// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds settings for run-level structured logging.
type LogConfig struct {
	// JSON selects JSON log lines instead of text.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`

	// File is an optional log file path. Empty logs to stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// NormalizeConfig holds settings for the normalize stage.
type NormalizeConfig struct {
	// Input is the verse file to read. Empty or "-" reads stdin.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the file to write. Empty or "-" writes stdout.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// MapFile is an optional YAML table merged over the built-in map.
	MapFile string `json:"map_file,omitempty" yaml:"map_file,omitempty" mapstructure:"map_file"`

	// Workers is the number of normalizing goroutines (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// FoldPresentation rewrites Arabic presentation forms to base letters
	// before mapping.
	FoldPresentation bool `json:"fold_presentation" yaml:"fold_presentation" mapstructure:"fold_presentation"`

	// Strict rejects input that is not valid UTF-8.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// CorpusConfig holds settings for the verse corpus store.
type CorpusConfig struct {
	// Dir is the directory holding the SQLite database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize" mapstructure:"normalize"`
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
}

// Defaults returns a Config with every default applied.
func Defaults() Config {
	return Config{
		Normalize: NormalizeConfig{Workers: 1},
		Corpus:    CorpusConfig{Dir: "corpus", MaxResults: 20},
	}
}
