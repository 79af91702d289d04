// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dotless/internal/dotless"
	"github.com/pdiddy/dotless/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

// Export writes every stored verse to w. FormatText writes dotless records
// in the `<surah>|<ayah>|<text>` layout.
func (s *Store) Export(ctx context.Context, w io.Writer, format string) error {
	verses, err := s.query(ctx,
		`SELECT surah, ayah, text, dotless FROM verses ORDER BY surah, ayah`)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if verses == nil {
		verses = []types.Verse{}
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(verses); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verses); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case FormatText:
		for _, v := range verses {
			rec := dotless.Record{Surah: fmt.Sprint(v.Surah), Ayah: fmt.Sprint(v.Ayah), Text: v.Dotless}
			if _, err := fmt.Fprintln(w, rec.String()); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or text", format)
	}
}
