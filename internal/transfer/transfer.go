// Package transfer moves a whole dataset in and out of the store as a file.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/wellness/internal/codec"
	"github.com/julianstephens/wellness/internal/models"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatCBOR  Format = "cbor"
)

// ParseFormat accepts a format name, case-insensitively. "yml" is yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unsupported format %q (want json, jsonc, yaml or cbor)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to json
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatJSON
}

// Export writes ds to w. JSON output is indented and keeps unknown keys;
// yaml and cbor carry the four collections only.
func Export(w io.Writer, ds models.Dataset, format Format) error {
	switch format {
	case FormatJSON, FormatJSONC:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return codec.NewEncoder(w).Encode(ds)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// Import parses data and merges it over the default dataset with the same
// per-key rules used when loading from storage.
func Import(data []byte, format Format) (models.Dataset, error) {
	var doc map[string]any

	switch format {
	case FormatJSON, FormatJSONC:
		ds, err := models.MergeOverDefaults(jsonc.ToJSON(data))
		if err != nil {
			return models.Dataset{}, fmt.Errorf("parsing import: %w", err)
		}
		return ds, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return models.Dataset{}, fmt.Errorf("parsing import: %w", err)
		}
	case FormatCBOR:
		if err := codec.Unmarshal(data, &doc); err != nil {
			return models.Dataset{}, fmt.Errorf("parsing import: %w", err)
		}
	default:
		return models.Dataset{}, fmt.Errorf("unsupported import format %q", format)
	}

	if doc == nil {
		return models.Dataset{}, fmt.Errorf("parsing import: document is not a mapping")
	}
	raw := make(map[string]json.RawMessage, len(doc))
	for k, v := range doc {
		b, err := json.Marshal(plainDates(v))
		if err != nil {
			return models.Dataset{}, fmt.Errorf("parsing import: key %s: %w", k, err)
		}
		raw[k] = b
	}
	return models.MergeRaw(raw), nil
}

// plainDates turns unquoted yaml dates back into YYYY-MM-DD strings
func plainDates(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.DateOnly)
	case map[string]any:
		for k, e := range x {
			x[k] = plainDates(e)
		}
	case []any:
		for i, e := range x {
			x[i] = plainDates(e)
		}
	}
	return v
}
