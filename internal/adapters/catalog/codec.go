package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/planner-go/internal/domain/planning"
)

// Format is a catalog file encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hjson":
		return FormatHJSON, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension: %q", filepath.Ext(path))
	}
}

// Extension returns the canonical file extension for f
func (f Format) Extension() string {
	return "." + string(f)
}

// Decode parses data in format f into out.
// YAML and HJSON documents are normalized to JSON first so every format shares the
// JSON field names and the PriorityValue decoding.
func Decode(data []byte, f Format, out interface{}) error {
	switch f {
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatYAML:
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		return remarshal(generic, out)
	case FormatHJSON:
		var generic interface{}
		if err := hjson.Unmarshal(data, &generic); err != nil {
			return err
		}
		return remarshal(generic, out)
	default:
		return fmt.Errorf("unsupported catalog format: %s", f)
	}
}

// Encode renders v in format f
func Encode(v interface{}, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatHJSON:
		var generic interface{}
		if err := remarshal(v, &generic); err != nil {
			return nil, err
		}
		return hjson.Marshal(generic)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", f)
	}
}

func remarshal(in, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	return json.Unmarshal(data, out)
}

// CheckUniqueMaterials fails with ErrDuplicateName when a materials document names the
// same material twice. encoding/json and hjson keep only the last value for a repeated
// key, so the check runs on the raw document. Malformed documents pass through for
// Decode to report.
func CheckUniqueMaterials(data []byte, f Format, source string) error {
	switch f {
	case FormatJSON:
		return firstDuplicate(jsonObjectKeys(data), source)
	case FormatYAML:
		return firstDuplicate(yamlMappingKeys(data), source)
	case FormatHJSON:
		var lenient interface{}
		if err := hjson.Unmarshal(data, &lenient); err != nil {
			return nil
		}
		options := hjson.DefaultDecoderOptions()
		options.DisallowDuplicateKeys = true
		var strict interface{}
		if err := hjson.UnmarshalWithOptions(data, &strict, options); err != nil {
			return planning.NewConfigurationError("materials file", source, planning.ErrDuplicateName, err.Error())
		}
		return nil
	default:
		return nil
	}
}

func firstDuplicate(names []string, source string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return planning.NewConfigurationError("material", name, planning.ErrDuplicateName, "declared twice in "+source)
		}
		seen[name] = true
	}
	return nil
}

// jsonObjectKeys returns the top-level keys of a JSON object in document order,
// repeats included.
func jsonObjectKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return keys
		}
	}
	return keys
}

// yamlMappingKeys returns the top-level mapping keys in document order. Decoding into
// a yaml.Node skips the duplicate-key check applied to typed targets.
func yamlMappingKeys(data []byte) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}
