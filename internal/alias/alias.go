// Package alias loads the author alias mapping used to group identities.
package alias

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/gitimpact/internal/contract"
	"gopkg.in/yaml.v3"
)

// FileLoader reads aliases from a JSON or YAML file.
type FileLoader struct{}

var _ contract.AliasLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a new file-based alias loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads the mapping at path. A missing file is reported through the
// boolean, not as an error, because aliases are optional.
func (l *FileLoader) Load(path string) (map[string]string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read alias file %q: %w", path, err)
	}

	raw, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, true, fmt.Errorf("failed to parse alias file %q: %w", path, err)
	}
	normalized, err := Normalize(raw)
	if err != nil {
		return nil, true, fmt.Errorf("invalid alias file %q: %w", path, err)
	}
	return normalized, true, nil
}

// Parse decodes a raw -> canonical mapping. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Parse(data []byte, ext string) (map[string]string, error) {
	mapping := make(map[string]string)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &mapping); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &mapping); err != nil {
			return nil, err
		}
	}
	return mapping, nil
}

// Normalize resolves chained aliases (a -> b, b -> c becomes a -> c, b -> c)
// so that a single lookup always yields the final canonical name. Applying the
// result twice is therefore the same as applying it once. Cycles are rejected.
func Normalize(mapping map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(mapping))
	for _, raw := range sortedKeys(mapping) {
		canonical := mapping[raw]
		seen := map[string]struct{}{raw: {}}
		for {
			next, ok := mapping[canonical]
			if !ok || next == canonical {
				break
			}
			if _, loop := seen[canonical]; loop {
				return nil, fmt.Errorf("alias cycle detected starting at %q", raw)
			}
			seen[canonical] = struct{}{}
			canonical = next
		}
		if canonical == raw {
			continue
		}
		out[raw] = canonical
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
