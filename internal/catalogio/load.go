// Package catalogio reads a catalog file from disk into the optimizer's
// Catalog shape. It is a pure I/O boundary: the optimizer package never
// imports it, and it never validates catalog semantics beyond "did this
// parse" — negative sizes/incomes remain the Catalog Expander's job.
package catalogio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blocksolve/blocksolve/internal/blockerr"
	"github.com/blocksolve/blocksolve/internal/optimizer"
)

// Load reads a catalog from path, detecting JSON vs YAML by extension.
func Load(path string) (optimizer.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return optimizer.Catalog{}, fmt.Errorf("failed to read catalog %q: %w", path, err)
	}

	var catalog optimizer.Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return optimizer.Catalog{}, fmt.Errorf("%w: %q: %v", blockerr.ErrInvalidCatalog, path, err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &catalog); err != nil {
			return optimizer.Catalog{}, fmt.Errorf("%w: %q: %v", blockerr.ErrInvalidCatalog, path, err)
		}
	default:
		return optimizer.Catalog{}, fmt.Errorf("%w: %q: unrecognized catalog extension %q", blockerr.ErrInvalidCatalog, path, ext)
	}

	return catalog, nil
}
