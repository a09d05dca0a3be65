package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTablesFromBytes parses a full Tables document from raw YAML bytes.
// Sections absent from the document keep the built-in defaults.
//
// Precondition: raw must be valid YAML for a Tables document.
// Postcondition: Returns validated *Tables, or an error.
func LoadTablesFromBytes(raw []byte) (*Tables, error) {
	tables := DefaultTables()
	var override Tables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parsing tables YAML: %w", err)
	}
	if len(override.Ships) > 0 {
		tables.Ships = override.Ships
	}
	if len(override.Weapons) > 0 {
		tables.Weapons = override.Weapons
	}
	if len(override.Shields) > 0 {
		tables.Shields = override.Shields
	}
	if len(override.Gadgets) > 0 {
		tables.Gadgets = override.Gadgets
	}
	if len(override.Goods) > 0 {
		tables.Goods = override.Goods
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// LoadTables reads every *.yaml file in dir, in lexicographic order, and
// merges each over the built-in defaults. Later files win on a per-section
// basis.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns validated *Tables, or an error on the first parse
// or validate failure; on error, the partial result is discarded.
func LoadTables(dir string) (*Tables, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir %q: %w", dir, err)
	}

	tables := DefaultTables()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var override Tables
		if err := yaml.Unmarshal(raw, &override); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if len(override.Ships) > 0 {
			tables.Ships = override.Ships
		}
		if len(override.Weapons) > 0 {
			tables.Weapons = override.Weapons
		}
		if len(override.Shields) > 0 {
			tables.Shields = override.Shields
		}
		if len(override.Gadgets) > 0 {
			tables.Gadgets = override.Gadgets
		}
		if len(override.Goods) > 0 {
			tables.Goods = override.Goods
		}
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}
