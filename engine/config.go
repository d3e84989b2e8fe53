package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/awklab/treelight/internal/awk"
	"github.com/awklab/treelight/internal/types"
)

func defaultGroupNames() []string {
	groups := awk.DefaultGroups()
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

// LoadConfig reads a YAML configuration file into the explicit
// configuration record every query runs under. A missing file is an error;
// callers wanting defaults use types.Default directly.
func LoadConfig(path string) (types.Config, error) {
	cfg := types.Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg.Normalize(), nil
}

// WriteDefaultConfig writes the default configuration to path, listing
// every default feature group so toggling is a one-line edit.
func WriteDefaultConfig(path string) error {
	cfg := types.Default()
	for _, name := range defaultGroupNames() {
		cfg.Features[name] = true
	}

	d, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}
	return nil
}
