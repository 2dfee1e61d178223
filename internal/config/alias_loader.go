package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AliasOverrides lets operators extend the built-in alias tables without a
// code change. Player entries map a scraped display name to the name the
// roster API uses; team entries map alternate club spellings to the
// canonical short name; clubs map the analytics site's numeric team ids to
// club names.
type AliasOverrides struct {
	Players map[string]string `yaml:"players"`
	Teams   map[string]string `yaml:"teams"`
	Clubs   map[string]string `yaml:"clubs"`
}

func LoadAliasOverrides(path string) (AliasOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AliasOverrides{}, fmt.Errorf("read alias overrides: %w", err)
	}

	var ov AliasOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return AliasOverrides{}, fmt.Errorf("parse alias overrides: %w", err)
	}

	return ov, nil
}
