package kmcconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file at path, unmarshals it into a Config,
// and validates it before returning — the engine never sees an
// unvalidated value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("kmcconfig: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("kmcconfig: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg back out as YAML, mirroring Load's format. Used by
// cmd/kmcsim's "--dump-config" flag to round-trip a validated config.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("kmcconfig: marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
