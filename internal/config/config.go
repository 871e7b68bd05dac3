// Package config loads migration settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads settings from path. Keys present in the file override the
// stock defaults; everything else keeps its default. An empty path returns
// the defaults.
func Load(path string) (migrate.Settings, error) {
	settings := migrate.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, fmt.Errorf("config file %s: %w", path, domain.ErrNotFound)
		}
		return settings, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML settings on top of the defaults.
func Parse(data []byte) (migrate.Settings, error) {
	settings := migrate.DefaultSettings()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return settings, fmt.Errorf("%w: failed to parse config: %v", domain.ErrMalformedInput, err)
	}
	if len(raw) == 0 {
		return settings, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return settings, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return migrate.DefaultSettings(), fmt.Errorf("%w: invalid config: %v", domain.ErrMalformedInput, err)
	}
	return settings, nil
}
