package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBubbles loads Bubbles configuration.
// Search order: customPath -> ~/.arcade/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default
// Only a bad customPath is an error; unreadable fallbacks are skipped.
// The result is always validated.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BubblesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parseBubbles(data, customPath)
	}

	for _, path := range []string{userConfigPath("bubbles.yaml"), "configs/bubbles.yaml"} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBubbles(data, path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBubbles(defaultBubblesYAML, "embedded default")
	if err != nil {
		return DefaultBubblesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBubbles decodes one YAML document over the defaults and validates it.
// Keys the document leaves out keep their default values.
func parseBubbles(data []byte, source string) (BubblesConfig, error) {
	cfg := DefaultBubblesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BubblesConfig{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	cfg.Validate()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
