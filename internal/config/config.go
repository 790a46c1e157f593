package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vodindex", "config.yml")
}

// Load reads settings from the config file and environment. A missing file
// is fine: flags and defaults cover everything.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("api_base", "")
	v.SetDefault("lang", "E")
	v.SetDefault("quality", 720)
	v.SetDefault("rate_limit", 1.0)
	v.SetDefault("warning", true)
	v.SetDefault("work_dir", ".")
	v.SetDefault("sub_dir", "vodindex-media")
	v.SetDefault("include_categories", []string{CategoryDefault})
	v.SetDefault("exclude_categories", []string{})

	v.SetEnvPrefix("VODINDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("VODINDEX_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	s.WorkDir = ExpandHome(s.WorkDir)
	return &s, nil
}

// Save writes the persistent subset of the settings to the default path.
func Save(s *Settings) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(map[string]interface{}{
		"api_base":           s.APIBase,
		"lang":               s.Lang,
		"quality":            s.Quality,
		"rate_limit":         s.RateLimit,
		"include_categories": s.IncludeCategories,
		"exclude_categories": s.ExcludeCategories,
		"work_dir":           s.WorkDir,
		"sub_dir":            s.SubDir,
	})
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
