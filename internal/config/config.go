// Package config layers the runtime configuration from defaults, an
// optional yaml file, CODECARDS_* environment variables and command-line
// flags, later sources winning.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the resolved runtime configuration.
type Config struct {
	DB      string   `koanf:"db"`      // sqlite database path
	Listen  string   `koanf:"listen"`  // http listen address
	Seed    bool     `koanf:"seed"`    // insert sample data on an empty store
	Import  bool     `koanf:"import"`  // run the importer and exit
	Sources []string `koanf:"sources"` // import sources: directories or git URLs
	Repos   string   `koanf:"repos"`   // cache directory for git sources
}

// Flags declares the command-line flags backing the config keys.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("codecards", pflag.ExitOnError)
	fs.String("config", "", "Path to a yaml config file")
	fs.String("db", "codecards.db", "Path to the sqlite database file")
	fs.String("listen", ":8080", "HTTP listen address")
	fs.Bool("seed", true, "Insert the sample deck when the store is empty")
	fs.Bool("import", false, "Import the configured sources and exit")
	fs.StringSlice("sources", nil, "Deck sources to import (directories or git URLs)")
	fs.String("repos", "repos", "Cache directory for git deck sources")
	return fs
}

// Load resolves the configuration from all sources.
func Load(fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CODECARDS_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "CODECARDS_")), "_", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("loading flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadArgs parses args and resolves the configuration; the entrypoint's one
// call.
func LoadArgs(args []string) (Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return Load(fs)
}
