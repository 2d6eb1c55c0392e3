package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names probed in the working directory when no explicit
// path is given.
const (
	ConfigFileName    = "skyjson.yaml"
	ConfigFileNameAlt = "skyjson.yml"
)

// EnvPrefix namespaces the environment variables read by Load.
const EnvPrefix = "SKYJSON_"

// envKeys maps flattened environment suffixes to config keys. Anything
// else under the prefix is ignored.
var envKeys = map[string]string{
	"arena_capacity":   "arena.capacity",
	"parser_max_depth": "parser.max_depth",
	"log_level":        "log.level",
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"arena-capacity": "arena.capacity",
	"max-depth":      "parser.max_depth",
	"log-level":      "log.level",
}

// Load builds the configuration by layering, lowest priority first:
// built-in defaults, the config file, SKYJSON_* environment variables,
// and explicitly-set command flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"arena.capacity":   def.Arena.Capacity,
		"parser.max_depth": def.Parser.MaxDepth,
		"log.level":        def.Log.Level,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only flags that were explicitly set may override.
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile probes the working directory for a config file.
// Returns empty string if none exists.
func findConfigFile() string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
