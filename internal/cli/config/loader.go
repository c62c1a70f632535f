package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	defaults "github.com/openfab-labs/gridforge/internal/config"
)

const envPrefix = "GRIDFORGE_"

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ConfigFile forces a specific configuration file instead of searching
	// upward for gridforge.yaml.
	ConfigFile string

	// Flags, when set, contribute values for flags the user changed.
	Flags *pflag.FlagSet

	// WorkDir is the directory the upward search starts from. Defaults to
	// the process working directory.
	WorkDir string
}

// Load resolves the configuration from defaults, file, environment, and
// flags, in that order of increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(workDir)
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
	}

	// GRIDFORGE_PDK_DIR sets pdk_dir; a double underscore nests, so
	// GRIDFORGE_DRC__VIA_SIZE sets drc.via_size.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	cfg := &Config{configFile: configFile}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFile != "" {
		cfg.projectRoot = filepath.Dir(configFile)
	} else {
		cfg.projectRoot = workDir
	}
	cfg.PDKDir = cfg.resolvePath(cfg.PDKDir)
	cfg.OutDir = cfg.resolvePath(cfg.OutDir)
	cfg.RulesFile = cfg.resolvePath(cfg.RulesFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultValues() map[string]any {
	return map[string]any{
		"pdk_dir":   defaults.DefaultPDKDir,
		"out_dir":   defaults.DefaultOutDir,
		"libraries": defaults.DefaultLibraries(),
		"output":    defaults.DefaultOutput,
		"verbose":   false,
	}
}

// findConfigFile walks from dir toward the filesystem root looking for
// gridforge.yaml. Returns "" when none exists.
func findConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
