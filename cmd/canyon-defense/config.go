package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/canyon-defense/input"
	"github.com/lixenwraith/canyon-defense/parameter"
)

// Environment keys read after .env is loaded; flags win over environment
const (
	envPreset = "CANYON_PRESET"
	envConfig = "CANYON_CONFIG"
	envPolicy = "CANYON_POLICY"
	envDebug  = "CANYON_DEBUG"
	envKeys   = "CANYON_KEYS"
)

// appConfig is the resolved startup configuration
type appConfig struct {
	preset     parameter.Preset
	overrides  *parameter.Overrides
	keys       *input.KeyTable
	debug      bool
	seed       int64
	configPath string
	keysPath   string
}

// loadEnv reads .env from the working directory; a missing file is not an error
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// resolveConfig parses args with getenv as fallback for unset flags
func resolveConfig(args []string, getenv func(string) string, stderr io.Writer) (*appConfig, error) {
	fs := flag.NewFlagSet("canyon-defense", flag.ContinueOnError)
	fs.SetOutput(stderr)

	presetName := fs.String("preset", envOr(getenv, envPreset, ""), "constant preset: screen, arcade, large")
	configPath := fs.String("config", envOr(getenv, envConfig, ""), "TOML file with constant overrides")
	policyName := fs.String("policy", envOr(getenv, envPolicy, ""), "satchel policy: always-one, max-in-flight, periodic-throw-time")
	keysPath := fs.String("keys", envOr(getenv, envKeys, ""), "TOML key binding file")
	debugDefault, _ := strconv.ParseBool(envOr(getenv, envDebug, "false"))
	debug := fs.Bool("debug", debugDefault, "write logs/canyon-defense.log")
	seed := fs.Int64("seed", 0, "satchel RNG seed, 0 uses the clock")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &appConfig{
		debug:      *debug,
		seed:       *seed,
		configPath: *configPath,
		keysPath:   *keysPath,
		overrides:  &parameter.Overrides{},
	}

	if *configPath != "" {
		ov, err := parameter.LoadOverrides(*configPath)
		if err != nil {
			return nil, err
		}
		cfg.overrides = ov
	}

	// Flag preset beats the file's preset, which beats the default
	fallback, err := cfg.overrides.PresetOr(parameter.PresetScreen)
	if err != nil {
		return nil, err
	}
	cfg.preset = fallback
	if *presetName != "" {
		if cfg.preset, err = parameter.ParsePreset(*presetName); err != nil {
			return nil, err
		}
	}

	if *policyName != "" {
		m, err := parameter.ParseLimitingMethod(*policyName)
		if err != nil {
			return nil, err
		}
		cfg.overrides.SetLimitingMethod(m)
	}

	cfg.keys = input.DefaultKeyTable()
	if *keysPath != "" {
		data, err := os.ReadFile(*keysPath)
		if err != nil {
			return nil, fmt.Errorf("read key bindings: %w", err)
		}
		if cfg.keys, err = input.LoadKeyConfig(data); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
