// Package config layers CLI flags, BLOCKSOLVE_* environment variables, an
// optional config file, and built-in defaults into a single validated
// Config, mirroring the layered viper setup of the acdtunes-spacetraders
// gobot's internal/infrastructure/config package.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

// Config is the merged, validated runtime configuration consumed by the CLI
// before any catalog is loaded.
type Config struct {
	Catalog           string            `mapstructure:"catalog" validate:"required"`
	Blocks            int               `mapstructure:"blocks" validate:"gte=1"`
	Capacity          int               `mapstructure:"capacity" validate:"gte=1"`
	BeamWidth         int               `mapstructure:"beam_width" validate:"gte=1"`
	Debug             bool              `mapstructure:"debug"`
	Quiet             bool              `mapstructure:"quiet"`
	StartingResources StartingResources `mapstructure:"starting_resources"`
	Output            string            `mapstructure:"output"`
}

// StartingResources mirrors optimizer.ResourceCost but lives in this package
// so config carries no dependency on internal/optimizer's internals.
type StartingResources struct {
	Money  int `mapstructure:"money" validate:"gte=0"`
	Wood   int `mapstructure:"wood" validate:"gte=0"`
	Cement int `mapstructure:"cement" validate:"gte=0"`
	Steel  int `mapstructure:"steel" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("blocks", 1)
	v.SetDefault("capacity", 50)
	v.SetDefault("beam_width", 400)
	v.SetDefault("debug", false)
	v.SetDefault("quiet", false)
	v.SetDefault("starting_resources.money", 1000)
	v.SetDefault("starting_resources.wood", 100)
	v.SetDefault("starting_resources.cement", 100)
	v.SetDefault("starting_resources.steel", 100)
}

// flagBindings maps a viper key whose mapstructure tag does not match its
// flag's literal name to the flag that should populate it. BindPFlags binds
// every flag under its own name, so any key listed here needs an explicit
// BindPFlag or the flag is silently ignored in favor of the default.
var flagBindings = map[string]string{
	"beam_width":                "beam",
	"starting_resources.money":  "money",
	"starting_resources.wood":   "wood",
	"starting_resources.cement": "cement",
	"starting_resources.steel":  "steel",
	"output":                    "out",
}

func bindMismatchedFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flagName := range flagBindings {
		f := flags.Lookup(flagName)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load builds a Config from, in increasing priority: built-in defaults, an
// optional config file (JSON/YAML, auto-detected by viper), the BLOCKSOLVE_*
// environment (including variables loaded from an optional .env file, which
// never replace ones already set), and bound CLI flags. No package-level
// viper instance is kept, so Load may run more than once per process.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	_ = godotenv.Load()

	v.SetEnvPrefix("BLOCKSOLVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("%w: binding flags: %v", blockerr.ErrInvalidArgument, err)
		}
		if err := bindMismatchedFlags(v, flags); err != nil {
			return nil, fmt.Errorf("%w: binding flags: %v", blockerr.ErrInvalidArgument, err)
		}
		if configPath, err := flags.GetString("config"); err == nil && configPath != "" {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%w: reading config file %q: %v", blockerr.ErrInvalidArgument, configPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling config: %v", blockerr.ErrInvalidArgument, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
