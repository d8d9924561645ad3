// Package config loads the daemon's runtime configuration with viper,
// the way the original batch driver took a handful of command-line flags
// but expanded here to environment-variable and config-file overrides
// since a long-running daemon needs more than flags can comfortably
// carry.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/mwanga/skirmish-engine/model"
)

// Config is every tunable the daemon accepts, with defaults matching the
// movement engine's built-in constants (model package). cmd/skirmishd
// applies ListenAddr, TickRate (the tick loop's period), the grid and tile
// dimensions and MetricsNamespace; the force, radius and wait fields are
// loaded but not applied — the movement engine uses the model constants.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`

	TickRate int `mapstructure:"tick_rate"`

	MaxForce             float64 `mapstructure:"max_force"`
	SeparationForceScale float64 `mapstructure:"separation_force_scale"`
	ArriveForceScale     float64 `mapstructure:"arrive_force_scale"`
	CohesionForceScale   float64 `mapstructure:"cohesion_force_scale"`

	ArriveSlowingRadius  float64 `mapstructure:"arrive_slowing_radius"`
	CollisionMaxSeeAhead float64 `mapstructure:"collision_max_see_ahead"`
	WaitTicks            int     `mapstructure:"wait_ticks"`

	GridWidth  int `mapstructure:"grid_width"`
	GridDepth  int `mapstructure:"grid_depth"`

	TileWidth float64 `mapstructure:"tile_width"`
	TileDepth float64 `mapstructure:"tile_depth"`

	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

// TickPeriod derives the tick driver's sleep interval from TickRate.
func (c Config) TickPeriod() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func defaults() Config {
	return Config{
		ListenAddr:           ":8080",
		TickRate:             model.TickRate,
		MaxForce:             model.MaxForce,
		SeparationForceScale: model.SeparationForceScale,
		ArriveForceScale:     model.ArriveForceScale,
		CohesionForceScale:   model.CohesionForceScale,
		ArriveSlowingRadius:  model.ArriveSlowingRadius,
		CollisionMaxSeeAhead: model.CollisionMaxSeeAhead,
		WaitTicks:            model.WaitTicks,
		GridWidth:            128,
		GridDepth:            128,
		TileWidth:            1.0,
		TileDepth:            1.0,
		MetricsNamespace:     "skirmish",
	}
}

// Load reads configuration from (in ascending priority) built-in
// defaults, a config file named skirmish.{yaml,toml,json,...} on the
// given search paths, and SKIRMISH_-prefixed environment variables.
// configPaths may be empty to skip file search entirely.
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("skirmish")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	def := defaults()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("max_force", def.MaxForce)
	v.SetDefault("separation_force_scale", def.SeparationForceScale)
	v.SetDefault("arrive_force_scale", def.ArriveForceScale)
	v.SetDefault("cohesion_force_scale", def.CohesionForceScale)
	v.SetDefault("arrive_slowing_radius", def.ArriveSlowingRadius)
	v.SetDefault("collision_max_see_ahead", def.CollisionMaxSeeAhead)
	v.SetDefault("wait_ticks", def.WaitTicks)
	v.SetDefault("grid_width", def.GridWidth)
	v.SetDefault("grid_depth", def.GridDepth)
	v.SetDefault("tile_width", def.TileWidth)
	v.SetDefault("tile_depth", def.TileDepth)
	v.SetDefault("metrics_namespace", def.MetricsNamespace)

	v.SetEnvPrefix("skirmish")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(configPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Config{}, errors.Wrap(err, "config: read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: unmarshal")
	}
	return cfg, nil
}
