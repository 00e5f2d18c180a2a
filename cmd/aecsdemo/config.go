package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "AECS"

var ErrInvalidConfig = eris.New("invalid config")

// Config controls a demo run. Every field can be set by flag, by an
// AECS_ prefixed environment variable or by a config file, in that order of
// precedence.
type Config struct {
	Worlds      int     `mapstructure:"worlds"`
	Frames      int     `mapstructure:"frames"`
	Delta       float64 `mapstructure:"delta"`
	HoldForward int     `mapstructure:"hold-forward"`
	Player      string  `mapstructure:"player"`
	LogLevel    string  `mapstructure:"log-level"`
	Pretty      bool    `mapstructure:"pretty"`
	Dump        bool    `mapstructure:"dump"`
}

func DefaultConfig() Config {
	return Config{
		Worlds:      1,
		Frames:      120,
		Delta:       1.0 / 60,
		HoldForward: 30,
		Player:      "player",
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

func newFlagSet(def Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("aecsdemo", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file")
	fs.Int("worlds", def.Worlds, "number of independent worlds to run concurrently")
	fs.Int("frames", def.Frames, "frames to step each world")
	fs.Float64("delta", def.Delta, "seconds per frame")
	fs.Int("hold-forward", def.HoldForward, "frames to hold the forward key from the first frame")
	fs.String("player", def.Player, "player name")
	fs.String("log-level", def.LogLevel, "zerolog level")
	fs.Bool("pretty", def.Pretty, "human readable console logs")
	fs.Bool("dump", def.Dump, "print a JSON snapshot of every world when done")
	return fs
}

// LoadConfig resolves the configuration from args, the environment and an
// optional --config file.
func LoadConfig(args []string) (Config, error) {
	cfg := DefaultConfig()
	fs := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, eris.Wrap(err, "parse flags")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return cfg, eris.Wrap(err, "bind flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, eris.Wrapf(err, "couldn't load config %s", file)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, eris.Wrap(err, "couldn't read config")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Worlds < 1:
		return eris.Wrapf(ErrInvalidConfig, "worlds must be positive, got %d", c.Worlds)
	case c.Frames < 0:
		return eris.Wrapf(ErrInvalidConfig, "frames must not be negative, got %d", c.Frames)
	case c.Delta <= 0:
		return eris.Wrapf(ErrInvalidConfig, "delta must be positive, got %v", c.Delta)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return nil
}
