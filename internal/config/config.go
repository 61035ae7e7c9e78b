// SPDX-License-Identifier: EPL-2.0

// Package config loads the player configuration.
//
// Sources are applied in order, each overriding the last: Defaults, an
// optional YAML file, a .env file, the process environment, and finally the
// command line flags bound with BindFlags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output selects where the player sends audio.
const (
	OutputWaveOut = "waveout"
	OutputWav     = "wav"
)

// PathEnv names the variable holding the YAML file path when none is given.
const PathEnv = "PCMOUT_CONFIG"

var (
	ErrBlockSize = errors.New("block size must be positive")
	ErrOutput    = errors.New("unknown output")
	ErrWavPath   = errors.New("wav output needs a file path")
)

type Config struct {
	Device      string `yaml:"device" env:"PCMOUT_DEVICE"`           // device name; empty selects the default device
	AppName     string `yaml:"app_name" env:"PCMOUT_APP_NAME"`       // shown in logs
	Description string `yaml:"description" env:"PCMOUT_DESCRIPTION"` // shown in logs
	BlockSize   int    `yaml:"block_size" env:"PCMOUT_BLOCK_SIZE"`   // bytes per write
	Debug       bool   `yaml:"debug" env:"PCMOUT_DEBUG"`
	Output      string `yaml:"output" env:"PCMOUT_OUTPUT"`     // waveout|wav
	WavPath     string `yaml:"wav_path" env:"PCMOUT_WAV_PATH"` // destination for the wav output
}

// Defaults returns the configuration before any source is applied.
func Defaults() *Config {
	return &Config{
		AppName:   "pcmout-player",
		BlockSize: 4096,
		Output:    OutputWaveOut,
	}
}

// Load builds a Config from Defaults, the YAML file at path (or at
// $PCMOUT_CONFIG when path is empty), the dotenv files (".env" when none are
// given) and the environment. Missing dotenv files are ignored; a missing
// YAML file that was asked for is not.
func Load(path string, dotenv ...string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	return nil
}

// BindFlags registers a flag per field on flags, defaulting to the current values.
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.Device, "device", c.Device, "output device name (empty for the default device)")
	flags.StringVar(&c.AppName, "app-name", c.AppName, "application name for logs")
	flags.StringVar(&c.Description, "description", c.Description, "stream description for logs")
	flags.IntVar(&c.BlockSize, "block-size", c.BlockSize, "bytes per write")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	flags.StringVar(&c.Output, "output", c.Output, "output: waveout|wav")
	flags.StringVar(&c.WavPath, "wav-path", c.WavPath, "destination file for -output=wav")
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrBlockSize, c.BlockSize)
	}

	switch c.Output {
	case OutputWaveOut:
	case OutputWav:
		if c.WavPath == "" {
			return ErrWavPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrOutput, c.Output)
	}

	return nil
}
