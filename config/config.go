// Package config loads editor defaults and device settings from a TOML file and the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/calvinmclean/stepcurve/codec"
	"github.com/calvinmclean/stepcurve/curve"
)

const (
	EnvSerialPort = "STEPCURVE_SERIAL_PORT"
	EnvBaudRate   = "STEPCURVE_BAUD_RATE"
	EnvLogLevel   = "STEPCURVE_LOG_LEVEL"

	DefaultBaudRate = 115200
	DefaultTimeout  = 5 * time.Second
)

// Config is the complete application configuration
type Config struct {
	Curve    curve.Spec `toml:"curve"`
	Device   Device     `toml:"device"`
	Export   Export     `toml:"export"`
	LogLevel string     `toml:"log_level"`
}

// Device has the serial settings used to upload a ramp to the firmware
type Device struct {
	SerialPort string   `toml:"serial_port"`
	BaudRate   int      `toml:"baud_rate"`
	Timeout    Duration `toml:"timeout"`
}

// Export configures the array literal
type Export struct {
	ArrayName string `toml:"array_name"`
}

// Duration decodes TOML strings like "5s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration
func Default() Config {
	spec := curve.DefaultSpec()
	spec.KindName = spec.Kind.String()

	return Config{
		Curve: spec,
		Device: Device{
			BaudRate: DefaultBaudRate,
			Timeout:  Duration{DefaultTimeout},
		},
		Export:   Export{ArrayName: codec.DefaultName},
		LogLevel: "info",
	}
}

// Load reads the TOML file at path over the defaults and then applies environment overrides.
// An empty path or a missing file only applies the environment
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("error reading config %q: %w", path, err)
		}
	}

	err := cfg.Curve.ResolveKind()
	if err != nil {
		return Config{}, fmt.Errorf("invalid [curve] section: %w", err)
	}

	err = cfg.applyEnv()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv(EnvSerialPort); port != "" {
		c.Device.SerialPort = port
	}

	if baud := os.Getenv(EnvBaudRate); baud != "" {
		v, err := strconv.Atoi(baud)
		if err != nil || v <= 0 {
			return fmt.Errorf("invalid %s %q", EnvBaudRate, baud)
		}
		c.Device.BaudRate = v
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}

	return nil
}

// SlogLevel converts LogLevel, defaulting to Info for unknown names
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Write encodes c as TOML to path
func (c Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(c)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}
