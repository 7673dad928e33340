package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Limits accepted by the driver for board dimensions and run length
const (
	MinRows        = 1
	MaxRows        = 200
	MinColumns     = 0
	MaxColumns     = 200
	MinGenerations = 1
	MaxGenerations = 200

	// UnsetColumns marks columns as not chosen yet, since 0 columns is a valid board
	UnsetColumns = -1
)

// ErrInvalidConfig is the cause of every validation failure in Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Rows                int           `json:"rows"`
	Columns             int           `json:"columns"`
	Generations         int           `json:"generations"`
	Seed                int64         `json:"seed"`
	Density             int           `json:"density"`
	Workers             int           `json:"workers"`
	FrameRate           time.Duration `json:"frame_rate"`
	Pattern             string        `json:"pattern"`
	StopWhenStagnant    bool          `json:"stop_when_stagnant"`
	StagnationThreshold int           `json:"stagnation_threshold"`
}

// DefaultConfig returns sensible defaults. Zero rows and generations and
// UnsetColumns mean the driver asks for them.
func DefaultConfig() Config {
	return Config{
		Columns:             UnsetColumns,
		Density:             3,
		Workers:             1,
		FrameRate:           500 * time.Millisecond,
		StagnationThreshold: 5,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks every field against the ranges the driver accepts
func (c Config) Validate() error {
	if err := CheckRange("rows", c.Rows, MinRows, MaxRows); err != nil {
		return err
	}
	if err := CheckRange("columns", c.Columns, MinColumns, MaxColumns); err != nil {
		return err
	}
	if err := CheckRange("generations", c.Generations, MinGenerations, MaxGenerations); err != nil {
		return err
	}
	if c.Density < 2 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] density must be at least 2, got %d", c.Density)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must be positive, got %d", c.Workers)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame_rate must not be negative, got %s", c.FrameRate)
	}
	if c.StopWhenStagnant && c.StagnationThreshold < 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] stagnation_threshold must be positive, got %d", c.StagnationThreshold)
	}
	return nil
}

// CheckRange reports an ErrInvalidConfig unless lo <= v <= hi
func CheckRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return errors.Wrapf(ErrInvalidConfig, "%s must be in the range %d to %d, got %d", name, lo, hi, v)
	}
	return nil
}
