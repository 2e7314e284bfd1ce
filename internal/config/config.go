package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/powerlab/steamsim/internal/physics"
	"github.com/powerlab/steamsim/internal/plant"
)

const (
	DefaultDt       = 1.0
	DefaultDuration = 600.0
)

type Config struct {
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	Levers   map[string]float64 `yaml:"levers"`
	Physics  physics.Params     `yaml:"physics"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Levers:   map[string]float64{},
		Physics:  physics.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LeverTargets maps the yaml lever block onto typed lever IDs.
// Unknown names are dropped rather than rejected.
func (c *Config) LeverTargets() map[plant.LeverID]float64 {
	known := make(map[plant.LeverID]bool, len(plant.LeverOrder))
	for _, id := range plant.LeverOrder {
		known[id] = true
	}
	targets := make(map[plant.LeverID]float64, len(c.Levers))
	for name, v := range c.Levers {
		id := plant.LeverID(name)
		if known[id] {
			targets[id] = v
		}
	}
	return targets
}
