// Package config loads the optional YAML config file of a pipewright process.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/voidshard/pipewright/internal/core"
	"github.com/voidshard/pipewright/pkg/allocator"
	"github.com/voidshard/pipewright/pkg/errors"
)

// Config is everything tunable that isn't a connection string or secret (those come
// from flags & the environment).
type Config struct {
	Core core.Options `yaml:"core"`

	Boxes Boxes `yaml:"boxes"`
}

// Boxes configures the GPU worker boxes
type Boxes struct {
	// Port box services listen on
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// StartInterval is the minimum time between two box start commands
	StartInterval time.Duration `yaml:"start_interval" validate:"gte=0"`

	// NamePrefix marks the controller's instances that are ours
	NamePrefix string `yaml:"name_prefix"`
}

// Allocator returns the allocator options this config describes
func (c *Config) Allocator() *allocator.Options {
	return &allocator.Options{Port: c.Boxes.Port, StartInterval: c.Boxes.StartInterval}
}

// Default returns a config with every default set
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

func (c *Config) SetDefaults() {
	c.Core.SetDefaults()
	a := c.Allocator()
	a.SetDefaults()
	c.Boxes.Port = a.Port
	c.Boxes.StartInterval = a.StartInterval
}

// Load reads the config at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes & validates a YAML config. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	c := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w config: %v", errors.ErrInvalidArg, err)
	}

	err = validator.New().Struct(c)
	if err != nil {
		return nil, fmt.Errorf("%w config: %v", errors.ErrInvalidArg, err)
	}

	c.SetDefaults()
	return c, nil
}
