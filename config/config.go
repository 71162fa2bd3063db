// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads procinfo settings from defaults, an optional YAML
// file and PROCINFO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jongio/procinfo/procutil"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvMaxPath     = "PROCINFO_MAX_PATH"
	EnvConcurrency = "PROCINFO_CONCURRENCY"
	EnvOutput      = "PROCINFO_OUTPUT"
	EnvRateLimit   = "PROCINFO_RATE_LIMIT"
)

// Config holds procinfo settings.
type Config struct {
	MaxPathCapacity int    `yaml:"maxPathCapacity"`
	Concurrency     int    `yaml:"concurrency"`
	Output          string `yaml:"output"`
	LogFormat       string `yaml:"logFormat"`
	LogLevel        string `yaml:"logLevel"`
	MCP             MCP    `yaml:"mcp"`
}

// MCP holds settings for the MCP tool server.
type MCP struct {
	// RateLimit is the sustained number of tool calls per second.
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxPathCapacity: procutil.DefaultMaxPathCapacity,
		Concurrency:     8,
		Output:          "default",
		LogFormat:       "text",
		LogLevel:        "info",
		MCP: MCP{
			RateLimit: 10,
			Burst:     20,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvMaxPath); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxPath, v, err)
		}
		c.MaxPathCapacity = n
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConcurrency, v, err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimit, v, err)
		}
		c.MCP.RateLimit = f
	}
	return nil
}

// Validate reports settings that can never work.
func (c *Config) Validate() error {
	if c.MaxPathCapacity <= 0 {
		return fmt.Errorf("maxPathCapacity must be positive, got %d", c.MaxPathCapacity)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MCP.RateLimit <= 0 {
		return fmt.Errorf("mcp.rateLimit must be positive, got %v", c.MCP.RateLimit)
	}
	if c.MCP.Burst <= 0 {
		return fmt.Errorf("mcp.burst must be positive, got %d", c.MCP.Burst)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logFormat %q (valid options: text, json)", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logLevel %q (valid options: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}
