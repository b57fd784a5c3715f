// cmd/ppiscope/config.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ppiscope/pkg/radar"
)

// Config holds the startup defaults for a scope session; any field left
// out of the file keeps its built-in value.
type Config struct {
	RangeScale       float32 `yaml:"range_scale"`
	Bearing          float32 `yaml:"bearing"`
	Range            float32 `yaml:"range"`
	AspectAngle      float32 `yaml:"aspect_angle"`
	EPR              float32 `yaml:"epr"`
	Length           float32 `yaml:"length"`
	Width            float32 `yaml:"width"`
	ClutterIntensity float32 `yaml:"clutter_intensity"`
	ClutterDensity   int     `yaml:"clutter_density"`
	Course           float32 `yaml:"course"`
	Speed            float32 `yaml:"speed"`
	ShowTrails       bool    `yaml:"show_trails"`
	ShowCoastline    bool    `yaml:"show_coastline"`
	ShowDataBlock    bool    `yaml:"show_data_block"`
	TrailMaxLength   int     `yaml:"trail_max_length"`
}

func defaultConfig() Config {
	p := radar.DefaultParameters()
	return Config{
		RangeScale:       p.RangeScale,
		Bearing:          p.Bearing,
		Range:            p.Range,
		AspectAngle:      p.AspectAngle,
		EPR:              p.EPR,
		Length:           p.Length,
		Width:            p.Width,
		ClutterIntensity: p.ClutterIntensity,
		ClutterDensity:   p.ClutterDensity,
		Course:           p.Course,
		Speed:            p.Speed,
		ShowTrails:       p.ShowTrails,
		ShowCoastline:    p.ShowCoastline,
		ShowDataBlock:    p.ShowDataBlock,
		TrailMaxLength:   p.TrailMaxLength,
	}
}

// LoadConfig reads the YAML config at path, if given, over the defaults.
func LoadConfig(path string) (Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, fmt.Errorf("%s: unable to parse config: %w", path, err)
	}
	return config, nil
}

// Parameters converts the config to the session's parameter struct,
// running each value through its validating setter.
func (c Config) Parameters() radar.Parameters {
	p := radar.DefaultParameters()
	p.SetRangeScale(c.RangeScale)
	p.SetBearing(c.Bearing)
	p.SetRange(c.Range)
	p.SetAspectAngle(c.AspectAngle)
	p.SetEPR(c.EPR)
	p.SetLength(c.Length)
	p.SetWidth(c.Width)
	p.SetClutterIntensity(c.ClutterIntensity)
	p.ClutterDensity = max(c.ClutterDensity, 0)
	p.SetCourse(c.Course)
	p.SetSpeed(c.Speed)
	p.ShowTrails = c.ShowTrails
	p.ShowCoastline = c.ShowCoastline
	p.ShowDataBlock = c.ShowDataBlock
	p.TrailMaxLength = max(c.TrailMaxLength, 0)
	return p
}
