package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional videomind.yaml override file. Only non-zero
// fields override the environment-derived configuration.
type fileConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DataDir     string `yaml:"data_dir"`

	Pipeline struct {
		Workers         int `yaml:"workers"`
		QueueSize       int `yaml:"queue_size"`
		FrameInterval   int `yaml:"frame_interval_seconds"`
		DedupeThreshold int `yaml:"dedupe_threshold"`
	} `yaml:"pipeline"`

	StaleAfter string `yaml:"stale_after"`
}

// ApplyFile merges overrides from the YAML file at path into cfg. A missing
// file is not an error.
func ApplyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.Pipeline.Workers > 0 {
		cfg.Workers = fc.Pipeline.Workers
	}
	if fc.Pipeline.QueueSize > 0 {
		cfg.QueueSize = fc.Pipeline.QueueSize
	}
	if fc.Pipeline.FrameInterval > 0 {
		cfg.FrameInterval = fc.Pipeline.FrameInterval
	}
	if fc.Pipeline.DedupeThreshold > 0 {
		cfg.DedupeThreshold = fc.Pipeline.DedupeThreshold
	}
	if fc.StaleAfter != "" {
		if d, err := time.ParseDuration(fc.StaleAfter); err == nil {
			cfg.StaleAfter = d
		}
	}

	return nil
}
