// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kicksaw/sfictl/internal/log"
)

// S3ToSQSConnector wires object-created events on a bucket to a queue,
// optionally filtered by key prefix. Bucket and Queue are the short resource
// ids ("storage", "messages"), not the physical AWS names.
type S3ToSQSConnector struct {
	Bucket string `yaml:"bucket"`
	Queue  string `yaml:"queue"`
	Prefix string `yaml:"prefix,omitempty"`
}

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Data: raw key/value tree unmarshaled from YAML.
//
// Data is intentionally kept as map[string]any to allow flexible shapes.
// Callers should use typed getters (GetString, GetStringSlice) or the
// dedicated Connectors accessor.
type Type struct {
	Source string
	Data   map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}
	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// If the key is not found and a single default slice is provided, that default
// is returned. Returns an error if the value exists but is not a string slice.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("slice element is not a string")
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, errors.New("value is not a slice")
	}
}

// Connectors returns the configured S3-to-SQS connectors from the
// "connectors.s3_to_sqs" key. A missing key yields an empty list; a malformed
// entry is an error.
func Connectors() ([]S3ToSQSConnector, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get("connectors.s3_to_sqs")
	if err != nil {
		return nil, nil
	}

	// Round-trip through YAML so the loosely-typed tree lands in the struct.
	raw, err := yaml.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode connectors: %w", err)
	}
	var connectors []S3ToSQSConnector
	if err := yaml.Unmarshal(raw, &connectors); err != nil {
		return nil, fmt.Errorf("failed to parse connectors: %w", err)
	}
	for _, c := range connectors {
		if c.Bucket == "" || c.Queue == "" {
			return nil, errors.New("connector entries require bucket and queue")
		}
	}
	return connectors, nil
}

// Load reads the YAML configuration file and populates the global Config.
// Returns the loaded Type or an error if the file could not be located or
// parsed. A missing file is not fatal to callers that use getter defaults.
func Load() (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, err
	}

	Config = Type{
		Source: path,
		Data:   data}

	return Config, nil
}

// get traverses the configuration tree using a dotted key path (e.g.
// "connectors.s3_to_sqs"). Returns the raw value (any) if found.
func (cfg *Type) get(kspec string) (any, error) {
	keys := strings.Split(kspec, ".")
	var current interface{} = cfg.Data

	for _, key := range keys {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("no value at key path: %s", kspec)
		}
		current, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("no value at key path: %s", kspec)
		}
	}

	return current, nil
}

// getConfigFile returns the absolute path to the YAML config file. If the
// SFICTL_CFG_FILE environment variable is set, it is treated as the full path
// to the config file. Otherwise an sfictl.yaml in the current directory is
// preferred (the repo carries one next to the CDK app), falling back to the
// OS-specific user configuration directory. The file must exist and not be a
// directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv("SFICTL_CFG_FILE"); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file from SFICTL_CFG_FILE: %s", cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("SFICTL_CFG_FILE points to a directory: %s", cfgPath)
		}
		return "", fmt.Errorf("config file not found at SFICTL_CFG_FILE path: %s", cfgPath)
	}

	if fileInfo, err := os.Stat("sfictl.yaml"); err == nil && !fileInfo.IsDir() {
		abs, err := filepath.Abs("sfictl.yaml")
		if err != nil {
			return "", err
		}
		log.Debugf("using config file: %s", abs)
		return abs, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "sfictl.yaml")
	if fileInfo, err := os.Stat(file); err == nil {
		if !fileInfo.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
