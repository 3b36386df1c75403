// Zaparoo NDEF
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo NDEF.
//
// Zaparoo NDEF is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo NDEF is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo NDEF.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/validation"
	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "ZAPAROO_NDEF_CFG"
	FormatBin     = "bin"
	FormatHex     = "hex"
)

type Values struct {
	DeviceID          string `toml:"device_id"`
	OutputFormat      string `toml:"output_format" validate:"omitempty,oneof=bin hex"`
	OutputDir         string `toml:"output_dir,omitempty"`
	DefaultLanguage   string `toml:"default_language,omitempty" validate:"langtag"`
	ErrorReportingDSN string `toml:"error_reporting_dsn,omitempty" validate:"omitempty,url"`
	ConfigSchema      int    `toml:"config_schema"`
	DebugLogging      bool   `toml:"debug_logging"`
	ErrorReporting    bool   `toml:"error_reporting"`
}

var BaseDefaults = Values{
	ConfigSchema:    SchemaVersion,
	OutputFormat:    FormatHex,
	DefaultLanguage: "en",
}

type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the settings file from configDir, or the path in the
// CfgEnv environment variable. A missing file is created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := fs.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		log.Info().Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validation.DefaultValidator.Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	// set current schema version
	c.vals.ConfigSchema = SchemaVersion

	// generate a device id if one doesn't exist
	if c.vals.DeviceID == "" {
		newID := uuid.New().String()
		c.vals.DeviceID = newID
		log.Info().Msgf("generated new device id: %s", newID)
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DeviceID
}

// OutputFormat returns the default output format, FormatHex if unset.
func (c *Instance) OutputFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.OutputFormat == "" {
		return FormatHex
	}
	return c.vals.OutputFormat
}

func (c *Instance) SetOutputFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.OutputFormat = format
}

// OutputDir returns the directory relative output paths are resolved
// against. Empty means the working directory.
func (c *Instance) OutputDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.OutputDir
}

func (c *Instance) DefaultLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DefaultLanguage
}

// ErrorReporting returns whether opt-in error reporting is enabled and the
// DSN events are sent to.
func (c *Instance) ErrorReporting() (enabled bool, dsn string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting && c.vals.ErrorReportingDSN != "", c.vals.ErrorReportingDSN
}
