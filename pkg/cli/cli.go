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

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-ndef/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/config"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/ndef"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/tagfile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrNoSource       = errors.New("one of -layout, -text, -uri or -batch is required")
	ErrMultipleSource = errors.New("only one of -layout, -text, -uri or -batch may be given")
	ErrBatchOut       = errors.New("-batch requires -out to name the output directory")
)

type Flags struct {
	set         *flag.FlagSet
	Layout      *string
	Batch       *string
	Text        *string
	URI         *string
	Format      *string
	Out         *string
	Language    *string
	MessageOnly *bool
	Version     *bool
	Debug       *bool
}

// SetupFlags defines all CLI flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		set: fs,
		Layout: fs.String(
			"layout",
			"",
			"encode the records described in a TOML layout `file`",
		),
		Batch: fs.String(
			"batch",
			"",
			"encode every layout in `dir` into the -out directory",
		),
		Text: fs.String(
			"text",
			"",
			"encode a single text record",
		),
		URI: fs.String(
			"uri",
			"",
			"encode a single URI record",
		),
		Format: fs.String(
			"format",
			"",
			"output format: bin or hex (default from settings)",
		),
		Out: fs.String(
			"out",
			"",
			"write output to `file` instead of stdout",
		),
		Language: fs.String(
			"language",
			"",
			"language code for text records (default from settings)",
		),
		MessageOnly: fs.Bool(
			"message-only",
			false,
			"output the bare NDEF message without the tag TLV envelope",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Environment is where Setup finds settings and writes logs.
type Environment struct {
	Fs        afero.Fs
	ConfigDir string
	LogDir    string
	Writers   []io.Writer
}

// DefaultEnvironment uses the OS filesystem and XDG directories.
func DefaultEnvironment(writers []io.Writer) Environment {
	return Environment{
		Fs:        afero.NewOsFs(),
		ConfigDir: helpers.ConfigDir(),
		LogDir:    helpers.LogDir(),
		Writers:   writers,
	}
}

// Setup initializes logging and the user config. Call after flag parsing.
//
//nolint:gocritic // config struct copied for immutability
func (f *Flags) Setup(env Environment, defaultConfig config.Values) (*config.Instance, error) {
	err := helpers.InitLogging(env.LogDir, env.Writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(env.Fs, env.ConfigDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if *f.Debug {
		cfg.SetDebugLogging(true)
	}
	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize error reporting (opt-in)
	reporting, dsn := cfg.ErrorReporting()
	if err := telemetry.Init(reporting, dsn, cfg.DeviceID(), config.AppVersion); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}

// Run builds the requested records, encodes them and writes the output.
// cfg may be nil, in which case built-in defaults apply.
func (f *Flags) Run(ctx context.Context, fs afero.Fs, cfg *config.Instance, stdout io.Writer) error {
	if *f.Version {
		_, _ = fmt.Fprintf(stdout, "Zaparoo NDEF v%s\n", config.AppVersion)
		return nil
	}

	format, err := tagfile.ParseFormat(f.formatName(cfg))
	if err != nil {
		return err
	}

	outDir := ""
	if cfg != nil {
		outDir = cfg.OutputDir()
	}

	if f.isFlagPassed("batch") {
		if f.isFlagPassed("layout") || f.isFlagPassed("text") || f.isFlagPassed("uri") {
			return ErrMultipleSource
		}
		if *f.Out == "" {
			return ErrBatchOut
		}
		w := tagfile.NewWriter(fs, format)
		jobs, err := batchJobs(fs, *f.Batch, tagfile.Resolve(outDir, *f.Out), w.Extension(), f.language(cfg))
		if err != nil {
			return err
		}
		return w.WriteAll(ctx, jobs, *f.MessageOnly)
	}

	records, err := f.records(fs, f.language(cfg))
	if err != nil {
		return err
	}

	data, err := tagfile.Encode(records, *f.MessageOnly)
	if err != nil {
		log.Error().Err(err).Msg("error encoding tag")
		return err
	}

	w := tagfile.NewWriter(fs, format)
	if *f.Out == "" {
		return w.WriteStream(stdout, data)
	}

	return w.Write(tagfile.Resolve(outDir, *f.Out), data)
}

// batchJobs builds one job per layout file in dir. Output files keep the
// layout's base name with ext.
func batchJobs(fs afero.Fs, dir, outDir, ext, lang string) ([]tagfile.Job, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch directory: %w", err)
	}

	var jobs []tagfile.Job
	for _, entry := range entries {
		name := entry.Name()
		layoutExt := strings.ToLower(filepath.Ext(name))
		if entry.IsDir() || (layoutExt != ".toml" && layoutExt != ".yaml" && layoutExt != ".yml") {
			continue
		}

		layout, err := config.LoadLayout(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records, err := layout.BuildRecords(lang)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		jobs = append(jobs, tagfile.Job{
			Path:    filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+ext),
			Records: records,
		})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no layout files found in %s", dir)
	}
	log.Debug().Str("dir", dir).Int("layouts", len(jobs)).Msg("collected batch")
	return jobs, nil
}

func (f *Flags) formatName(cfg *config.Instance) string {
	if f.isFlagPassed("format") || cfg == nil {
		return *f.Format
	}
	return cfg.OutputFormat()
}

func (f *Flags) language(cfg *config.Instance) string {
	if *f.Language != "" || cfg == nil {
		return *f.Language
	}
	return cfg.DefaultLanguage()
}

func (f *Flags) records(fs afero.Fs, lang string) ([]ndef.Record, error) {
	sources := 0
	for _, name := range []string{"layout", "text", "uri"} {
		if f.isFlagPassed(name) {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, ErrNoSource
	case sources > 1:
		return nil, ErrMultipleSource
	}

	switch {
	case f.isFlagPassed("layout"):
		layout, err := config.LoadLayout(fs, *f.Layout)
		if err != nil {
			return nil, err
		}
		return layout.BuildRecords(lang)
	case f.isFlagPassed("text"):
		rec, err := ndef.TextRecord(ndef.Text(*f.Text), lang, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build text record: %w", err)
		}
		return []ndef.Record{rec}, nil
	default:
		rec, err := ndef.URIRecord(*f.URI, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build URI record: %w", err)
		}
		return []ndef.Record{rec}, nil
	}
}
