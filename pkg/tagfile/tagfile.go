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

// Package tagfile encodes records for a tag and writes the result to disk
// or a stream, as raw bytes or uppercase hex.
package tagfile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/config"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/ndef"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Format selects how encoded bytes are written.
type Format string

const (
	FormatBin Format = config.FormatBin
	FormatHex Format = config.FormatHex
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatBin:
		return FormatBin, nil
	case FormatHex, "":
		return FormatHex, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be bin or hex", s)
	}
}

// Encode returns the NDEF message for records, wrapped in the tag TLV
// envelope unless messageOnly is set.
func Encode(records []ndef.Record, messageOnly bool) ([]byte, error) {
	if messageOnly {
		msg, err := ndef.EncodeMessage(records)
		if err != nil {
			return nil, fmt.Errorf("failed to encode NDEF message: %w", err)
		}
		log.Debug().Int("records", len(records)).Int("bytes", len(msg)).Msg("encoded message")
		return msg, nil
	}

	tag, err := ndef.BuildTag(records)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("records", len(records)).Int("bytes", len(tag)).Msg("encoded tag")
	return tag, nil
}

// Writer writes encoded data in a fixed Format.
type Writer struct {
	Fs     afero.Fs
	Format Format
}

// NewWriter returns a Writer on fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs, format Format) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{Fs: fs, Format: format}
}

func (w *Writer) render(data []byte) []byte {
	if w.Format == FormatBin {
		return data
	}
	return []byte(string(ndef.BytesToHexString(data)) + "\n")
}

// Write writes data to path, creating parent directories as needed.
func (w *Writer) Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.Fs.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := afero.WriteFile(w.Fs, path, w.render(data), 0o644); err != nil {
		return fmt.Errorf("failed to write tag file: %w", err)
	}

	log.Info().
		Str("path", path).
		Str("format", string(w.Format)).
		Int("bytes", len(data)).
		Msg("wrote tag file")
	return nil
}

// WriteStream writes data to out, typically stdout.
func (w *Writer) WriteStream(out io.Writer, data []byte) error {
	if _, err := out.Write(w.render(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Resolve joins a relative path onto dir. Absolute paths and an empty dir
// leave path unchanged.
func Resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
