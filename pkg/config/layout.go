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
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/ndef"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/validation"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Record kinds accepted in a layout file.
const (
	KindText        = "text"
	KindURI         = "uri"
	KindUnknown     = "unknown"
	KindAbsoluteURI = "absolute_uri"
	KindMime        = "mime"
	KindExternal    = "external"
	KindSmartPoster = "smart_poster"
	KindEmpty       = "empty"
	KindRaw         = "raw"
)

// Layout is a tag layout file: the ordered records of one NDEF message.
type Layout struct {
	Name    string        `toml:"name,omitempty" yaml:"name,omitempty"`
	Records []RecordEntry `toml:"record" yaml:"record" validate:"required,min=1,dive"`
}

// RecordEntry describes one record in a layout. Which fields apply
// depends on Kind:
//
//	text          value, language, omit_language_code
//	uri           value
//	unknown       payload (hex)
//	absolute_uri  value (the URI as text)
//	mime          mime_type, value or payload
//	external      type (domain:type), value or payload
//	smart_poster  record (nested records)
//	empty         nothing
//	raw           tnf, type (hex), payload (hex)
//
// Every kind accepts an optional hex id.
type RecordEntry struct {
	Kind             string        `toml:"kind" yaml:"kind" validate:"required,oneof=text uri unknown absolute_uri mime external smart_poster empty raw"`
	Value            string        `toml:"value,omitempty" yaml:"value,omitempty"`
	Language         string        `toml:"language,omitempty" yaml:"language,omitempty" validate:"langtag"`
	MimeType         string        `toml:"mime_type,omitempty" yaml:"mime_type,omitempty" validate:"mediatype"`
	Type             string        `toml:"type,omitempty" yaml:"type,omitempty"`
	TNF              string        `toml:"tnf,omitempty" yaml:"tnf,omitempty" validate:"tnf"`
	ID               string        `toml:"id,omitempty" yaml:"id,omitempty" validate:"hexdata"`
	Payload          string        `toml:"payload,omitempty" yaml:"payload,omitempty" validate:"hexdata"`
	Records          []RecordEntry `toml:"record,omitempty" yaml:"record,omitempty" validate:"omitempty,dive"`
	OmitLanguageCode bool          `toml:"omit_language_code,omitempty" yaml:"omit_language_code,omitempty"`
}

var layoutValidator = newLayoutValidator()

func newLayoutValidator() *validation.Validator {
	v := validation.NewValidator()
	v.RegisterStructValidation(validateRecordEntry, RecordEntry{})
	return v
}

// validateRecordEntry reports fields a kind needs but the entry left empty.
//
//nolint:gocritic // validator passes struct by value
func validateRecordEntry(sl validator.StructLevel) {
	entry, ok := sl.Current().Interface().(RecordEntry)
	if !ok {
		return
	}

	require := func(value, field, structField string) {
		if value == "" {
			sl.ReportError(value, field, structField, "kindfield", entry.Kind)
		}
	}

	switch entry.Kind {
	case KindURI, KindAbsoluteURI:
		require(entry.Value, "value", "Value")
	case KindUnknown:
		require(entry.Payload, "payload", "Payload")
	case KindMime:
		require(entry.MimeType, "mime_type", "MimeType")
	case KindExternal:
		require(entry.Type, "type", "Type")
	case KindSmartPoster:
		if len(entry.Records) == 0 {
			sl.ReportError(entry.Records, "record", "Records", "kindfield", entry.Kind)
		}
	case KindRaw:
		require(entry.TNF, "tnf", "TNF")
	}
}

// ParseLayout decodes and validates a TOML layout. Unknown keys are
// rejected so typos do not silently drop data from a tag.
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&layout); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("failed to unmarshal layout: %s", strict.String())
		}
		return nil, fmt.Errorf("failed to unmarshal layout: %w", err)
	}

	return validateLayout(&layout)
}

// ParseLayoutYAML is ParseLayout for YAML documents.
func ParseLayoutYAML(data []byte) (*Layout, error) {
	var layout Layout
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	return validateLayout(&layout)
}

func validateLayout(layout *Layout) (*Layout, error) {
	if err := layoutValidator.Validate(layout); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

// LoadLayout reads a layout file from fs. Files ending in .yaml or .yml
// are decoded as YAML, anything else as TOML.
func LoadLayout(fs afero.Fs, path string) (*Layout, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	parse := ParseLayout
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		parse = ParseLayoutYAML
	}

	layout, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Str("name", layout.Name).
		Int("records", len(layout.Records)).
		Msg("loaded tag layout")
	return layout, nil
}

// BuildRecords converts the layout entries to NDEF records. lang is used
// for text records that do not set a language.
func (l *Layout) BuildRecords(lang string) ([]ndef.Record, error) {
	return buildRecords(l.Records, lang)
}

func buildRecords(entries []RecordEntry, lang string) ([]ndef.Record, error) {
	records := make([]ndef.Record, 0, len(entries))
	for i := range entries {
		rec, err := entries[i].Build(lang)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, entries[i].Kind, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Build converts a single entry to an NDEF record.
func (e *RecordEntry) Build(lang string) (ndef.Record, error) {
	id, err := decodeHex(e.ID)
	if err != nil {
		return ndef.Record{}, fmt.Errorf("invalid id: %w", err)
	}

	switch e.Kind {
	case KindText:
		if e.Language != "" {
			lang = e.Language
		}
		var opts []ndef.TextOption
		if e.OmitLanguageCode {
			opts = append(opts, ndef.WithoutLanguageCode())
		}
		return ndef.TextRecord(ndef.Text(e.Value), lang, id, opts...)
	case KindURI:
		return ndef.URIRecord(e.Value, id)
	case KindUnknown:
		return ndef.UnknownRecord(validation.NormalizeHexData(e.Payload), id)
	case KindAbsoluteURI:
		return ndef.AbsoluteURIRecord(ndef.BytesToHexString([]byte(e.Value)), id)
	case KindMime:
		payload, err := e.payloadBytes()
		if err != nil {
			return ndef.Record{}, err
		}
		return ndef.MimeMediaRecord(e.MimeType, payload, id)
	case KindExternal:
		payload, err := e.payloadBytes()
		if err != nil {
			return ndef.Record{}, err
		}
		return ndef.ExternalRecord(e.Type, payload, id)
	case KindSmartPoster:
		nested, err := buildRecords(e.Records, lang)
		if err != nil {
			return ndef.Record{}, fmt.Errorf("smart poster: %w", err)
		}
		return ndef.SmartPoster(nested, id)
	case KindEmpty:
		return ndef.EmptyRecord(), nil
	case KindRaw:
		tnf, err := ndef.ParseTNF(e.TNF)
		if err != nil {
			return ndef.Record{}, err
		}
		typ, err := decodeHex(e.Type)
		if err != nil {
			return ndef.Record{}, fmt.Errorf("invalid type: %w", err)
		}
		payload, err := decodeHex(e.Payload)
		if err != nil {
			return ndef.Record{}, fmt.Errorf("invalid payload: %w", err)
		}
		return ndef.NewRecord(tnf, typ, id, payload)
	default:
		return ndef.Record{}, fmt.Errorf("%w: unknown record kind %q", ndef.ErrInvalidInput, e.Kind)
	}
}

// payloadBytes returns the hex payload if set, otherwise the value as text.
func (e *RecordEntry) payloadBytes() ([]byte, error) {
	if e.Payload != "" {
		b, err := decodeHex(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		return b, nil
	}
	return ndef.StringToBytes(ndef.Text(e.Value)), nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := ndef.HexStringToBytes(validation.NormalizeHexData(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return b, nil
}
