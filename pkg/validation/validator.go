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

// Package validation validates tag layouts and settings using
// go-playground/validator with custom validators for NDEF field types.
package validation

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/ndef"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Validator validates structs tagged with `validate`.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator with registered custom validators.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// toml names read better in messages than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("hexdata", validateHexData)
	_ = v.RegisterValidation("langtag", validateLanguageTag)
	_ = v.RegisterValidation("tnf", validateTNF)
	_ = v.RegisterValidation("mediatype", validateMediaType)

	return &Validator{validate: v}
}

// DefaultValidator is a shared validator instance.
var DefaultValidator = NewValidator()

// Validate validates a struct and returns a formatted error if validation fails.
func (v *Validator) Validate(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// RegisterStructValidation registers a struct-level validation function.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	v.validate.RegisterStructValidation(fn, types...)
}

// NormalizeHexData strips the spaces allowed between hex byte pairs.
func NormalizeHexData(s string) ndef.HexString {
	return ndef.HexString(strings.ReplaceAll(s, " ", ""))
}

// validateHexData checks if string is valid hex data, allowing spaces between bytes.
// Accepts formats like "AABBCC", "AA BB CC", "aa bb cc", etc.
func validateHexData(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	normalized := NormalizeHexData(val)
	if normalized == "" {
		return false
	}
	_, err := ndef.HexStringToBytes(normalized)
	return err == nil
}

// validateLanguageTag checks the value parses as a BCP 47 language tag and
// fits the 6 bit length field of a text record.
func validateLanguageTag(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	if len(val) > 0x3F {
		return false
	}
	_, err := language.Parse(val)
	return err == nil
}

// validateTNF checks the value names a type name format.
func validateTNF(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := ndef.ParseTNF(val)
	return err == nil
}

// validateMediaType checks the value is an RFC 2046 media type.
func validateMediaType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, _, err := mime.ParseMediaType(val)
	return err == nil
}
