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

package ndef

import (
	"fmt"
)

type textOptions struct {
	omitLanguage bool
}

// TextOption changes how TextRecord lays out its payload.
type TextOption func(*textOptions)

// WithoutLanguageCode writes only the language code length in the status
// byte and leaves the code itself out of the payload. This matches tags
// written by older tools; most readers will misparse the first characters
// of the text as the language code.
func WithoutLanguageCode() TextOption {
	return func(o *textOptions) {
		o.omitLanguage = true
	}
}

// TextRecord creates a well-known text record. An empty language code
// defaults to "en". The text is stored as UTF-8.
//
// The payload is the status byte, the language code, then the text, as the
// NFC Forum text RTD lays it out. Earlier encoders wrote only the status
// byte and the text, leaving the code out while still counting its length;
// pass [WithoutLanguageCode] to produce that byte-for-byte output.
func TextRecord(text Text, lang string, id []byte, opts ...TextOption) (Record, error) {
	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}

	if lang == "" {
		lang = defaultTextLanguageCode
	}
	if len(lang) > maxLanguageLen {
		return Record{}, fmt.Errorf("%w: language code %q longer than %d bytes", ErrInvalidInput, lang, maxLanguageLen)
	}

	textBytes := StringToBytes(text)
	payload := make([]byte, 0, 1+len(lang)+len(textBytes))
	// status byte: bit 7 clear for UTF-8, low 6 bits hold the code length
	payload = append(payload, byte(len(lang)))
	if !o.omitLanguage {
		payload = append(payload, lang...)
	}
	payload = append(payload, textBytes...)

	return NewRecord(TNFWellKnown, RTDText(), id, payload)
}

// URIRecord creates a well-known URI record, abbreviating the first
// matching prefix from the URI table.
func URIRecord(uri string, id []byte) (Record, error) {
	code, suffix := MatchURIPrefix(uri)
	payload := make([]byte, 0, 1+len(suffix))
	payload = append(payload, code)
	payload = append(payload, suffix...)
	return NewRecord(TNFWellKnown, RTDURI(), id, payload)
}

// UnknownRecord creates a record of unknown type whose payload is decoded
// from hex digits.
func UnknownRecord(data HexString, id []byte) (Record, error) {
	payload, err := HexStringToBytes(data)
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode unknown record payload: %w", err)
	}
	return NewRecord(TNFUnknown, nil, id, payload)
}

// AbsoluteURIRecord creates an absolute URI record. The URI is given as hex
// digits and stored as the record type; the payload is empty.
func AbsoluteURIRecord(uri HexString, id []byte) (Record, error) {
	typ, err := HexStringToBytes(uri)
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode absolute URI: %w", err)
	}
	return NewRecord(TNFAbsoluteURI, typ, id, nil)
}

// MimeMediaRecord creates a record typed by an RFC 2046 media type.
func MimeMediaRecord(mimeType string, payload, id []byte) (Record, error) {
	return NewRecord(TNFMimeMedia, []byte(mimeType), id, payload)
}

// ExternalRecord creates an NFC Forum external type record. domainType is
// the full "domain:type" name, for example "zaparoo.org:token".
func ExternalRecord(domainType string, payload, id []byte) (Record, error) {
	return NewRecord(TNFExternalType, []byte(domainType), id, payload)
}

// SmartPoster creates a smart poster record whose payload is the encoded
// message of the nested records.
func SmartPoster(records []Record, id []byte) (Record, error) {
	if len(records) == 0 {
		return Record{}, fmt.Errorf("%w: smart poster needs at least one record", ErrInvalidInput)
	}
	payload, err := EncodeMessage(records)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode smart poster records: %w", err)
	}
	return NewRecord(TNFWellKnown, RTDSmartPoster(), id, payload)
}

// EmptyRecord creates a record with TNF empty and no type, id or payload.
func EmptyRecord() Record {
	return Record{tnf: TNFEmpty}
}
