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

// Package ndef encodes records into NFC Data Exchange Format messages and
// wraps them in the Type 2 Tag TLV envelope used when writing to a tag.
//
// The package only encodes. All functions are pure and safe for concurrent
// use; nothing is retained between calls.
package ndef

import (
	"errors"
	"fmt"
	"strings"
)

// TNF is the 3-bit Type Name Format code stored in the low bits of a
// record header.
type TNF byte

const (
	TNFEmpty        TNF = 0x00
	TNFWellKnown    TNF = 0x01
	TNFMimeMedia    TNF = 0x02
	TNFAbsoluteURI  TNF = 0x03
	TNFExternalType TNF = 0x04
	TNFUnknown      TNF = 0x05
	TNFUnchanged    TNF = 0x06
	TNFReserved     TNF = 0x07

	tnfMask TNF = 0x07
)

var tnfNames = [...]string{
	TNFEmpty:        "empty",
	TNFWellKnown:    "well_known",
	TNFMimeMedia:    "mime_media",
	TNFAbsoluteURI:  "absolute_uri",
	TNFExternalType: "external",
	TNFUnknown:      "unknown",
	TNFUnchanged:    "unchanged",
	TNFReserved:     "reserved",
}

// Valid reports whether the value fits in the 3-bit TNF field.
func (t TNF) Valid() bool {
	return t <= tnfMask
}

func (t TNF) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tnf(0x%02X)", byte(t))
	}
	return tnfNames[t]
}

// ParseTNF maps a TNF name as returned by [TNF.String] back to its code.
func ParseTNF(name string) (TNF, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range tnfNames {
		if n == name {
			return TNF(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown TNF %q", ErrInvalidInput, name)
}

// Header flag bits.
const (
	FlagMB byte = 0x80 // message begin
	FlagME byte = 0x40 // message end
	FlagCF byte = 0x20 // chunk flag, never set by this encoder
	FlagSR byte = 0x10 // short record
	FlagIL byte = 0x08 // id length present
)

// TLV markers for the NFC Forum Type 2 Tag data area.
const (
	TLVNDEF       byte = 0x03
	TLVTerminator byte = 0xFE

	// MaxTLVShortLength is the largest message the single length byte of
	// the NDEF TLV can describe.
	MaxTLVShortLength = 0xFF
)

const (
	maxTypeLength    = 0xFF
	maxIDLength      = 0xFF
	maxPayloadLength = 0xFFFFFFFF
	shortRecordLimit = 0xFF
	maxLanguageLen   = 0x3F
)

// Well-known record type names (NFC Forum RTD).
const (
	rtdText                 = "T"
	rtdURI                  = "U"
	rtdSmartPoster          = "Sp"
	rtdAlternativeCarrier   = "ac"
	rtdHandoverCarrier      = "Hc"
	rtdHandoverRequest      = "Hr"
	rtdHandoverSelect       = "Hs"
	defaultTextLanguageCode = "en"
)

// RTDText returns the well-known type of a text record.
func RTDText() []byte { return []byte(rtdText) }

// RTDURI returns the well-known type of a URI record.
func RTDURI() []byte { return []byte(rtdURI) }

// RTDSmartPoster returns the well-known type of a smart poster record.
func RTDSmartPoster() []byte { return []byte(rtdSmartPoster) }

// RTDAlternativeCarrier returns the well-known type of a connection
// handover alternative carrier record.
func RTDAlternativeCarrier() []byte { return []byte(rtdAlternativeCarrier) }

// RTDHandoverCarrier returns the well-known type of a handover carrier record.
func RTDHandoverCarrier() []byte { return []byte(rtdHandoverCarrier) }

// RTDHandoverRequest returns the well-known type of a handover request record.
func RTDHandoverRequest() []byte { return []byte(rtdHandoverRequest) }

// RTDHandoverSelect returns the well-known type of a handover select record.
func RTDHandoverSelect() []byte { return []byte(rtdHandoverSelect) }

var (
	// ErrInvalidInput is returned for empty record collections, invalid
	// records and out of range record positions.
	ErrInvalidInput = errors.New("invalid NDEF input")
	// ErrSizeLimitExceeded is returned when a length does not fit its
	// wire field.
	ErrSizeLimitExceeded = errors.New("NDEF size limit exceeded")
	// ErrMalformedHex is returned when a hex string has odd length or
	// contains non-hex characters.
	ErrMalformedHex = errors.New("malformed hex string")
)
