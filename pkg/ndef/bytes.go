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
	"encoding/hex"
	"fmt"
	"strings"
)

// Text is human readable text that is stored on the tag as UTF-8.
type Text string

// HexString is a string of hex digit pairs, each pair describing one byte.
type HexString string

// StringToBytes returns the UTF-8 bytes of the text.
func StringToBytes(s Text) []byte {
	return []byte(s)
}

// BytesToString interprets the bytes as UTF-8 text.
func BytesToString(b []byte) Text {
	return Text(b)
}

// HexStringToBytes decodes hex digit pairs left to right. Both upper and
// lower case digits are accepted.
func HexStringToBytes(s HexString) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedHex, len(s))
	}
	b, err := hex.DecodeString(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHex, err)
	}
	return b, nil
}

// BytesToHexString encodes bytes as upper case hex digit pairs.
func BytesToHexString(b []byte) HexString {
	return HexString(strings.ToUpper(hex.EncodeToString(b)))
}
