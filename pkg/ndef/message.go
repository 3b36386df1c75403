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

// EncodeMessage encodes the records in order as one NDEF message. The first
// record gets the message begin flag and the last the message end flag.
func EncodeMessage(records []Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to encode", ErrInvalidInput)
	}

	var encoded []byte
	for i, rec := range records {
		data, err := EncodeRecord(rec, i, len(records))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		encoded = append(encoded, data...)
	}
	return encoded, nil
}
