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

// Header computes the flag byte of the record at index within a message of
// count records.
func Header(rec Record, index, count int) byte {
	header := byte(rec.tnf & tnfMask)
	if index == 0 {
		header |= FlagMB
	}
	if index == count-1 {
		header |= FlagME
	}
	if len(rec.payload) < shortRecordLimit {
		header |= FlagSR
	}
	if rec.HasID() {
		header |= FlagIL
	}
	return header
}

// EncodeRecord serializes the record at index within a message of count
// records.
//
// Layout: header, type length, payload length (1 byte for short records,
// otherwise 4 bytes big-endian), id length if present, type, id if
// present, payload.
func EncodeRecord(rec Record, index, count int) ([]byte, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: record count %d", ErrInvalidInput, count)
	}
	if index < 0 || index >= count {
		return nil, fmt.Errorf("%w: record index %d out of range for %d records", ErrInvalidInput, index, count)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	header := Header(rec, index, count)
	short := header&FlagSR != 0
	hasID := header&FlagIL != 0

	size := 2 + len(rec.typ) + len(rec.payload)
	if short {
		size++
	} else {
		size += 4
	}
	if hasID {
		size += 1 + len(rec.id)
	}

	out := make([]byte, 0, size)
	out = append(out, header, byte(len(rec.typ)))

	payloadLen := uint64(len(rec.payload))
	if short {
		out = append(out, byte(payloadLen&0xFF))
	} else {
		out = append(out,
			byte((payloadLen>>24)&0xFF),
			byte((payloadLen>>16)&0xFF),
			byte((payloadLen>>8)&0xFF),
			byte(payloadLen&0xFF),
		)
	}

	if hasID {
		out = append(out, byte(len(rec.id)))
	}
	out = append(out, rec.typ...)
	if hasID {
		out = append(out, rec.id...)
	}
	out = append(out, rec.payload...)

	return out, nil
}
