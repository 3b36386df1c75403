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
	"slices"
)

// Record is a single NDEF record. It is immutable once built; accessors
// return copies. The zero value is a valid empty record.
type Record struct {
	typ     []byte
	id      []byte
	payload []byte
	tnf     TNF
}

// NewRecord builds a record from its four fields. The slices are copied.
// A nil or zero length id means the record carries no id.
func NewRecord(tnf TNF, typ, id, payload []byte) (Record, error) {
	rec := Record{
		tnf:     tnf,
		typ:     slices.Clone(typ),
		id:      slices.Clone(id),
		payload: slices.Clone(payload),
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// TNF returns the record's type name format.
func (r Record) TNF() TNF { return r.tnf }

// Type returns a copy of the record type.
func (r Record) Type() []byte { return slices.Clone(r.typ) }

// ID returns a copy of the record id, nil when the record has none.
func (r Record) ID() []byte { return slices.Clone(r.id) }

// Payload returns a copy of the record payload.
func (r Record) Payload() []byte { return slices.Clone(r.payload) }

// HasID reports whether the record carries an id.
func (r Record) HasID() bool { return len(r.id) > 0 }

// PayloadSize returns the payload length in bytes.
func (r Record) PayloadSize() int { return len(r.payload) }

// Validate checks the field limits of the wire format.
func (r Record) Validate() error {
	if !r.tnf.Valid() {
		return fmt.Errorf("%w: TNF value 0x%02X does not fit 3 bits", ErrInvalidInput, byte(r.tnf))
	}
	if len(r.typ) > maxTypeLength {
		return fmt.Errorf("%w: type length %d exceeds %d", ErrInvalidInput, len(r.typ), maxTypeLength)
	}
	if len(r.id) > maxIDLength {
		return fmt.Errorf("%w: id length %d exceeds %d", ErrInvalidInput, len(r.id), maxIDLength)
	}
	if uint64(len(r.payload)) > maxPayloadLength {
		return fmt.Errorf("%w: payload length %d exceeds %d", ErrSizeLimitExceeded, len(r.payload), uint64(maxPayloadLength))
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("Record{tnf=%s type=%q id=%s payload=%d bytes}",
		r.tnf, r.typ, BytesToHexString(r.id), len(r.payload))
}
