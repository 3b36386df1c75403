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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeMessage_Empty(t *testing.T) {
	t.Parallel()

	_, err := EncodeMessage(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = EncodeMessage([]Record{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEncodeMessage_InvalidRecordWrapsIndex(t *testing.T) {
	t.Parallel()

	_, err := EncodeMessage([]Record{EmptyRecord(), EmptyRecord(), {tnf: 0x10}})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "record 2")
}

func TestEncodeMessage_URIAndUnknown(t *testing.T) {
	t.Parallel()

	uri, err := URIRecord("http://ninjito.com", nil)
	require.NoError(t, err)
	unknown, err := UnknownRecord("00AC", nil)
	require.NoError(t, err)

	got, err := EncodeMessage([]Record{uri, unknown})
	require.NoError(t, err)

	expected := []byte{0x91, 0x01, 0x0C, 'U', 0x03}
	expected = append(expected, "ninjito.com"...)
	expected = append(expected, 0x55, 0x00, 0x02, 0x00, 0xAC)
	assert.Equal(t, expected, got)
}

func TestEncodeMessage_SingleRecordFlags(t *testing.T) {
	t.Parallel()

	got, err := EncodeMessage([]Record{EmptyRecord()})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xD0, 0x00, 0x00}, got)
}

// TestPropertyMessageBeginEndFlags verifies only the first record has MB
// and only the last has ME, for any number of records.
func TestPropertyMessageBeginEndFlags(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "records")
		records := make([]Record, n)
		for i := range records {
			payload := rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "payload")
			id := rapid.SliceOfN(rapid.Byte(), 0, 4).Draw(t, "id")
			rec, err := NewRecord(TNFUnknown, nil, id, payload)
			if err != nil {
				t.Fatalf("NewRecord: %v", err)
			}
			records[i] = rec
		}

		msg, err := EncodeMessage(records)
		if err != nil {
			t.Fatalf("EncodeMessage: %v", err)
		}

		// walk the frames using the lengths we encoded
		offset := 0
		for i, rec := range records {
			frame, err := EncodeRecord(rec, i, n)
			if err != nil {
				t.Fatalf("EncodeRecord: %v", err)
			}
			header := msg[offset]
			if got, want := header&FlagMB != 0, i == 0; got != want {
				t.Fatalf("record %d of %d: MB=%v, want %v", i, n, got, want)
			}
			if got, want := header&FlagME != 0, i == n-1; got != want {
				t.Fatalf("record %d of %d: ME=%v, want %v", i, n, got, want)
			}
			if header&FlagCF != 0 {
				t.Fatalf("record %d: CF set", i)
			}
			offset += len(frame)
		}
		if offset != len(msg) {
			t.Fatalf("frames cover %d bytes, message is %d", offset, len(msg))
		}
	})
}
