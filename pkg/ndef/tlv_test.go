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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWrapTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{
			name:     "empty message",
			input:    []byte{},
			expected: []byte{0x03, 0x00, 0xFE},
		},
		{
			name:     "one byte",
			input:    []byte{0x42},
			expected: []byte{0x03, 0x01, 0x42, 0xFE},
		},
		{
			name:     "254 bytes",
			input:    bytes.Repeat([]byte{0x42}, 254),
			expected: append(append([]byte{0x03, 0xFE}, bytes.Repeat([]byte{0x42}, 254)...), 0xFE),
		},
		{
			name:     "255 bytes",
			input:    bytes.Repeat([]byte{0x42}, 255),
			expected: append(append([]byte{0x03, 0xFF}, bytes.Repeat([]byte{0x42}, 255)...), 0xFE),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := WrapTag(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWrapTag_TooLarge(t *testing.T) {
	t.Parallel()

	for _, size := range []int{256, 1000, 65536} {
		_, err := WrapTag(make([]byte, size))
		require.ErrorIs(t, err, ErrSizeLimitExceeded, "size %d", size)
	}
}

func TestWrapTag_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	msg := []byte{0x01, 0x02}
	got, err := WrapTag(msg)
	require.NoError(t, err)
	got[2] = 0xFF
	assert.Equal(t, []byte{0x01, 0x02}, msg)
}

// TestPropertyWrapTagLength verifies a k byte message always wraps to
// k+3 bytes with the length in the second byte.
func TestPropertyWrapTagLength(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		msg := rapid.SliceOfN(rapid.Byte(), 0, 255).Draw(t, "message")

		got, err := WrapTag(msg)
		if err != nil {
			t.Fatalf("WrapTag: %v", err)
		}
		if len(got) != len(msg)+3 {
			t.Fatalf("wrapped length %d, want %d", len(got), len(msg)+3)
		}
		if got[0] != TLVNDEF || int(got[1]) != len(msg) || got[len(got)-1] != TLVTerminator {
			t.Fatalf("bad envelope % X", got)
		}
		if !bytes.Equal(got[2:len(got)-1], msg) {
			t.Fatal("message bytes changed")
		}
	})
}

func TestBuildTag_ExampleTag(t *testing.T) {
	t.Parallel()

	uri, err := URIRecord("http://ninjito.com", nil)
	require.NoError(t, err)
	unknown, err := UnknownRecord(
		"000000000000000000000000000000000000AC77003C082B2E39906704E23E3EDC"+
			"2355CF559CEBB8FEE99F68FD913CD0A828B310F5102F33FD4EAF4F095BB2AD5129",
		nil,
	)
	require.NoError(t, err)

	got, err := BuildTag([]Record{uri, unknown})
	require.NoError(t, err)

	assert.Equal(t, HexString(
		"035591010C55036E696E6A69746F2E636F6D5500420000000000000000000000000000"+
			"00000000AC77003C082B2E39906704E23E3EDC2355CF559CEBB8FEE99F68FD913CD0A8"+
			"28B310F5102F33FD4EAF4F095BB2AD5129FE",
	), BytesToHexString(got))
}

func TestBuildTag_Errors(t *testing.T) {
	t.Parallel()

	_, err := BuildTag(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	big, err := NewRecord(TNFUnknown, nil, nil, make([]byte, 300))
	require.NoError(t, err)
	_, err = BuildTag([]Record{big})
	require.ErrorIs(t, err, ErrSizeLimitExceeded)
}
