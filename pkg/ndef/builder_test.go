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
)

func TestTextRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     Text
		lang     string
		opts     []TextOption
		expected []byte
	}{
		{
			name:     "default language",
			text:     "hi",
			expected: []byte{0x02, 'e', 'n', 'h', 'i'},
		},
		{
			name:     "explicit language",
			text:     "salut",
			lang:     "fr-CA",
			expected: []byte{0x05, 'f', 'r', '-', 'C', 'A', 's', 'a', 'l', 'u', 't'},
		},
		{
			name:     "empty text",
			text:     "",
			lang:     "en",
			expected: []byte{0x02, 'e', 'n'},
		},
		{
			name:     "without language code bytes",
			text:     "hi",
			opts:     []TextOption{WithoutLanguageCode()},
			expected: []byte{0x02, 'h', 'i'},
		},
		{
			name:     "without language code bytes, longer code",
			text:     "hej",
			lang:     "sv-SE",
			opts:     []TextOption{WithoutLanguageCode()},
			expected: []byte{0x05, 'h', 'e', 'j'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := TextRecord(tt.text, tt.lang, nil, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, TNFWellKnown, rec.TNF())
			assert.Equal(t, []byte{0x54}, rec.Type())
			assert.Equal(t, tt.expected, rec.Payload())
			assert.False(t, rec.HasID())
		})
	}
}

func TestTextRecord_LanguageTooLong(t *testing.T) {
	t.Parallel()

	_, err := TextRecord("x", string(bytes.Repeat([]byte{'a'}, 64)), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestURIRecord(t *testing.T) {
	t.Parallel()

	rec, err := URIRecord("http://ninjito.com", nil)
	require.NoError(t, err)
	assert.Equal(t, TNFWellKnown, rec.TNF())
	assert.Equal(t, []byte{0x55}, rec.Type())
	assert.Equal(t, append([]byte{0x03}, "ninjito.com"...), rec.Payload())

	rec, err = URIRecord("zaparoo", []byte("id"))
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x00}, "zaparoo"...), rec.Payload())
	assert.Equal(t, []byte("id"), rec.ID())
}

func TestUnknownRecord(t *testing.T) {
	t.Parallel()

	rec, err := UnknownRecord("00AC", nil)
	require.NoError(t, err)
	assert.Equal(t, TNFUnknown, rec.TNF())
	assert.Empty(t, rec.Type())
	assert.Equal(t, []byte{0x00, 0xAC}, rec.Payload())

	_, err = UnknownRecord("00A", nil)
	require.ErrorIs(t, err, ErrMalformedHex)

	_, err = UnknownRecord("QQ", nil)
	require.ErrorIs(t, err, ErrMalformedHex)
}

func TestAbsoluteURIRecord(t *testing.T) {
	t.Parallel()

	uri := BytesToHexString([]byte("https://zaparoo.org"))
	rec, err := AbsoluteURIRecord(uri, nil)
	require.NoError(t, err)
	assert.Equal(t, TNFAbsoluteURI, rec.TNF())
	assert.Equal(t, []byte("https://zaparoo.org"), rec.Type())
	assert.Empty(t, rec.Payload())

	_, err = AbsoluteURIRecord("https://zaparoo.org", nil)
	require.ErrorIs(t, err, ErrMalformedHex)
}

func TestMimeMediaRecord(t *testing.T) {
	t.Parallel()

	rec, err := MimeMediaRecord("application/json", []byte(`{"a":1}`), []byte{0x07})
	require.NoError(t, err)
	assert.Equal(t, TNFMimeMedia, rec.TNF())
	assert.Equal(t, []byte("application/json"), rec.Type())
	assert.Equal(t, []byte(`{"a":1}`), rec.Payload())
	assert.Equal(t, []byte{0x07}, rec.ID())
}

func TestExternalRecord(t *testing.T) {
	t.Parallel()

	rec, err := ExternalRecord("zaparoo.org:token", []byte("**launch.random:snes"), nil)
	require.NoError(t, err)
	assert.Equal(t, TNFExternalType, rec.TNF())
	assert.Equal(t, []byte("zaparoo.org:token"), rec.Type())
}

func TestSmartPoster(t *testing.T) {
	t.Parallel()

	uri, err := URIRecord("https://zaparoo.org", nil)
	require.NoError(t, err)
	title, err := TextRecord("Zaparoo", "en", nil)
	require.NoError(t, err)

	nested, err := EncodeMessage([]Record{uri, title})
	require.NoError(t, err)

	rec, err := SmartPoster([]Record{uri, title}, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, TNFWellKnown, rec.TNF())
	assert.Equal(t, []byte{0x53, 0x70}, rec.Type())
	assert.Equal(t, nested, rec.Payload())
	assert.Equal(t, []byte{0x01}, rec.ID())
}

func TestSmartPoster_Errors(t *testing.T) {
	t.Parallel()

	_, err := SmartPoster(nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SmartPoster([]Record{}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	invalid := Record{tnf: 0x0F}
	_, err = SmartPoster([]Record{EmptyRecord(), invalid}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "record 1")
}

func TestEmptyRecord(t *testing.T) {
	t.Parallel()

	rec := EmptyRecord()
	assert.Equal(t, TNFEmpty, rec.TNF())
	assert.Empty(t, rec.Type())
	assert.Empty(t, rec.ID())
	assert.Empty(t, rec.Payload())
}
