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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "system path", input: "/usr/local/bin/ndefenc", expected: "/usr/local/bin/ndefenc"},
		{name: "linux home", input: "/home/alex/tags/launcher.toml", expected: "/home/<user>/tags/launcher.toml"},
		{name: "linux home mixed case", input: "/Home/Alex/tags/a.toml", expected: "/home/<user>/tags/a.toml"},
		{name: "macos users", input: "/Users/alex/Documents/card.yaml", expected: "/Users/<user>/Documents/card.yaml"},
		{name: "windows lowercase drive", input: `c:\Users\JohnDoe\tags\card.toml`, expected: `C:\Users\<user>\tags\card.toml`},
		{
			name:     "layout error message",
			input:    "failed to read layout file: open /home/user123/card.toml: no such file",
			expected: "failed to read layout file: open /home/<user>/card.toml: no such file",
		},
		{
			name:     "batch output paths",
			input:    "/home/alice/tags/a.toml: failed to write tag file /home/bob/out/a.bin",
			expected: "/home/<user>/tags/a.toml: failed to write tag file /home/<user>/out/a.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, scrubPath(tt.input))
		})
	}
}

func TestScrub(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "alex-laptop",
		Message:    "open /home/alex/card.toml failed",
		Extra: map[string]any{
			"path":  "/Users/alex/out.bin",
			"count": 3,
		},
		Exception: []sentry.Exception{
			{Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{
				{AbsPath: "/home/alex/src/layout.go", Filename: "/home/alex/src/layout.go"},
			}}},
			{},
		},
	}

	got := scrub(event)
	require.NotNil(t, got)
	assert.Empty(t, got.ServerName)
	assert.Equal(t, "open /home/<user>/card.toml failed", got.Message)
	assert.Equal(t, "/Users/<user>/out.bin", got.Extra["path"])
	assert.Equal(t, 3, got.Extra["count"])
	frame := got.Exception[0].Stacktrace.Frames[0]
	assert.Equal(t, "/home/<user>/src/layout.go", frame.AbsPath)
	assert.Equal(t, "/home/<user>/src/layout.go", frame.Filename)
}

func TestClientOptions(t *testing.T) {
	t.Parallel()

	opts := clientOptions("https://key@sentry.example.com/1", "1.2.3")
	assert.Equal(t, "https://key@sentry.example.com/1", opts.Dsn)
	assert.Equal(t, "zaparoo-ndef@1.2.3", opts.Release)
	assert.False(t, opts.SendDefaultPII)
	require.NotNil(t, opts.BeforeSend)

	event := opts.BeforeSend(&sentry.Event{ServerName: "host", Message: "/home/alex/x"}, nil)
	assert.Empty(t, event.ServerName)
	assert.Equal(t, "/home/<user>/x", event.Message)
}

func TestInit_Disabled(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(false, "https://key@sentry.example.com/1", "device", "test"))
	assert.False(t, Enabled())
}

func TestInit_RequiresDSN(t *testing.T) {
	t.Parallel()

	err := Init(true, "", "device", "test")
	require.ErrorIs(t, err, ErrMissingDSN)
	assert.False(t, Enabled())
}

func TestCloseAndFlushWhenDisabled(t *testing.T) {
	t.Parallel()

	// no-ops while reporting is off
	Close()
	Flush()
	Close()
}
