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

// Package telemetry sends error level log events to a Sentry project the
// user configures. Nothing is sent unless the settings file turns error
// reporting on and names a DSN; home directory names are scrubbed from
// messages and stack frames first.
package telemetry

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"sync"
	"time"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/helpers"
	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const flushTimeout = 2 * time.Second

// ErrMissingDSN is returned when reporting is enabled with no DSN set.
var ErrMissingDSN = errors.New("error reporting enabled without error_reporting_dsn")

type state struct {
	writer *sentryzerolog.Writer
	close  sync.Once
	active bool
}

var current state

type userDirRule struct {
	re   *regexp.Regexp
	repl string
}

var userDirRules = []userDirRule{
	{regexp.MustCompile(`(?i)/home/[^/]+/`), "/home/<user>/"},
	{regexp.MustCompile(`(?i)/Users/[^/]+/`), "/Users/<user>/"},
	{regexp.MustCompile(`(?i)[a-zA-Z]:\\Users\\[^\\]+\\`), `C:\Users\<user>\`},
}

// Init starts reporting when enabled is true. Layout and output paths end up
// in error messages, so every event passes through scrub before it leaves.
func Init(enabled bool, dsn, deviceID, appVersion string) error {
	if !enabled {
		log.Debug().Msg("error reporting disabled")
		return nil
	}
	if dsn == "" {
		return ErrMissingDSN
	}

	if err := sentry.Init(clientOptions(dsn, appVersion)); err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: deviceID})
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
	})

	w, err := sentryzerolog.NewWithHub(sentry.CurrentHub(), sentryzerolog.Options{
		Levels:       []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
		FlushTimeout: flushTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create sentry zerolog writer: %w", err)
	}

	// tee into the writer installed by helpers.InitLogging
	log.Logger = log.Output(zerolog.MultiLevelWriter(helpers.LogWriter(), w)).
		With().Timestamp().Caller().Logger()

	current.writer = w
	current.active = true
	log.Info().Msg("error reporting enabled")
	return nil
}

func clientOptions(dsn, appVersion string) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              dsn,
		Release:          "zaparoo-ndef@" + appVersion,
		AttachStacktrace: true,
		SendDefaultPII:   false,
		MaxBreadcrumbs:   0,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return scrub(event)
		},
	}
}

// Enabled reports whether Init turned reporting on.
func Enabled() bool {
	return current.active
}

// Flush waits for queued events. main calls it before os.Exit.
func Flush() {
	if current.active {
		sentry.Flush(flushTimeout)
	}
}

// Close flushes and detaches the log writer. Later calls do nothing.
func Close() {
	if !current.active {
		return
	}
	current.close.Do(func() {
		_ = current.writer.Close()
		sentry.Flush(flushTimeout)
	})
}

func scrub(event *sentry.Event) *sentry.Event {
	// hostname can identify the user
	event.ServerName = ""
	event.Message = scrubPath(event.Message)

	for i := range event.Exception {
		st := event.Exception[i].Stacktrace
		if st == nil {
			continue
		}
		for j := range st.Frames {
			st.Frames[j].AbsPath = scrubPath(st.Frames[j].AbsPath)
			st.Frames[j].Filename = scrubPath(st.Frames[j].Filename)
		}
	}

	for k, v := range event.Extra {
		if s, ok := v.(string); ok {
			event.Extra[k] = scrubPath(s)
		}
	}
	return event
}

// scrubPath replaces the user directory component of any home path in s.
func scrubPath(s string) string {
	for _, rule := range userDirRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	return s
}
