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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-ndef/internal/telemetry"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/cli"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/config"
	"github.com/ZaparooProject/zaparoo-ndef/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		telemetry.Flush()
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Parse()

	if *flags.Version {
		return flags.Run(context.Background(), nil, nil, os.Stdout)
	}

	var writers []io.Writer
	if *flags.Debug {
		writers = append(writers, helpers.ConsoleWriter(os.Stderr))
	}

	cfg, err := flags.Setup(cli.DefaultEnvironment(writers), config.BaseDefaults)
	if err != nil {
		return err
	}
	defer telemetry.Close()

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return flags.Run(ctx, afero.NewOsFs(), cfg, os.Stdout)
}
