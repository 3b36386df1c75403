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

package tagfile

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ZaparooProject/zaparoo-ndef/pkg/ndef"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Job is one tag to encode and write as part of a batch.
type Job struct {
	Path    string
	Records []ndef.Record
}

// Extension returns the file extension used for the writer's format.
func (w *Writer) Extension() string {
	if w.Format == FormatBin {
		return ".bin"
	}
	return ".hex"
}

// WriteAll encodes and writes jobs concurrently. The first failure cancels
// jobs that have not started yet and is returned.
func (w *Writer) WriteAll(ctx context.Context, jobs []Job, messageOnly bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := Encode(job.Records, messageOnly)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Path, err)
			}
			return w.Write(job.Path, data)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Int("tags", len(jobs)).Msg("batch complete")
	return nil
}
