// seehuhn.de/go/kobofix - adapt TrueType fonts for Kobo e-readers
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fix

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/kobofix/sfnt"
)

// Validate partitions the given paths into fonts the batch can process
// and names it must reject.  A path is valid if it exists, has a .ttf
// extension and its base name classifies to a style variant.
func Validate(paths []string) (valid, invalid []string) {
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			tracer().Infof("file not found: %s", path)
			invalid = append(invalid, path)
			continue
		}
		if !strings.EqualFold(filepath.Ext(path), ".ttf") {
			tracer().Infof("unsupported file type: %s", path)
			invalid = append(invalid, path)
			continue
		}
		if _, err := Classify(filepath.Base(path)); err != nil {
			invalid = append(invalid, path)
			continue
		}
		valid = append(valid, path)
	}
	return valid, invalid
}

// Result is the outcome of processing one font in a batch.
type Result struct {
	Path   string
	Report *Report
	Err    error
}

// Batch processes a list of font files sequentially.
type Batch struct {
	Config *Config
	Fonts  []string
}

// Run processes the fonts one at a time.  Per-font failures are
// recorded in the results and do not stop the batch.  Cancelling the
// context stops the batch between fonts, the font being processed is
// finished first.  The second return value is the number of fonts
// processed successfully.
func (b *Batch) Run(ctx context.Context) ([]Result, int) {
	var results []Result
	numOK := 0
	for _, path := range b.Fonts {
		if ctx.Err() != nil {
			break
		}
		res := Result{Path: path}

		font, err := sfnt.ReadFile(path)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		job := &Job{
			Path:   path,
			Font:   font,
			Config: b.Config,
		}
		res.Report, res.Err = job.Run(ctx)
		if res.Err == nil {
			numOK++
		}
		results = append(results, res)
	}
	return results, numOK
}
