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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/kobofix/sfnt"
	"seehuhn.de/go/kobofix/sfnt/gpos"
	"seehuhn.de/go/kobofix/sfnt/head"
	"seehuhn.de/go/kobofix/sfnt/name"
	"seehuhn.de/go/kobofix/sfnt/os2"
)

// Config controls which transformation steps a Job runs and how.
type Config struct {
	// Prefix is put in front of the family name and the output file
	// name.
	Prefix string

	// FamilyName overrides the family name from the font's name table.
	FamilyName string

	// RemovePrefix is a token stripped from the derived family name.
	RemovePrefix string

	// LinePercent is the percentage for the external baseline
	// adjustment.  Zero disables the step.
	LinePercent int

	// SkipPanose disables the PANOSE repair step.
	SkipPanose bool

	// SkipKern disables the kerning migration step.
	SkipKern bool

	// StripGPOS removes the GPOS table after a successful kerning
	// migration.
	StripGPOS bool

	// FixStyleBits reconciles the OS/2 fsSelection and head macStyle
	// bits with the classified style.
	FixStyleBits bool

	// BaselineFatal treats a failure of the external baseline tool as
	// fatal for the font instead of a warning.
	BaselineFatal bool

	// Verbose enables debug output.
	Verbose bool

	// Baseline runs the external baseline adjustment.  When nil, the
	// step is skipped.
	Baseline BaselineAdjuster
}

// DefaultConfig returns the configuration matching the defaults of the
// command line tool.
func DefaultConfig() *Config {
	return &Config{
		Prefix:       "KF",
		LinePercent:  20,
		FixStyleBits: true,
		Baseline:     FontLine{},
	}
}

// Report summarizes the transformations applied to one font.
type Report struct {
	Style  Style
	Family string

	Panose       PanoseReport
	WeightBefore uint16
	WeightAfter  uint16

	Kerning     MigrateStats
	KernWritten bool

	OutputPath      string
	BaselineApplied bool
	// BaselineErr is set when the external baseline tool failed and
	// the failure was configured to be non-fatal.
	BaselineErr error
}

// Job transforms one font.
type Job struct {
	Path   string
	Font   *sfnt.Font
	Config *Config
}

// Run applies the configured transformation steps in order and saves
// the result.  The returned report is non-nil whenever the style
// classification succeeded, even if a later step failed.
func (j *Job) Run(ctx context.Context) (*Report, error) {
	cfg := j.Config

	style, err := Classify(filepath.Base(j.Path))
	if err != nil {
		return nil, err
	}
	report := &Report{Style: style}

	family, err := j.familyName()
	if err != nil {
		return report, err
	}
	newFamily := cfg.Prefix + " " + family
	report.Family = newFamily
	tracer().Infof("renaming to %q (%s)", newFamily, style)

	err = j.rewriteNames(newFamily, style)
	if err != nil {
		return report, err
	}
	j.fixClassification(style, report)

	if !cfg.SkipKern {
		err = j.migrateKerning(report)
		if err != nil {
			return report, err
		}
	}

	report.OutputPath = outputPath(j.Path, cfg.Prefix)
	err = j.Font.WriteFile(report.OutputPath)
	if err != nil {
		return report, fmt.Errorf("saving %q: %w", report.OutputPath, err)
	}

	if cfg.LinePercent != 0 && cfg.Baseline != nil {
		err = j.adjustBaseline(ctx, report)
		if err != nil {
			if cfg.BaselineFatal {
				return report, err
			}
			tracer().Errorf("baseline adjustment failed: %v", err)
			report.BaselineErr = err
		}
	}

	return report, nil
}

// familyName derives the base family name, before the prefix is
// applied, from the configuration or the font's name table.
func (j *Job) familyName() (string, error) {
	cfg := j.Config
	family := cfg.FamilyName
	if family == "" {
		if data := j.Font.Table("name"); data != nil {
			info, err := name.Decode(data)
			if err != nil {
				return "", err
			}
			family = info.Get(name.IDPreferredFamily)
			if family == "" {
				family = info.Get(name.IDFamily)
			}
		}
	}
	if cfg.RemovePrefix != "" {
		family = strings.ReplaceAll(family, cfg.RemovePrefix, "")
		family = strings.Join(strings.Fields(family), " ")
	}
	if family == "" {
		return "", fmt.Errorf("cannot determine family name for %q", j.Path)
	}
	return family, nil
}

func (j *Job) rewriteNames(newFamily string, style Style) error {
	data := j.Font.Table("name")
	if data == nil {
		tracer().Infof("no name table, skipping rename")
		return nil
	}
	info, err := name.Decode(data)
	if err != nil {
		return err
	}
	RewriteNames(info, newFamily, style)
	j.Font.Set("name", info.Encode())
	return nil
}

// fixClassification repairs the PANOSE digits, the weight class and,
// if enabled, the style bits in "OS/2" and "head".
func (j *Job) fixClassification(style Style, report *Report) {
	cfg := j.Config

	if data := j.Font.Table("OS/2"); data != nil {
		t, err := os2.New(data)
		if err != nil {
			tracer().Errorf("%v, skipping OS/2 edits", err)
		} else {
			if !cfg.SkipPanose {
				fixed, r := RepairPanose(t.Panose(), style)
				for i, b := range fixed {
					t.SetPanoseByte(i, b)
				}
				report.Panose = r
				if r.Changed {
					tracer().Infof("PANOSE corrected: weight %d->%d, letterform %d->%d",
						r.WeightBefore, r.WeightAfter,
						r.LetterformBefore, r.LetterformAfter)
				}
			}

			report.WeightBefore = t.WeightClass()
			t.SetWeightClass(style.WeightClass())
			report.WeightAfter = t.WeightClass()

			if cfg.FixStyleBits {
				sel := t.FsSelection()
				sel &^= os2.FsSelectionItalic | os2.FsSelectionBold | os2.FsSelectionRegular
				if style.IsBold() {
					sel |= os2.FsSelectionBold
				}
				if style.IsItalic() {
					sel |= os2.FsSelectionItalic
				}
				if style == Regular {
					sel |= os2.FsSelectionRegular
				}
				t.SetFsSelection(sel)
			}
		}
	}

	if cfg.FixStyleBits {
		if data := j.Font.Table("head"); data != nil {
			t, err := head.New(data)
			if err != nil {
				tracer().Errorf("%v, skipping macStyle edit", err)
				return
			}
			mac := t.MacStyle() &^ (head.MacStyleBold | head.MacStyleItalic)
			if style.IsBold() {
				mac |= head.MacStyleBold
			}
			if style.IsItalic() {
				mac |= head.MacStyleItalic
			}
			t.SetMacStyle(mac)
		}
	}
}

// migrateKerning extracts GPOS pair data and stores it as a legacy
// "kern" table.  A missing GPOS table is not an error.
func (j *Job) migrateKerning(report *Report) error {
	data := j.Font.Table("GPOS")
	if data == nil {
		tracer().Infof("no GPOS table, nothing to migrate")
		return nil
	}
	src, err := gpos.ReadPairs(data)
	if err != nil {
		return err
	}

	table, stats := MigrateKerning(src)
	report.Kerning = stats
	tracer().Infof("kerning: extracted %d pairs, writing %d",
		stats.Extracted, stats.Written)

	if len(table) > 0 {
		encoded, err := table.Encode()
		if err != nil {
			return err
		}
		j.Font.Set("kern", encoded)
		report.KernWritten = true
	}

	if j.Config.StripGPOS {
		j.Font.Remove("GPOS")
		tracer().Infof("removed GPOS table")
	}
	return nil
}

// adjustBaseline runs the external baseline tool on the saved output
// file and moves its result over the output path.
func (j *Job) adjustBaseline(ctx context.Context, report *Report) error {
	adjusted, err := j.Config.Baseline.Adjust(ctx, report.OutputPath, j.Config.LinePercent)
	if err != nil {
		return err
	}
	err = os.Remove(report.OutputPath)
	if err != nil {
		return err
	}
	err = os.Rename(adjusted, report.OutputPath)
	if err != nil {
		return err
	}
	report.BaselineApplied = true
	tracer().Infof("line spacing adjusted (%d%% baseline shift)", j.Config.LinePercent)
	return nil
}

// outputPath builds the output file name for a processed font, with
// the prefix applied and the extension lowercased.
func outputPath(path, prefix string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, prefix+"_"+stem+strings.ToLower(ext))
}
