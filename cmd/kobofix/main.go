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

// Kobofix rewrites TrueType font files for use on Kobo e-readers: it
// prefixes the font names, converts GPOS kerning into a legacy "kern"
// table, repairs the PANOSE and weight metadata and runs the external
// font-line tool to adjust line spacing.
//
// Usage:
//
//	kobofix [options] font.ttf ...
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"seehuhn.de/go/kobofix/fix"
)

func main() {
	prefix := flag.String("prefix", "KF", "prefix to add to font names")
	familyName := flag.String("name", "", "new family name for all fonts")
	removePrefix := flag.String("remove-prefix", "", "token to strip from the derived family name")
	linePercent := flag.Int("line-percent", 20, "line spacing adjustment percentage, 0 disables")
	skipKern := flag.Bool("skip-kobo-kern", false, "do not build a legacy 'kern' table from GPOS data")
	stripGPOS := flag.Bool("remove-gpos", false, "remove the GPOS table after kerning migration")
	fixStyleBits := flag.Bool("fix-style-bits", true, "reconcile fsSelection and macStyle with the style")
	baselineFatal := flag.Bool("baseline-fatal", false, "treat font-line failures as fatal")
	verbose := flag.Bool("verbose", false, "enable verbose output")
	flag.Parse()

	setupTracing(*verbose)

	if *linePercent < 0 || *linePercent > 100 {
		pterm.Error.Println("line-percent must be between 0 and 100")
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] font.ttf ...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	paths := expandGlobs(flag.Args())
	valid, invalid := fix.Validate(paths)

	if len(invalid) > 0 {
		pterm.Error.Println("the following fonts cannot be processed:")
		pterm.Error.Println("(file names must contain Regular, Bold, Italic or BoldItalic)")
		for _, path := range invalid {
			fmt.Fprintf(os.Stderr, "    %s\n", path)
		}
		if len(valid) == 0 {
			os.Exit(1)
		}
		if !confirm("Continue with valid files only?") {
			os.Exit(1)
		}
	}
	if len(valid) == 0 {
		pterm.Error.Println("no valid font files to process")
		os.Exit(1)
	}

	cfg := &fix.Config{
		Prefix:        *prefix,
		FamilyName:    *familyName,
		RemovePrefix:  *removePrefix,
		LinePercent:   *linePercent,
		SkipKern:      *skipKern,
		StripGPOS:     *stripGPOS,
		FixStyleBits:  *fixStyleBits,
		BaselineFatal: *baselineFatal,
		Verbose:       *verbose,
		Baseline:      fix.FontLine{},
	}

	batch := &fix.Batch{
		Config: cfg,
		Fonts:  valid,
	}
	results, numOK := batch.Run(context.Background())

	for _, res := range results {
		printResult(res)
	}
	fmt.Println()
	if numOK == len(results) {
		pterm.Success.Printf("Processed %d/%d fonts successfully.\n", numOK, len(results))
	} else {
		pterm.Warning.Printf("Processed %d/%d fonts successfully.\n", numOK, len(results))
		os.Exit(1)
	}
}

func setupTracing(verbose bool) {
	level := "Info"
	if verbose {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.kobofix.fix":  level,
		"trace.kobofix.sfnt": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// expandGlobs resolves glob patterns which the shell did not expand,
// for example on Windows.  Non-pattern arguments pass through.
func expandGlobs(args []string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

// confirm asks the user a yes/no question.  When stdin is not a
// terminal the answer is no, so that scripted runs never block.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func printResult(res fix.Result) {
	if res.Err != nil {
		pterm.Error.Printf("%s: %v\n", res.Path, res.Err)
		return
	}
	r := res.Report

	var parts []string
	parts = append(parts, fmt.Sprintf("%s [%s]", r.Family, r.Style))
	if r.KernWritten {
		parts = append(parts, fmt.Sprintf("kern %d/%d pairs",
			r.Kerning.Written, r.Kerning.Extracted))
	}
	if r.Panose.Changed {
		parts = append(parts, fmt.Sprintf("PANOSE %d/%d -> %d/%d",
			r.Panose.WeightBefore, r.Panose.LetterformBefore,
			r.Panose.WeightAfter, r.Panose.LetterformAfter))
	}
	if r.WeightBefore != r.WeightAfter {
		parts = append(parts, fmt.Sprintf("weight %d -> %d",
			r.WeightBefore, r.WeightAfter))
	}
	parts = append(parts, r.OutputPath)

	pterm.Success.Println(strings.Join(parts, ", "))
	if r.BaselineErr != nil {
		pterm.Warning.Printf("  baseline adjustment failed: %v\n", r.BaselineErr)
	}
}
