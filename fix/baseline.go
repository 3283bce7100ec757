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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// BaselineAdjuster adjusts the line metrics of a saved font file and
// returns the path of the adjusted copy.
type BaselineAdjuster interface {
	Adjust(ctx context.Context, path string, percent int) (string, error)
}

// FontLine runs the external font-line utility
// (https://github.com/source-foundry/font-line) on a font file.
type FontLine struct {
	// Cmd is the name of the executable, "font-line" if empty.
	Cmd string
}

// Adjust invokes `font-line percent N path` and returns the path of the
// output file the tool is expected to produce next to the input.
func (fl FontLine) Adjust(ctx context.Context, path string, percent int) (string, error) {
	cmdName := fl.Cmd
	if cmdName == "" {
		cmdName = "font-line"
	}

	cmd := exec.CommandContext(ctx, cmdName, "percent", strconv.Itoa(percent), path)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %w: %s", cmdName, err, msg)
		}
		return "", fmt.Errorf("%s: %w", cmdName, err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	outPath := fmt.Sprintf("%s-linegap%d%s", base, percent, ext)
	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("%s: expected output %q not found", cmdName, outPath)
	}
	return outPath, nil
}
