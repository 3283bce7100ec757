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

// Package glyph provides types for representing glyphs in a font.
package glyph

// ID is the index of a glyph in a font.
type ID uint16

// Pair is an ordered pair of glyphs, used for kerning.
type Pair struct {
	Left  ID // the glyph first in reading order
	Right ID // the glyph second in reading order
}

// Key returns the pair as a single composite value, suitable for
// binary-search ordering in legacy kern subtables.
func (p Pair) Key() uint32 {
	return uint32(p.Left)<<16 | uint32(p.Right)
}
