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

// Package sfnt reads and writes TrueType and OpenType font files at the
// level of whole tables.  Table contents are kept as raw bytes, so that
// everything the caller does not explicitly replace survives a
// read-modify-write cycle unchanged.
package sfnt

// Scaler types for sfnt font files.
const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F
	ScalerTypeApple    = 0x74727565
)

// Font is the contents of an sfnt font file.
type Font struct {
	ScalerType uint32

	// Tables maps table tags to the raw table contents.
	Tables map[string][]byte
}

// Has returns true if the font contains all of the given tables.
func (f *Font) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := f.Tables[name]; !ok {
			return false
		}
	}
	return true
}

// Table returns the contents of the named table, or nil if the table is
// not present.
func (f *Font) Table(name string) []byte {
	return f.Tables[name]
}

// Set replaces the contents of the named table.
func (f *Font) Set(name string, data []byte) {
	f.Tables[name] = data
}

// Remove deletes the named table from the font.
func (f *Font) Remove(name string) {
	delete(f.Tables, name)
}

// IsGlyf returns true if the font contains TrueType glyph outlines.
func (f *Font) IsGlyf() bool {
	return f.Has("glyf", "loca")
}
