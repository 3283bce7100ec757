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

// Package head gives in-place access to the fields of the "head" table
// needed for style metadata.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"

	"seehuhn.de/go/kobofix/sfnt"
)

// Bits of the macStyle field.
const (
	MacStyleBold   uint16 = 0x0001
	MacStyleItalic uint16 = 0x0002
)

// length is the fixed size of the "head" table.
const length = 54

// headMagic is the required value of the magicNumber field.
const headMagic = 0x5F0F3CF5

// Table is a view of the raw "head" table data.  Setters modify the
// underlying byte slice.
type Table []byte

// New checks the length and magic number of the table.
func New(data []byte) (Table, error) {
	if len(data) < length ||
		binary.BigEndian.Uint32(data[12:16]) != headMagic {
		return nil, &sfnt.InvalidFontError{
			SubSystem: "sfnt/head",
			Reason:    "invalid head table",
		}
	}
	return Table(data), nil
}

// UnitsPerEm returns the unitsPerEm field.
func (t Table) UnitsPerEm() uint16 {
	return binary.BigEndian.Uint16(t[18:20])
}

// MacStyle returns the macStyle field.
func (t Table) MacStyle() uint16 {
	return binary.BigEndian.Uint16(t[44:46])
}

// SetMacStyle updates the macStyle field.
func (t Table) SetMacStyle(style uint16) {
	binary.BigEndian.PutUint16(t[44:46], style)
}
