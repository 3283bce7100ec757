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

// Package os2 gives access to the fields of the "OS/2" table which are
// relevant for font style metadata.  The table is edited in place, so
// that fields not touched by this package are preserved exactly.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"seehuhn.de/go/kobofix/sfnt"
)

// Bits of the fsSelection field.
const (
	FsSelectionItalic  uint16 = 0x0001
	FsSelectionBold    uint16 = 0x0020
	FsSelectionRegular uint16 = 0x0040
)

// Indices into the 10-byte PANOSE classification.
const (
	PanoseFamilyType = 0
	PanoseWeight     = 2
	PanoseLetterform = 6
)

// minLength is the size of a version 0 "OS/2" table.
const minLength = 78

// Table is a view of the raw "OS/2" table data.  Setters modify the
// underlying byte slice.
type Table []byte

// New checks that the data is large enough to hold the fields accessed
// by this package.
func New(data []byte) (Table, error) {
	if len(data) < minLength {
		return nil, &sfnt.InvalidFontError{
			SubSystem: "sfnt/os2",
			Reason:    "OS/2 table too short",
		}
	}
	return Table(data), nil
}

// Version returns the version number of the table.
func (t Table) Version() uint16 {
	return uint16(t[0])<<8 | uint16(t[1])
}

// WeightClass returns the usWeightClass field.
func (t Table) WeightClass() uint16 {
	return uint16(t[4])<<8 | uint16(t[5])
}

// SetWeightClass updates the usWeightClass field.
func (t Table) SetWeightClass(w uint16) {
	t[4] = byte(w >> 8)
	t[5] = byte(w)
}

// Panose returns a copy of the 10-byte PANOSE classification.
func (t Table) Panose() [10]byte {
	var res [10]byte
	copy(res[:], t[32:42])
	return res
}

// PanoseByte returns the PANOSE byte at the given index.
func (t Table) PanoseByte(idx int) byte {
	return t[32+idx]
}

// SetPanoseByte updates the PANOSE byte at the given index.
func (t Table) SetPanoseByte(idx int, val byte) {
	t[32+idx] = val
}

// FsSelection returns the fsSelection field.
func (t Table) FsSelection() uint16 {
	return uint16(t[62])<<8 | uint16(t[63])
}

// SetFsSelection updates the fsSelection field.
func (t Table) SetFsSelection(sel uint16) {
	t[62] = byte(sel >> 8)
	t[63] = byte(sel)
}
