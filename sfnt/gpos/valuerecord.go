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

package gpos

import (
	"math/bits"

	"seehuhn.de/go/kobofix/sfnt/funit"
	"seehuhn.de/go/kobofix/sfnt/parser"
)

// valueRecord describes an adjustment to the position of a glyph.
// Device table offsets are skipped when reading, they carry no
// information usable for a flat kerning table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#valueRecord
type valueRecord struct {
	xPlacement funit.Int16
	yPlacement funit.Int16
	xAdvance   funit.Int16
	yAdvance   funit.Int16
}

// valueRecordSize returns the encoded size, in bytes, of a value record
// with the given format bits.
func valueRecordSize(format uint16) int {
	return 2 * bits.OnesCount16(format&0x00ff)
}

// readValueRecord reads a value record with the given format bits from
// the current position.
func readValueRecord(p *parser.Parser, format uint16) (valueRecord, error) {
	var res valueRecord
	var err error
	read := func() funit.Int16 {
		if err != nil {
			return 0
		}
		var val int16
		val, err = p.ReadInt16()
		return funit.Int16(val)
	}
	if format&0x0001 != 0 {
		res.xPlacement = read()
	}
	if format&0x0002 != 0 {
		res.yPlacement = read()
	}
	if format&0x0004 != 0 {
		res.xAdvance = read()
	}
	if format&0x0008 != 0 {
		res.yAdvance = read()
	}
	// device or variation index offsets
	for bit := uint16(0x0010); bit <= 0x0080; bit <<= 1 {
		if format&bit != 0 && err == nil {
			_, err = p.ReadUint16()
		}
	}
	return res, err
}

// kernValue computes the horizontal kerning adjustment expressed by a
// pair of value records.  The advance adjustments take precedence, the
// placement adjustments are a fallback for fonts which encode kerning
// by shifting the first glyph.
func kernValue(first, second valueRecord) funit.Int16 {
	adjust := first.xAdvance + second.xAdvance
	if adjust == 0 {
		adjust = first.xPlacement + second.xPlacement
	}
	return adjust
}
