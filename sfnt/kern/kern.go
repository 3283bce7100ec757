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

// Package kern has code for reading and writing the legacy "kern" table
// in format 0.
// https://docs.microsoft.com/en-us/typography/opentype/spec/kern
package kern

import (
	"math/bits"
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/kobofix/sfnt"
	"seehuhn.de/go/kobofix/sfnt/funit"
	"seehuhn.de/go/kobofix/sfnt/glyph"
)

// Table contains the kerning adjustments for pairs of glyphs.
type Table map[glyph.Pair]funit.Int16

// maxPairs is the largest number of pairs a format 0 subtable can hold
// without overflowing its 16-bit length field.
const maxPairs = (65535 - 14) / 6

// Read extracts the horizontal kerning pairs from the binary "kern"
// table.  Only format 0 subtables are evaluated, vertical and
// cross-stream subtables are skipped.
func Read(data []byte) (Table, error) {
	invalid := &sfnt.InvalidFontError{
		SubSystem: "sfnt/kern",
		Reason:    "malformed kern table",
	}
	if len(data) < 4 {
		return nil, invalid
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version != 0 {
		return nil, &sfnt.NotSupportedError{
			SubSystem: "sfnt/kern",
			Feature:   "kern table version 1",
		}
	}
	nTables := int(data[2])<<8 | int(data[3])

	res := Table{}
	pos := 4
	for i := 0; i < nTables; i++ {
		if pos+6 > len(data) {
			return nil, invalid
		}
		length := int(data[pos+2])<<8 | int(data[pos+3])
		coverage := uint16(data[pos+4])<<8 | uint16(data[pos+5])
		if length < 6 || pos+length > len(data) {
			return nil, invalid
		}
		sub := data[pos : pos+length]
		pos += length

		// horizontal, not cross-stream, format 0
		if coverage&0x01 == 0 || coverage&0x04 != 0 || coverage>>8 != 0 {
			continue
		}
		if len(sub) < 14 {
			return nil, invalid
		}
		nPairs := int(sub[6])<<8 | int(sub[7])
		if 14+6*nPairs > len(sub) {
			return nil, invalid
		}
		for j := 0; j < nPairs; j++ {
			base := 14 + 6*j
			pair := glyph.Pair{
				Left:  glyph.ID(sub[base])<<8 | glyph.ID(sub[base+1]),
				Right: glyph.ID(sub[base+2])<<8 | glyph.ID(sub[base+3]),
			}
			val := funit.Int16(sub[base+4])<<8 | funit.Int16(sub[base+5])
			res[pair] = val
		}
	}
	return res, nil
}

// Pairs returns the glyph pairs of the table, sorted ascending by the
// composite key left<<16|right.
func (t Table) Pairs() []glyph.Pair {
	pairs := maps.Keys(t)
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key() < pairs[j].Key()
	})
	return pairs
}

// Encode converts the kerning pairs into a binary "kern" table with a
// single format 0 subtable.  An error is returned if the pairs do not
// fit into one subtable.
func (t Table) Encode() ([]byte, error) {
	nPairs := len(t)
	if nPairs > maxPairs {
		return nil, &sfnt.NotSupportedError{
			SubSystem: "sfnt/kern",
			Feature:   "more than 10920 kerning pairs",
		}
	}

	pairs := t.Pairs()

	length := 14 + 6*nPairs
	res := make([]byte, 4+length)
	// version 0, nTables 1
	res[3] = 1

	sub := res[4:]
	sub[2] = byte(length >> 8)
	sub[3] = byte(length)
	sub[5] = 0x01 // horizontal
	sub[6] = byte(nPairs >> 8)
	sub[7] = byte(nPairs)

	var entrySelector uint16
	if nPairs > 0 {
		entrySelector = uint16(bits.Len(uint(nPairs))) - 1
	}
	searchRange := uint16(6) << entrySelector
	rangeShift := uint16(6*nPairs) - searchRange
	sub[8] = byte(searchRange >> 8)
	sub[9] = byte(searchRange)
	sub[10] = byte(entrySelector >> 8)
	sub[11] = byte(entrySelector)
	sub[12] = byte(rangeShift >> 8)
	sub[13] = byte(rangeShift)

	for i, pair := range pairs {
		base := 14 + 6*i
		val := t[pair]
		sub[base] = byte(pair.Left >> 8)
		sub[base+1] = byte(pair.Left)
		sub[base+2] = byte(pair.Right >> 8)
		sub[base+3] = byte(pair.Right)
		sub[base+4] = byte(val >> 8)
		sub[base+5] = byte(val)
	}

	return res, nil
}
