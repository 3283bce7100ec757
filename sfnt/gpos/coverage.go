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
	"seehuhn.de/go/kobofix/sfnt/glyph"
	"seehuhn.de/go/kobofix/sfnt/parser"
)

// readCoverage reads a coverage table and returns the covered glyphs in
// coverage index order.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
func readCoverage(p *parser.Parser, pos int64) ([]glyph.ID, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch format {
	case 1:
		return p.ReadGIDSlice()
	case 2:
		rangeCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		var res []glyph.ID
		prev := -1
		for i := 0; i < int(rangeCount); i++ {
			buf, err := p.ReadBytes(6)
			if err != nil {
				return nil, err
			}
			start := int(buf[0])<<8 | int(buf[1])
			end := int(buf[2])<<8 | int(buf[3])
			if start < prev || end < start {
				return nil, p.Error("invalid coverage range %d-%d", start, end)
			}
			for gid := start; gid <= end; gid++ {
				res = append(res, glyph.ID(gid))
			}
			prev = end
		}
		return res, nil
	default:
		return nil, p.Error("unsupported coverage format %d", format)
	}
}
