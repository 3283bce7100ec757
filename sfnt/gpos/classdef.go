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

// classDef maps glyphs to glyph classes.  Only glyphs explicitly listed
// in the table are present, all other glyphs default to class 0.
type classDef map[glyph.ID]uint16

// readClassDef reads a class definition table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#classDefTbl
func readClassDef(p *parser.Parser, pos int64) (classDef, error) {
	err := p.SeekPos(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := classDef{}
	switch format {
	case 1:
		buf, err := p.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		startGlyph := int(buf[0])<<8 | int(buf[1])
		glyphCount := int(buf[2])<<8 | int(buf[3])
		if startGlyph+glyphCount > 65536 {
			return nil, p.Error("invalid class definition range")
		}
		for i := 0; i < glyphCount; i++ {
			class, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			res[glyph.ID(startGlyph+i)] = class
		}
	case 2:
		rangeCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(rangeCount); i++ {
			buf, err := p.ReadBytes(6)
			if err != nil {
				return nil, err
			}
			start := int(buf[0])<<8 | int(buf[1])
			end := int(buf[2])<<8 | int(buf[3])
			class := uint16(buf[4])<<8 | uint16(buf[5])
			if end < start {
				return nil, p.Error("invalid class range %d-%d", start, end)
			}
			for gid := start; gid <= end; gid++ {
				res[glyph.ID(gid)] = class
			}
		}
	default:
		return nil, p.Error("unsupported class definition format %d", format)
	}
	return res, nil
}

// Class returns the class of the given glyph.
func (c classDef) Class(gid glyph.ID) uint16 {
	return c[gid]
}
