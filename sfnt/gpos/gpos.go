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

// Package gpos extracts pair kerning data from the "GPOS" table.
//
// Only the parts of the table needed for building a flat kerning table
// are evaluated: pair adjustment lookups (type 2) in both their
// per-glyph and class-based forms, including the extension wrapping
// (type 9).  All other lookup types are ignored.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos
package gpos

import (
	"bytes"
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/kobofix/sfnt"
	"seehuhn.de/go/kobofix/sfnt/funit"
	"seehuhn.de/go/kobofix/sfnt/glyph"
	"seehuhn.de/go/kobofix/sfnt/parser"
)

// SpecificPair is a kerning adjustment for one explicit glyph pair.
type SpecificPair struct {
	Pair   glyph.Pair
	Adjust funit.Int16
}

// ClassPair is a kerning adjustment between a class of left glyphs and
// a class of right glyphs.  Both glyph lists are sorted ascending.
type ClassPair struct {
	Left   []glyph.ID
	Right  []glyph.ID
	Adjust funit.Int16
}

// PairSource collects the kerning information of a font's "GPOS" table.
// Entries appear in the order they are encountered in the table.
type PairSource struct {
	Specific []SpecificPair
	Class    []ClassPair
}

// ReadPairs extracts all pair kerning data from a binary "GPOS" table.
// Lookup types other than pair adjustment are skipped silently.
func ReadPairs(data []byte) (*PairSource, error) {
	p := parser.New("GPOS", bytes.NewReader(data))

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if version>>16 != 1 {
		return nil, &sfnt.NotSupportedError{
			SubSystem: "sfnt/gpos",
			Feature:   "GPOS table version 2",
		}
	}
	err = p.Discard(4) // scriptListOffset, featureListOffset
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	lookupListBase := int64(lookupListOffset)
	err = p.SeekPos(lookupListBase)
	if err != nil {
		return nil, err
	}
	lookupOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	src := &PairSource{}
	for _, lookupOffset := range lookupOffsets {
		lookupBase := lookupListBase + int64(lookupOffset)
		err = p.SeekPos(lookupBase)
		if err != nil {
			return nil, err
		}
		buf, err := p.ReadBytes(6)
		if err != nil {
			return nil, err
		}
		lookupType := uint16(buf[0])<<8 | uint16(buf[1])
		subTableCount := int(buf[4])<<8 | int(buf[5])
		if lookupType != 2 && lookupType != 9 {
			continue
		}
		subTableOffsets := make([]uint16, subTableCount)
		for i := range subTableOffsets {
			subTableOffsets[i], err = p.ReadUint16()
			if err != nil {
				return nil, err
			}
		}

		for _, subTableOffset := range subTableOffsets {
			subBase := lookupBase + int64(subTableOffset)
			if lookupType == 9 {
				err = p.SeekPos(subBase)
				if err != nil {
					return nil, err
				}
				buf, err := p.ReadBytes(8)
				if err != nil {
					return nil, err
				}
				posFormat := uint16(buf[0])<<8 | uint16(buf[1])
				extType := uint16(buf[2])<<8 | uint16(buf[3])
				extOffset := uint32(buf[4])<<24 | uint32(buf[5])<<16 |
					uint32(buf[6])<<8 | uint32(buf[7])
				if posFormat != 1 || extType != 2 {
					continue
				}
				subBase += int64(extOffset)
			}
			err = readPairPos(p, subBase, src)
			if err != nil {
				return nil, err
			}
		}
	}

	return src, nil
}

// readPairPos reads one pair adjustment subtable.  Unknown subtable
// formats are skipped.
func readPairPos(p *parser.Parser, base int64, src *PairSource) error {
	err := p.SeekPos(base)
	if err != nil {
		return err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return err
	}
	switch format {
	case 1:
		return readPairPos1(p, base, src)
	case 2:
		return readPairPos2(p, base, src)
	default:
		return nil
	}
}

// readPairPos1 reads a pair adjustment subtable in format 1, with one
// PairSet per covered glyph.
func readPairPos1(p *parser.Parser, base int64, src *PairSource) error {
	buf, err := p.ReadBytes(8)
	if err != nil {
		return err
	}
	coverageOffset := uint16(buf[0])<<8 | uint16(buf[1])
	valueFormat1 := uint16(buf[2])<<8 | uint16(buf[3])
	valueFormat2 := uint16(buf[4])<<8 | uint16(buf[5])
	pairSetCount := int(buf[6])<<8 | int(buf[7])

	pairSetOffsets := make([]uint16, pairSetCount)
	for i := range pairSetOffsets {
		pairSetOffsets[i], err = p.ReadUint16()
		if err != nil {
			return err
		}
	}

	cov, err := readCoverage(p, base+int64(coverageOffset))
	if err != nil {
		return err
	}
	if len(cov) < pairSetCount {
		pairSetCount = len(cov)
	}

	for i := 0; i < pairSetCount; i++ {
		err = p.SeekPos(base + int64(pairSetOffsets[i]))
		if err != nil {
			return err
		}
		pairValueCount, err := p.ReadUint16()
		if err != nil {
			return err
		}
		for j := 0; j < int(pairValueCount); j++ {
			second, err := p.ReadUint16()
			if err != nil {
				return err
			}
			vr1, err := readValueRecord(p, valueFormat1)
			if err != nil {
				return err
			}
			vr2, err := readValueRecord(p, valueFormat2)
			if err != nil {
				return err
			}
			src.Specific = append(src.Specific, SpecificPair{
				Pair:   glyph.Pair{Left: cov[i], Right: glyph.ID(second)},
				Adjust: kernValue(vr1, vr2),
			})
		}
	}
	return nil
}

// readPairPos2 reads a pair adjustment subtable in format 2, with a
// class matrix of adjustments.
func readPairPos2(p *parser.Parser, base int64, src *PairSource) error {
	buf, err := p.ReadBytes(14)
	if err != nil {
		return err
	}
	coverageOffset := uint16(buf[0])<<8 | uint16(buf[1])
	valueFormat1 := uint16(buf[2])<<8 | uint16(buf[3])
	valueFormat2 := uint16(buf[4])<<8 | uint16(buf[5])
	classDef1Offset := uint16(buf[6])<<8 | uint16(buf[7])
	classDef2Offset := uint16(buf[8])<<8 | uint16(buf[9])
	class1Count := int(buf[10])<<8 | int(buf[11])
	class2Count := int(buf[12])<<8 | int(buf[13])

	cellSize := valueRecordSize(valueFormat1) + valueRecordSize(valueFormat2)
	if int64(class1Count)*int64(class2Count)*int64(cellSize) > p.Size() {
		return p.Error("class matrix larger than table")
	}

	// The matrix follows the header directly, read it before seeking
	// to the offset subtables.
	values := make([][]funit.Int16, class1Count)
	for c1 := 0; c1 < class1Count; c1++ {
		values[c1] = make([]funit.Int16, class2Count)
		for c2 := 0; c2 < class2Count; c2++ {
			vr1, err := readValueRecord(p, valueFormat1)
			if err != nil {
				return err
			}
			vr2, err := readValueRecord(p, valueFormat2)
			if err != nil {
				return err
			}
			values[c1][c2] = kernValue(vr1, vr2)
		}
	}

	cov, err := readCoverage(p, base+int64(coverageOffset))
	if err != nil {
		return err
	}
	classDef1, err := readClassDef(p, base+int64(classDef1Offset))
	if err != nil {
		return err
	}
	classDef2, err := readClassDef(p, base+int64(classDef2Offset))
	if err != nil {
		return err
	}

	// Left classes are populated from the coverage, with unlisted
	// glyphs in class 0.  Right classes only contain glyphs explicitly
	// listed in the class definition.
	leftGlyphs := make([][]glyph.ID, class1Count)
	for _, gid := range cov {
		c1 := int(classDef1.Class(gid))
		if c1 < class1Count {
			leftGlyphs[c1] = append(leftGlyphs[c1], gid)
		}
	}
	for _, gg := range leftGlyphs {
		sort.Slice(gg, func(i, j int) bool { return gg[i] < gg[j] })
	}

	rightGlyphs := make([][]glyph.ID, class2Count)
	rightIDs := maps.Keys(classDef2)
	sort.Slice(rightIDs, func(i, j int) bool { return rightIDs[i] < rightIDs[j] })
	for _, gid := range rightIDs {
		c2 := int(classDef2[gid])
		if c2 < class2Count {
			rightGlyphs[c2] = append(rightGlyphs[c2], gid)
		}
	}

	for c1 := 0; c1 < class1Count; c1++ {
		for c2 := 0; c2 < class2Count; c2++ {
			if len(leftGlyphs[c1]) == 0 || len(rightGlyphs[c2]) == 0 {
				continue
			}
			src.Class = append(src.Class, ClassPair{
				Left:   leftGlyphs[c1],
				Right:  rightGlyphs[c2],
				Adjust: values[c1][c2],
			})
		}
	}
	return nil
}
