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

// Package name has code for reading and writing the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
//
// In contrast to the usual high-level view of this table, records are
// kept individually, one per platform/encoding/language/name-ID
// combination, with their raw string data.  Records which use an
// encoding unknown to this package survive a decode/encode round trip
// unchanged.
package name

import (
	"sort"

	"seehuhn.de/go/kobofix/sfnt"
)

// Name IDs used by this module.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
const (
	IDCopyright          = 0
	IDFamily             = 1
	IDSubfamily          = 2
	IDUniqueID           = 3
	IDFullName           = 4
	IDVersion            = 5
	IDPostScriptName     = 6
	IDPreferredFamily    = 16
	IDPreferredSubfamily = 17
	IDWWSFamily          = 21
	IDWWSSubfamily       = 22
)

// Record is a single entry of the "name" table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16

	// Data is the string data in the encoding implied by PlatformID
	// and EncodingID.
	Data []byte
}

// Info contains the information from the "name" table.
type Info struct {
	Records []Record

	// LangTags contains the language-tag records of a version 1 table,
	// in their raw form.  They are written back unchanged.
	LangTags [][]byte
}

// Decode extracts the records from the binary "name" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, errMalformed
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version > 1 {
		return nil, errMalformed
	}

	numRec := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, errMalformed
	}

	info := &Info{}

	if version > 0 {
		if endOfHeader+2 > len(data) {
			return nil, errMalformed
		}
		numLang := int(data[endOfHeader])<<8 | int(data[endOfHeader+1])
		tagBase := endOfHeader + 2
		endOfHeader = tagBase + numLang*4
		if endOfHeader > len(data) {
			return nil, errMalformed
		}
		for i := 0; i < numLang; i++ {
			pos := tagBase + i*4
			tagLen := int(data[pos])<<8 | int(data[pos+1])
			tagOffset := int(data[pos+2])<<8 | int(data[pos+3])
			if storageOffset+tagOffset+tagLen > len(data) {
				return nil, errMalformed
			}
			tag := data[storageOffset+tagOffset : storageOffset+tagOffset+tagLen]
			info.LangTags = append(info.LangTags, append([]byte(nil), tag...))
		}
	}
	if storageOffset < endOfHeader || storageOffset > len(data) {
		return nil, errMalformed
	}

	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		rec := Record{
			PlatformID: uint16(data[pos])<<8 | uint16(data[pos+1]),
			EncodingID: uint16(data[pos+2])<<8 | uint16(data[pos+3]),
			LanguageID: uint16(data[pos+4])<<8 | uint16(data[pos+5]),
			NameID:     uint16(data[pos+6])<<8 | uint16(data[pos+7]),
		}
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])
		if storageOffset+nameOffset+nameLen > len(data) {
			return nil, errMalformed
		}
		raw := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]
		rec.Data = append([]byte(nil), raw...)
		info.Records = append(info.Records, rec)
	}

	return info, nil
}

// Encode converts the records into the binary form of the "name" table.
// Records are sorted as required by the specification, and identical
// string data is stored only once.
func (info *Info) Encode() []byte {
	records := make([]Record, len(info.Records))
	copy(records, info.Records)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.PlatformID != b.PlatformID {
			return a.PlatformID < b.PlatformID
		}
		if a.EncodingID != b.EncodingID {
			return a.EncodingID < b.EncodingID
		}
		if a.LanguageID != b.LanguageID {
			return a.LanguageID < b.LanguageID
		}
		return a.NameID < b.NameID
	})

	version := 0
	if len(info.LangTags) > 0 {
		version = 1
	}

	numRec := len(records)
	startOfRecords := 6
	endOfHeader := startOfRecords + 12*numRec
	if version == 1 {
		endOfHeader += 2 + 4*len(info.LangTags)
	}

	b := newBuilder()
	type placed struct {
		offset, length uint16
	}
	pp := make([]placed, numRec)
	for i, rec := range records {
		offset, length := b.Add(rec.Data)
		pp[i] = placed{offset, length}
	}
	tt := make([]placed, len(info.LangTags))
	for i, tag := range info.LangTags {
		offset, length := b.Add(tag)
		tt[i] = placed{offset, length}
	}

	res := make([]byte, endOfHeader+len(b.data))
	res[0] = byte(version >> 8)
	res[1] = byte(version)
	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(endOfHeader >> 8)
	res[5] = byte(endOfHeader)
	for i, rec := range records {
		base := startOfRecords + i*12
		res[base] = byte(rec.PlatformID >> 8)
		res[base+1] = byte(rec.PlatformID)
		res[base+2] = byte(rec.EncodingID >> 8)
		res[base+3] = byte(rec.EncodingID)
		res[base+4] = byte(rec.LanguageID >> 8)
		res[base+5] = byte(rec.LanguageID)
		res[base+6] = byte(rec.NameID >> 8)
		res[base+7] = byte(rec.NameID)
		res[base+8] = byte(pp[i].length >> 8)
		res[base+9] = byte(pp[i].length)
		res[base+10] = byte(pp[i].offset >> 8)
		res[base+11] = byte(pp[i].offset)
	}
	if version == 1 {
		base := startOfRecords + 12*numRec
		numLang := len(info.LangTags)
		res[base] = byte(numLang >> 8)
		res[base+1] = byte(numLang)
		for i := range info.LangTags {
			pos := base + 2 + i*4
			res[pos] = byte(tt[i].length >> 8)
			res[pos+1] = byte(tt[i].length)
			res[pos+2] = byte(tt[i].offset >> 8)
			res[pos+3] = byte(tt[i].offset)
		}
	}
	copy(res[endOfHeader:], b.data)

	return res
}

// Get returns the best available value for the given name ID, preferring
// the Windows en-US record, then any Windows record, then the Macintosh
// Roman record.  It returns "" if no record can be decoded.
func (info *Info) Get(nameID uint16) string {
	var windows, other string
	for i := range info.Records {
		rec := &info.Records[i]
		if rec.NameID != nameID {
			continue
		}
		val, ok := rec.Value()
		if !ok || val == "" {
			continue
		}
		switch {
		case rec.PlatformID == 3 && rec.EncodingID == 1 && rec.LanguageID == 0x0409:
			return val
		case rec.PlatformID == 3 && windows == "":
			windows = val
		case other == "":
			other = val
		}
	}
	if windows != "" {
		return windows
	}
	return other
}

// Filter removes all records for which keep returns false.
func (info *Info) Filter(keep func(*Record) bool) {
	out := info.Records[:0]
	for i := range info.Records {
		if keep(&info.Records[i]) {
			out = append(out, info.Records[i])
		}
	}
	info.Records = out
}

// SetAll updates the string value of every decodable record with the
// given name ID.  Records with unknown encodings are left alone.  It
// returns the number of records updated.
func (info *Info) SetAll(nameID uint16, value string) int {
	n := 0
	for i := range info.Records {
		rec := &info.Records[i]
		if rec.NameID != nameID {
			continue
		}
		if rec.SetValue(value) == nil {
			n++
		}
	}
	return n
}

var errMalformed = &sfnt.InvalidFontError{
	SubSystem: "sfnt/name",
	Reason:    "malformed name table",
}

type builder struct {
	data []byte
	idx  map[string]uint16
}

func newBuilder() *builder {
	return &builder{
		idx: make(map[string]uint16),
	}
}

func (nb *builder) Add(b []byte) (offs, length uint16) {
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b))
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b))
}
