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

package sfnt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Read reads an sfnt font file.  All tables are kept, including tags
// unknown to this library, so that a later Write preserves them.
func Read(r io.ReaderAt) (*Font, error) {
	var buf [16]byte
	_, err := r.ReadAt(buf[:6], 0)
	if err != nil {
		return nil, err
	}
	scalerType := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	numTables := int(buf[4])<<8 | int(buf[5])

	if scalerType != ScalerTypeTrueType &&
		scalerType != ScalerTypeCFF &&
		scalerType != ScalerTypeApple {
		return nil, &NotSupportedError{
			SubSystem: "sfnt/header",
			Feature:   fmt.Sprintf("scaler type 0x%x", scalerType),
		}
	}
	if numTables > 280 {
		// the largest value observed in the wild is around 30
		return nil, errors.New("sfnt/header: too many tables")
	}

	type tableRef struct {
		tag    string
		offset uint32
		length uint32
	}
	refs := make([]tableRef, 0, numTables)
	for i := 0; i < numTables; i++ {
		_, err := r.ReadAt(buf[:], int64(12+i*16))
		if err != nil {
			return nil, err
		}
		refs = append(refs, tableRef{
			tag:    string(buf[:4]),
			offset: uint32(buf[8])<<24 | uint32(buf[9])<<16 | uint32(buf[10])<<8 | uint32(buf[11]),
			length: uint32(buf[12])<<24 | uint32(buf[13])<<16 | uint32(buf[14])<<8 | uint32(buf[15]),
		})
	}
	if len(refs) == 0 {
		return nil, errors.New("sfnt/header: no tables found")
	}

	// sanity checks
	sorted := make([]tableRef, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].offset != sorted[j].offset {
			return sorted[i].offset < sorted[j].offset
		}
		return sorted[i].length < sorted[j].length
	})
	if sorted[0].offset < uint32(12+16*numTables) {
		return nil, errors.New("sfnt/header: invalid table offset")
	}
	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		cur := sorted[i]
		if prev.offset == cur.offset && prev.length == cur.length {
			// some fonts list the same data under two tags
			continue
		}
		if prev.offset+prev.length > cur.offset {
			return nil, errors.New("sfnt/header: overlapping tables")
		}
	}

	tracer().Debugf("reading %d tables", len(refs))
	f := &Font{
		ScalerType: scalerType,
		Tables:     make(map[string][]byte, len(refs)),
	}
	for _, ref := range refs {
		data := make([]byte, ref.length)
		n, err := r.ReadAt(data, int64(ref.offset))
		if n < len(data) {
			if err == io.EOF {
				return nil, errors.New("sfnt/header: table extends beyond EOF")
			}
			return nil, err
		}
		f.Tables[ref.tag] = data
	}

	return f, nil
}

// ReadFile reads an sfnt font from the named file.
func ReadFile(fname string) (*Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}
