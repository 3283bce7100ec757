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
	"encoding/binary"
	"io"
	"math/bits"
	"os"
	"sort"
	"time"
)

// Recommended order for tables in the body of a TrueType font file.
// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var optimizedOrder = []string{
	"head", "hhea", "maxp", "OS/2", "hmtx", "LTSH", "VDMX", "hdmx", "cmap",
	"fpgm", "prep", "cvt ", "loca", "glyf", "kern", "name", "post", "gasp",
}

// Write writes the font to w.  Table checksums, the file checksum in the
// "head" table and the modification date are recomputed.  Any digital
// signature ("DSIG" table) is dropped, since it can no longer be valid
// after the file has been rearranged.
func (f *Font) Write(w io.Writer) (int64, error) {
	tags := f.tableOrder()
	tracer().Debugf("writing %d tables", len(tags))

	numTables := len(tags)
	sel := bits.Len(uint(numTables)) - 1

	bodies := make(map[string][]byte, numTables)
	for _, tag := range tags {
		bodies[tag] = f.Tables[tag]
	}

	if head, ok := bodies["head"]; ok && len(head) >= 36 {
		// copy, then refresh the modification date and zero the
		// checksum adjustment
		head = append([]byte(nil), head...)
		zero := time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
		modified := uint64(time.Since(zero).Seconds())
		binary.BigEndian.PutUint32(head[8:12], 0)
		binary.BigEndian.PutUint64(head[28:36], modified)
		bodies["head"] = head
	}

	type record struct {
		tag      string
		checksum uint32
		offset   uint32
		length   uint32
	}
	records := make([]record, numTables)
	offset := uint32(12 + 16*numTables)
	var totalSum uint32
	for i, tag := range tags {
		body := bodies[tag]
		sum := Checksum(body)
		records[i] = record{
			tag:      tag,
			checksum: sum,
			offset:   offset,
			length:   uint32(len(body)),
		}
		totalSum += sum
		offset += 4 * ((uint32(len(body)) + 3) / 4)
	}

	// the table directory is sorted by tag, independent of body order
	dir := make([]record, numTables)
	copy(dir, records)
	sort.Slice(dir, func(i, j int) bool { return dir[i].tag < dir[j].tag })

	header := make([]byte, 12+16*numTables)
	binary.BigEndian.PutUint32(header[0:4], f.ScalerType)
	binary.BigEndian.PutUint16(header[4:6], uint16(numTables))
	binary.BigEndian.PutUint16(header[6:8], uint16(16)<<sel)
	binary.BigEndian.PutUint16(header[8:10], uint16(sel))
	binary.BigEndian.PutUint16(header[10:12], uint16(16*(numTables-1<<sel)))
	for i, rec := range dir {
		base := 12 + 16*i
		copy(header[base:base+4], rec.tag)
		binary.BigEndian.PutUint32(header[base+4:base+8], rec.checksum)
		binary.BigEndian.PutUint32(header[base+8:base+12], rec.offset)
		binary.BigEndian.PutUint32(header[base+12:base+16], rec.length)
	}
	totalSum += Checksum(header)

	if head, ok := bodies["head"]; ok && len(head) >= 12 {
		binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-totalSum)
	}

	var totalSize int64
	n, err := w.Write(header)
	if err != nil {
		return 0, err
	}
	totalSize += int64(n)

	var pad [3]byte
	for _, tag := range tags {
		body := bodies[tag]
		n, err := w.Write(body)
		if err != nil {
			return 0, err
		}
		totalSize += int64(n)
		if k := len(body) % 4; k != 0 {
			l, err := w.Write(pad[:4-k])
			if err != nil {
				return 0, err
			}
			totalSize += int64(l)
		}
	}

	return totalSize, nil
}

// WriteFile writes the font to the named file.
func (f *Font) WriteFile(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	_, err = f.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

func (f *Font) tableOrder() []string {
	var tags []string
	done := map[string]bool{
		// a pre-existing signature is invalid after rewriting
		"DSIG": true,
	}
	for _, tag := range optimizedOrder {
		done[tag] = true
		if _, ok := f.Tables[tag]; ok {
			tags = append(tags, tag)
		}
	}
	extraPos := len(tags)
	for tag := range f.Tables {
		if !done[tag] {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags[extraPos:])
	return tags
}

// Checksum computes the checksum of a table, as used in the sfnt table
// directory.  The data is implicitly padded with zeros to a multiple of
// four bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	n := len(data)
	for i := 0; i+4 <= n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i : i+4])
	}
	if k := n % 4; k != 0 {
		var tail [4]byte
		copy(tail[:], data[n-k:])
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}
