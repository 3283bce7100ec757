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

package name

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// codec returns the text encoding used by the record, or nil if the
// platform/encoding combination is not supported by this package.
func (r *Record) codec() encoding.Encoding {
	switch r.PlatformID {
	case 0: // Unicode
		return utf16be
	case 1: // Macintosh
		if r.EncodingID == 0 {
			return charmap.Macintosh
		}
	case 3: // Windows
		switch r.EncodingID {
		case 1, 10: // Unicode BMP, Unicode full
			return utf16be
		}
	}
	return nil
}

// Value decodes the record's string data.  The second return value
// indicates whether the record's encoding is supported.
func (r *Record) Value() (string, bool) {
	enc := r.codec()
	if enc == nil {
		return "", false
	}
	buf, err := enc.NewDecoder().Bytes(r.Data)
	if err != nil {
		return "", false
	}
	return string(buf), true
}

// SetValue replaces the record's string data with the given value,
// converted to the record's encoding.  Characters which cannot be
// represented are replaced with a substitute character.
func (r *Record) SetValue(value string) error {
	enc := r.codec()
	if enc == nil {
		return fmt.Errorf("name: unsupported encoding %d/%d",
			r.PlatformID, r.EncodingID)
	}
	buf, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(value))
	if err != nil {
		return err
	}
	r.Data = buf
	return nil
}
