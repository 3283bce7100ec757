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

package fix

import (
	"strings"

	"seehuhn.de/go/kobofix/sfnt/name"
)

// RewriteNames replaces the naming records of a font with names derived
// from newFamily and the style.  Every platform/encoding/language
// variant of a record is updated independently, records with encodings
// unknown to the name package pass through untouched.
//
// WWS family and subfamily records are removed rather than rewritten,
// since the exemption they encode cannot survive an arbitrary rename.
func RewriteNames(info *name.Info, newFamily string, style Style) {
	info.Filter(func(r *name.Record) bool {
		return r.NameID != name.IDWWSFamily && r.NameID != name.IDWWSSubfamily
	})

	subfamily := style.String()
	fullName := newFamily
	if style != Regular {
		fullName += " " + subfamily
	}

	info.SetAll(name.IDFamily, newFamily)
	info.SetAll(name.IDPreferredFamily, newFamily)
	info.SetAll(name.IDSubfamily, subfamily)
	info.SetAll(name.IDPreferredSubfamily, subfamily)
	info.SetAll(name.IDFullName, fullName)
	info.SetAll(name.IDPostScriptName, psName(newFamily, style))

	for i := range info.Records {
		rec := &info.Records[i]
		if rec.NameID != name.IDUniqueID {
			continue
		}
		old, ok := rec.Value()
		if !ok {
			continue
		}
		rec.SetValue(uniqueID(old, newFamily, style))
	}
}

// psName builds a PostScript font name from the family and style.  The
// two halves have their spaces removed and are joined by a hyphen, and
// characters outside the conventional PostScript name set are dropped.
func psName(family string, style Style) string {
	res := psNameFilter(family) + "-" + psNameFilter(style.String())
	return res
}

// psNameFilter removes all characters not allowed in a PostScript font
// name: everything outside printable ASCII, and the delimiters
// reserved by the PostScript language.
func psNameFilter(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c <= ' ' || c > '~' {
			continue
		}
		switch c {
		case '[', ']', '(', ')', '{', '}', '<', '>', '/', '%':
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// uniqueID builds a new UniqueID string, carrying over the version
// suffix of the previous value when one is present.
func uniqueID(old, family string, style Style) string {
	version := "Version 1.000"
	if _, tail, ok := strings.Cut(old, "Version"); ok {
		version = "Version" + tail
	}
	return family + " " + style.String() + ":" + version
}
