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
	"seehuhn.de/go/kobofix/sfnt/glyph"
	"seehuhn.de/go/kobofix/sfnt/gpos"
	"seehuhn.de/go/kobofix/sfnt/kern"
)

// MigrateStats reports how many kerning pairs were considered and how
// many ended up in the output table.  The two counts differ when pairs
// carry a zero adjustment.
type MigrateStats struct {
	Extracted int
	Written   int
}

// MigrateKerning merges the pair kerning data of a "GPOS" table into a
// flat kerning table.
//
// Class pairs are expanded into their cartesian products first; when
// expansions overlap, the earlier class pair wins.  Specific pairs are
// applied second and overwrite class-derived values, since explicit
// per-glyph data is authoritative.  Entries with a zero adjustment are
// dropped from the result.
func MigrateKerning(src *gpos.PairSource) (kern.Table, MigrateStats) {
	table := kern.Table{}

	for _, cp := range src.Class {
		for _, left := range cp.Left {
			for _, right := range cp.Right {
				key := glyph.Pair{Left: left, Right: right}
				if _, ok := table[key]; !ok {
					table[key] = cp.Adjust
				}
			}
		}
	}
	for _, sp := range src.Specific {
		table[sp.Pair] = sp.Adjust
	}

	var stats MigrateStats
	stats.Extracted = len(table)
	for key, val := range table {
		if val == 0 {
			delete(table, key)
		}
	}
	stats.Written = len(table)

	return table, stats
}
