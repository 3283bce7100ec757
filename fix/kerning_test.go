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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/kobofix/sfnt/glyph"
	"seehuhn.de/go/kobofix/sfnt/gpos"
	"seehuhn.de/go/kobofix/sfnt/kern"
)

const (
	gidA glyph.ID = 36
	gidB glyph.ID = 37
	gidV glyph.ID = 57
	gidW glyph.ID = 58
)

func TestMigrateKerning(t *testing.T) {
	src := &gpos.PairSource{
		Specific: []gpos.SpecificPair{
			{Pair: glyph.Pair{Left: gidA, Right: gidV}, Adjust: -50},
		},
		Class: []gpos.ClassPair{
			{
				Left:   []glyph.ID{gidA, gidB},
				Right:  []glyph.ID{gidV, gidW},
				Adjust: -30,
			},
		},
	}

	table, stats := MigrateKerning(src)

	want := kern.Table{
		{Left: gidA, Right: gidV}: -50,
		{Left: gidA, Right: gidW}: -30,
		{Left: gidB, Right: gidV}: -30,
		{Left: gidB, Right: gidW}: -30,
	}
	if d := cmp.Diff(want, table); d != "" {
		t.Errorf("wrong table (-want +got):\n%s", d)
	}
	if stats.Extracted != 4 || stats.Written != 4 {
		t.Errorf("stats = %+v, want {4 4}", stats)
	}
}

func TestMigrateClassOverlap(t *testing.T) {
	// when class expansions overlap, the earlier class pair wins
	src := &gpos.PairSource{
		Class: []gpos.ClassPair{
			{Left: []glyph.ID{gidA}, Right: []glyph.ID{gidV}, Adjust: -10},
			{Left: []glyph.ID{gidA}, Right: []glyph.ID{gidV, gidW}, Adjust: -20},
		},
	}
	table, _ := MigrateKerning(src)

	want := kern.Table{
		{Left: gidA, Right: gidV}: -10,
		{Left: gidA, Right: gidW}: -20,
	}
	if d := cmp.Diff(want, table); d != "" {
		t.Errorf("wrong table (-want +got):\n%s", d)
	}
}

func TestMigrateSpecificWins(t *testing.T) {
	src := &gpos.PairSource{
		Specific: []gpos.SpecificPair{
			{Pair: glyph.Pair{Left: gidA, Right: gidV}, Adjust: -77},
		},
		Class: []gpos.ClassPair{
			{Left: []glyph.ID{gidA}, Right: []glyph.ID{gidV}, Adjust: -30},
		},
	}
	table, _ := MigrateKerning(src)
	if got := table[glyph.Pair{Left: gidA, Right: gidV}]; got != -77 {
		t.Errorf("adjustment = %d, want -77", got)
	}
}

func TestMigrateDropsZero(t *testing.T) {
	src := &gpos.PairSource{
		Specific: []gpos.SpecificPair{
			{Pair: glyph.Pair{Left: gidA, Right: gidV}, Adjust: 0},
			{Pair: glyph.Pair{Left: gidA, Right: gidW}, Adjust: -12},
		},
		Class: []gpos.ClassPair{
			{Left: []glyph.ID{gidB}, Right: []glyph.ID{gidV}, Adjust: 0},
		},
	}
	table, stats := MigrateKerning(src)

	if stats.Extracted != 3 {
		t.Errorf("Extracted = %d, want 3", stats.Extracted)
	}
	if stats.Written != 1 {
		t.Errorf("Written = %d, want 1", stats.Written)
	}
	if len(table) != 1 {
		t.Errorf("table has %d entries, want 1", len(table))
	}
	for _, val := range table {
		if val == 0 {
			t.Error("zero adjustment left in output")
		}
	}
}

func TestMigrateEmpty(t *testing.T) {
	table, stats := MigrateKerning(&gpos.PairSource{})
	if len(table) != 0 || stats.Extracted != 0 || stats.Written != 0 {
		t.Errorf("unexpected output for empty source: %v, %+v", table, stats)
	}
}

func TestMigrateOutputSorted(t *testing.T) {
	src := &gpos.PairSource{
		Class: []gpos.ClassPair{
			{Left: []glyph.ID{5, 3}, Right: []glyph.ID{9, 1}, Adjust: -4},
		},
		Specific: []gpos.SpecificPair{
			{Pair: glyph.Pair{Left: 4, Right: 2}, Adjust: -8},
		},
	}
	table, _ := MigrateKerning(src)

	pairs := table.Pairs()
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].Key() >= pairs[i].Key() {
			t.Fatalf("pairs not strictly ascending: %v before %v", pairs[i-1], pairs[i])
		}
	}
}
