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

package os2

import (
	"bytes"
	"testing"
)

func TestFields(t *testing.T) {
	data := make([]byte, minLength)
	data[4] = 0x01
	data[5] = 0x90 // weight class 400
	data[32+PanoseWeight] = 5
	data[32+PanoseLetterform] = 2
	data[63] = byte(FsSelectionRegular)

	tab, err := New(data)
	if err != nil {
		t.Fatal(err)
	}
	if w := tab.WeightClass(); w != 400 {
		t.Errorf("WeightClass = %d, want 400", w)
	}
	if b := tab.PanoseByte(PanoseWeight); b != 5 {
		t.Errorf("PanoseByte(Weight) = %d, want 5", b)
	}
	if sel := tab.FsSelection(); sel != FsSelectionRegular {
		t.Errorf("FsSelection = %#04x, want %#04x", sel, FsSelectionRegular)
	}

	tab.SetWeightClass(700)
	tab.SetPanoseByte(PanoseWeight, 8)
	tab.SetFsSelection(FsSelectionBold)

	if w := tab.WeightClass(); w != 700 {
		t.Errorf("WeightClass = %d, want 700", w)
	}
	if data[32+PanoseWeight] != 8 {
		t.Errorf("panose byte not written through")
	}
	if sel := tab.FsSelection(); sel != FsSelectionBold {
		t.Errorf("FsSelection = %#04x, want %#04x", sel, FsSelectionBold)
	}
}

func TestUntouchedBytesPreserved(t *testing.T) {
	data := make([]byte, minLength+18) // a version 1 table
	for i := range data {
		data[i] = byte(i)
	}
	orig := append([]byte(nil), data...)

	tab, err := New(data)
	if err != nil {
		t.Fatal(err)
	}
	tab.SetWeightClass(700)
	tab.SetFsSelection(FsSelectionBold | FsSelectionItalic)

	for i := range data {
		touched := i == 4 || i == 5 || i == 62 || i == 63
		if !touched && data[i] != orig[i] {
			t.Errorf("byte %d changed from %#02x to %#02x", i, orig[i], data[i])
		}
	}
}

func TestTooShort(t *testing.T) {
	_, err := New(bytes.Repeat([]byte{0}, minLength-1))
	if err == nil {
		t.Error("expected error for short table")
	}
}
