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

package parser

import (
	"bytes"
	"testing"
)

func TestReadValues(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x03,
		0xff, 0xfe,
		0x04, 0x05, 0x06, 0x07,
	}
	p := New("test", bytes.NewReader(data))

	if v, err := p.ReadUint8(); err != nil || v != 0x01 {
		t.Errorf("ReadUint8 = %d, %v", v, err)
	}
	if v, err := p.ReadUint16(); err != nil || v != 0x0203 {
		t.Errorf("ReadUint16 = %#04x, %v", v, err)
	}
	if v, err := p.ReadInt16(); err != nil || v != -2 {
		t.Errorf("ReadInt16 = %d, %v", v, err)
	}
	if v, err := p.ReadUint32(); err != nil || v != 0x04050607 {
		t.Errorf("ReadUint32 = %#08x, %v", v, err)
	}
	if _, err := p.ReadUint8(); err == nil {
		t.Error("expected error at end of input")
	}
}

func TestSeekAndSlices(t *testing.T) {
	data := []byte{
		0, 0, // padding
		0, 3, 0, 10, 0, 20, 0, 30, // a uint16 slice with count
	}
	p := New("test", bytes.NewReader(data))

	if err := p.SeekPos(2); err != nil {
		t.Fatal(err)
	}
	vals, err := p.ReadUint16Slice()
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 || vals[0] != 10 || vals[2] != 30 {
		t.Errorf("ReadUint16Slice = %v", vals)
	}
	if p.Pos() != int64(len(data)) {
		t.Errorf("Pos = %d, want %d", p.Pos(), len(data))
	}

	if err := p.SeekPos(2); err != nil {
		t.Fatal(err)
	}
	gids, err := p.ReadGIDSlice()
	if err != nil {
		t.Fatal(err)
	}
	if len(gids) != 3 || gids[1] != 20 {
		t.Errorf("ReadGIDSlice = %v", gids)
	}
}

func TestCrossBufferRead(t *testing.T) {
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(i)
	}
	p := New("test", bytes.NewReader(data))

	if err := p.Discard(2999); err != nil {
		t.Fatal(err)
	}
	v, err := p.ReadUint8()
	if err != nil {
		t.Fatal(err)
	}
	want := data[2999]
	if v != want {
		t.Errorf("byte at 2999 = %d, want %d", v, want)
	}
}
