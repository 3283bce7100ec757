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
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/google/go-cmp/cmp"
)

func TestReadGoRegular(t *testing.T) {
	f, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	if f.ScalerType != ScalerTypeTrueType {
		t.Errorf("ScalerType = %#x, want %#x", f.ScalerType, ScalerTypeTrueType)
	}
	for _, tag := range []string{"head", "name", "OS/2", "glyf"} {
		if !f.Has(tag) {
			t.Errorf("table %q missing", tag)
		}
	}
	if !f.IsGlyf() {
		t.Error("IsGlyf() = false for a TrueType font")
	}
}

func TestRoundTrip(t *testing.T) {
	f, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	n, err := f.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Write returned %d, wrote %d bytes", n, buf.Len())
	}

	f2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(f2.Tables) != len(f.Tables) {
		t.Errorf("got %d tables, want %d", len(f2.Tables), len(f.Tables))
	}
	for tag, body := range f.Tables {
		if tag == "head" {
			// modification date and checksum adjustment change
			continue
		}
		if d := cmp.Diff(body, f2.Tables[tag]); d != "" {
			t.Errorf("table %q changed (-want +got):\n%s", tag, d)
		}
	}
}

func TestFileChecksum(t *testing.T) {
	f, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	_, err = f.Write(buf)
	if err != nil {
		t.Fatal(err)
	}

	if sum := Checksum(buf.Bytes()); sum != 0xB1B0AFBA {
		t.Errorf("file checksum = %#08x, want 0xB1B0AFBA", sum)
	}
}

func TestUnknownTablePreserved(t *testing.T) {
	f, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte("private data")
	f.Set("Xtra", payload)

	buf := &bytes.Buffer{}
	_, err = f.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(payload, f2.Table("Xtra")); d != "" {
		t.Errorf("table lost (-want +got):\n%s", d)
	}
}

func TestDSIGDropped(t *testing.T) {
	f, err := Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	f.Set("DSIG", []byte{0, 0, 0, 1})

	buf := &bytes.Buffer{}
	_, err = f.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if f2.Has("DSIG") {
		t.Error("DSIG table still present after rewriting")
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		data []byte
		want uint32
	}{
		{nil, 0},
		{[]byte{0, 0, 0, 1}, 1},
		{[]byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{[]byte{0x80, 0, 0, 0, 0x80, 0, 0, 0}, 0}, // overflow wraps
		{[]byte{1}, 0x01000000},                   // implicit zero padding
	}
	for _, c := range cases {
		if got := Checksum(c.data); got != c.want {
			t.Errorf("Checksum(%v) = %#x, want %#x", c.data, got, c.want)
		}
	}
}
