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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/kobofix/sfnt"
)

func utf16beBytes(s string) []byte {
	var res []byte
	for _, r := range s {
		res = append(res, byte(r>>8), byte(r))
	}
	return res
}

func TestRoundTrip(t *testing.T) {
	info := &Info{
		Records: []Record{
			{
				PlatformID: 1,
				EncodingID: 0,
				LanguageID: 0,
				NameID:     IDFamily,
				Data:       []byte("Test Family"),
			},
			{
				PlatformID: 3,
				EncodingID: 1,
				LanguageID: 0x0409,
				NameID:     IDFamily,
				Data:       utf16beBytes("Test Family"),
			},
			{
				PlatformID: 3,
				EncodingID: 1,
				LanguageID: 0x0409,
				NameID:     IDSubfamily,
				Data:       utf16beBytes("Regular"),
			},
		},
	}

	data := info.Encode()
	info2, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, info2); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestUnknownEncodingSurvives(t *testing.T) {
	raw := []byte{0x81, 0x40, 0x82, 0x60} // some Shift-JIS bytes
	info := &Info{
		Records: []Record{
			{
				PlatformID: 3,
				EncodingID: 2, // Shift-JIS, not supported here
				LanguageID: 0x0411,
				NameID:     IDFamily,
				Data:       raw,
			},
		},
	}

	if _, ok := info.Records[0].Value(); ok {
		t.Error("expected Value to fail for unknown encoding")
	}

	info2, err := Decode(info.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(raw, info2.Records[0].Data); d != "" {
		t.Errorf("raw data changed (-want +got):\n%s", d)
	}
}

func TestGet(t *testing.T) {
	info := &Info{
		Records: []Record{
			{
				PlatformID: 1,
				EncodingID: 0,
				NameID:     IDFamily,
				Data:       []byte("Mac Name"),
			},
			{
				PlatformID: 3,
				EncodingID: 1,
				LanguageID: 0x0407, // de-DE
				NameID:     IDFamily,
				Data:       utf16beBytes("German Name"),
			},
			{
				PlatformID: 3,
				EncodingID: 1,
				LanguageID: 0x0409, // en-US
				NameID:     IDFamily,
				Data:       utf16beBytes("English Name"),
			},
		},
	}

	if got := info.Get(IDFamily); got != "English Name" {
		t.Errorf("Get(IDFamily) = %q, want %q", got, "English Name")
	}
	if got := info.Get(IDVersion); got != "" {
		t.Errorf("Get(IDVersion) = %q, want \"\"", got)
	}
}

func TestSetAll(t *testing.T) {
	info := &Info{
		Records: []Record{
			{PlatformID: 1, EncodingID: 0, NameID: IDFamily, Data: []byte("Old")},
			{PlatformID: 3, EncodingID: 1, NameID: IDFamily, Data: utf16beBytes("Old")},
			{PlatformID: 3, EncodingID: 2, NameID: IDFamily, Data: []byte{0x81, 0x40}},
			{PlatformID: 3, EncodingID: 1, NameID: IDSubfamily, Data: utf16beBytes("Bold")},
		},
	}

	n := info.SetAll(IDFamily, "New")
	if n != 2 {
		t.Errorf("SetAll changed %d records, want 2", n)
	}
	if got, _ := info.Records[0].Value(); got != "New" {
		t.Errorf("mac record = %q, want %q", got, "New")
	}
	if got, _ := info.Records[1].Value(); got != "New" {
		t.Errorf("windows record = %q, want %q", got, "New")
	}
	if got, _ := info.Records[3].Value(); got != "Bold" {
		t.Errorf("subfamily record = %q, want %q", got, "Bold")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := [][]byte{
		{},
		{0, 0},
		{0, 2, 0, 0, 0, 6}, // unknown version
		{0, 0, 0, 1, 0, 6}, // record list truncated
	}
	for i, data := range cases {
		_, err := Decode(data)
		var invalid *sfnt.InvalidFontError
		if !errors.As(err, &invalid) {
			t.Errorf("case %d: err = %v, want InvalidFontError", i, err)
		}
	}
}

func TestFilter(t *testing.T) {
	info := &Info{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, NameID: IDFamily, Data: utf16beBytes("A")},
			{PlatformID: 3, EncodingID: 1, NameID: IDWWSFamily, Data: utf16beBytes("B")},
			{PlatformID: 3, EncodingID: 1, NameID: IDWWSSubfamily, Data: utf16beBytes("C")},
		},
	}
	info.Filter(func(r *Record) bool {
		return r.NameID != IDWWSFamily && r.NameID != IDWWSSubfamily
	})
	if len(info.Records) != 1 || info.Records[0].NameID != IDFamily {
		t.Errorf("unexpected records after Filter: %v", info.Records)
	}
}

func TestStorageDedup(t *testing.T) {
	info := &Info{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, NameID: IDFamily, Data: utf16beBytes("Same")},
			{PlatformID: 3, EncodingID: 1, NameID: IDPreferredFamily, Data: utf16beBytes("Same")},
		},
	}
	data := info.Encode()
	// header + 2 records + one copy of the string
	want := 6 + 2*12 + len(utf16beBytes("Same"))
	if len(data) != want {
		t.Errorf("encoded length = %d, want %d", len(data), want)
	}
}

func FuzzName(f *testing.F) {
	seed := (&Info{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409,
				NameID: IDFamily, Data: utf16beBytes("Seed")},
		},
	}).Encode()
	f.Add(seed)
	f.Fuzz(func(t *testing.T, data []byte) {
		info, err := Decode(data)
		if err != nil {
			return
		}
		data2 := info.Encode()
		info2, err := Decode(data2)
		if err != nil {
			t.Fatal(err)
		}
		data3 := info2.Encode()
		if d := cmp.Diff(data2, data3); d != "" {
			t.Errorf("encoding is not stable (-want +got):\n%s", d)
		}
	})
}
