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
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Style
	}{
		{"Elstob-Regular.ttf", Regular},
		{"Elstob-Bold.ttf", Bold},
		{"Elstob-Italic.ttf", Italic},
		{"Elstob-BoldItalic.ttf", BoldItalic},
		{"Elstob-ItalicBold.ttf", BoldItalic},
		{"Elstob-Italic-Bold.ttf", BoldItalic},
		{"elstob-bolditalic.ttf", BoldItalic},
		{"ELSTOB-REGULAR.TTF", Regular},
		{"Go-Bold.ttf", Bold},
	}
	for _, c := range cases {
		got, err := Classify(c.in)
		if err != nil {
			t.Errorf("Classify(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClassifyInvalid(t *testing.T) {
	for _, in := range []string{"Elstob.ttf", "Elstob-Medium.ttf", ""} {
		_, err := Classify(in)
		var nameErr *InvalidNameError
		if !errors.As(err, &nameErr) {
			t.Errorf("Classify(%q): expected InvalidNameError, got %v", in, err)
		}
	}
}

func TestStyleAttributes(t *testing.T) {
	cases := []struct {
		style      Style
		str        string
		weight     uint16
		pWeight    byte
		pForm      byte
		bold, ital bool
	}{
		{Regular, "Regular", 400, 5, 2, false, false},
		{Bold, "Bold", 700, 8, 2, true, false},
		{Italic, "Italic", 400, 5, 3, false, true},
		{BoldItalic, "Bold Italic", 700, 8, 3, true, true},
	}
	for _, c := range cases {
		if got := c.style.String(); got != c.str {
			t.Errorf("%d.String() = %q, want %q", c.style, got, c.str)
		}
		if got := c.style.WeightClass(); got != c.weight {
			t.Errorf("%v.WeightClass() = %d, want %d", c.style, got, c.weight)
		}
		if got := c.style.PanoseWeight(); got != c.pWeight {
			t.Errorf("%v.PanoseWeight() = %d, want %d", c.style, got, c.pWeight)
		}
		if got := c.style.PanoseLetterform(); got != c.pForm {
			t.Errorf("%v.PanoseLetterform() = %d, want %d", c.style, got, c.pForm)
		}
		if c.style.IsBold() != c.bold || c.style.IsItalic() != c.ital {
			t.Errorf("%v: IsBold/IsItalic = %v/%v, want %v/%v",
				c.style, c.style.IsBold(), c.style.IsItalic(), c.bold, c.ital)
		}
	}
}
