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

// Package fix rewrites TrueType font metadata for the Kobo text engine.
//
// The transformation steps are a style classifier, a PANOSE repair
// step, a name table editor and a kerning migrator which converts GPOS
// pair positioning into a legacy "kern" table.  The Job type sequences
// the steps over a single font, Batch runs them over many.
package fix

import (
	"fmt"
	"strings"
)

// Style is the style variant of a font, as derived from its file name.
type Style int

// The four style variants recognized by the classifier.
const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// InvalidNameError indicates that no style variant could be derived
// from a font identifier.
type InvalidNameError struct {
	Name string
}

func (err *InvalidNameError) Error() string {
	return fmt.Sprintf("cannot determine font style from %q", err.Name)
}

// Classify derives the style variant from a font identifier, normally
// the base name of the font file.  Matching is case-insensitive, and an
// identifier containing both a "Bold" and an "Italic" token is
// classified as BoldItalic regardless of token order.
func Classify(identifier string) (Style, error) {
	lower := strings.ToLower(identifier)
	hasBold := strings.Contains(lower, "bold")
	hasItalic := strings.Contains(lower, "italic")
	switch {
	case hasBold && hasItalic:
		return BoldItalic, nil
	case hasBold:
		return Bold, nil
	case hasItalic:
		return Italic, nil
	case strings.Contains(lower, "regular"):
		return Regular, nil
	default:
		return 0, &InvalidNameError{Name: identifier}
	}
}

// String returns the human-readable form of the style, as used in
// subfamily name records.
func (s Style) String() string {
	switch s {
	case Bold:
		return "Bold"
	case Italic:
		return "Italic"
	case BoldItalic:
		return "Bold Italic"
	default:
		return "Regular"
	}
}

// IsBold reports whether the style has bold weight.
func (s Style) IsBold() bool {
	return s == Bold || s == BoldItalic
}

// IsItalic reports whether the style is slanted.
func (s Style) IsItalic() bool {
	return s == Italic || s == BoldItalic
}

// WeightClass returns the OS/2 usWeightClass value for the style.
func (s Style) WeightClass() uint16 {
	if s.IsBold() {
		return 700
	}
	return 400
}

// PanoseWeight returns the PANOSE bWeight digit for the style.
func (s Style) PanoseWeight() byte {
	if s.IsBold() {
		return 8
	}
	return 5
}

// PanoseLetterform returns the PANOSE bLetterForm digit for the style.
func (s Style) PanoseLetterform() byte {
	if s.IsItalic() {
		return 3
	}
	return 2
}
