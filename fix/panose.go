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
	"seehuhn.de/go/kobofix/sfnt/os2"
)

// PanoseReport describes the changes made by RepairPanose.
type PanoseReport struct {
	Changed bool

	WeightBefore     byte
	WeightAfter      byte
	LetterformBefore byte
	LetterformAfter  byte
}

// RepairPanose reconciles the weight and letterform digits of a PANOSE
// classification with the given style.  All other digits pass through
// unchanged.  The operation never fails and is idempotent.
func RepairPanose(panose [10]byte, style Style) ([10]byte, PanoseReport) {
	r := PanoseReport{
		WeightBefore:     panose[os2.PanoseWeight],
		WeightAfter:      style.PanoseWeight(),
		LetterformBefore: panose[os2.PanoseLetterform],
		LetterformAfter:  style.PanoseLetterform(),
	}
	panose[os2.PanoseWeight] = r.WeightAfter
	panose[os2.PanoseLetterform] = r.LetterformAfter
	r.Changed = r.WeightBefore != r.WeightAfter ||
		r.LetterformBefore != r.LetterformAfter
	return panose, r
}
