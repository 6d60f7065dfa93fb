/*
Copyright © 2019 the InMAP authors.
This file is part of resgrid.

resgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

resgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with resgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package hash

import (
	"math"
	"testing"
)

type named string

func (n named) String() string { return string(n) }

func TestFloats(t *testing.T) {
	a := Floats([]float64{1, 2, math.NaN()})
	b := Floats([]float64{1, 2, math.NaN()})
	if a != b {
		t.Errorf("equal slices have different keys %s and %s", a, b)
	}
	if c := Floats([]float64{1, 2, 3}); c == a {
		t.Error("different slices have the same key")
	}
	if Floats([]float64{0}) == Floats([]float64{math.Copysign(0, -1)}) {
		t.Error("keys should depend on bit patterns")
	}
}

func TestHash(t *testing.T) {
	if h := Hash(named("abc")); h != "abc" {
		t.Errorf("Stringer: have %s", h)
	}
	v := []float64{4, 5}
	if Hash(v) != Floats(v) {
		t.Error("[]float64 should hash like Floats")
	}
	type s struct{ A, B int }
	if Hash(s{1, 2}) != Hash(s{1, 2}) {
		t.Error("equal structs have different keys")
	}
	if Hash(s{1, 2}) == Hash(s{2, 1}) {
		t.Error("different structs have the same key")
	}
	var p *s
	if Hash(p) != Hash(p) {
		t.Error("nil pointer keys differ")
	}
	if Hash(p) == Hash(&s{1, 2}) {
		t.Error("nil and non-nil pointers have the same key")
	}
	if Hash(nil) == "" {
		t.Error("nil should have a key")
	}
	// gob can't encode channels.
	c := make(chan int)
	if Hash(c) != Hash(c) {
		t.Error("unencodable values have different keys")
	}
}
