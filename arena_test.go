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

package resgrid

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestAllocate2D(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 5}, {4, 1}, {3, 7}} {
		n1, n2 := size[0], size[1]
		b, err := Allocate2D[float64](n1, n2)
		if err != nil {
			t.Fatal(err)
		}
		if b.Rows() != n1 || b.Cols() != n2 || b.Stride() != n2 || b.Len() != n1*n2 {
			t.Errorf("%dx%d: rows %d, cols %d, stride %d, len %d",
				n1, n2, b.Rows(), b.Cols(), b.Stride(), b.Len())
		}
		data := b.Data()
		for r := 0; r < n1; r++ {
			row := b.Row(r)
			if len(row) != n2 {
				t.Errorf("%dx%d: row %d has length %d", n1, n2, r, len(row))
			}
			if &row[0] != &data[r*n2] {
				t.Errorf("%dx%d: row %d doesn't start at offset %d", n1, n2, r, r*n2)
			}
			for c := 0; c < n2; c++ {
				b.Set(r, c, float64(r*100+c))
			}
		}
		for i, v := range data {
			if want := float64((i/n2)*100 + i%n2); v != want {
				t.Errorf("%dx%d: element %d = %g, want %g", n1, n2, i, v, want)
			}
		}
		if b.At(n1-1, n2-1) != data[len(data)-1] || b.Offset(n1-1, n2-1) != len(data)-1 {
			t.Errorf("%dx%d: last element mismatch", n1, n2)
		}
	}
}

func TestAllocate2DTypes(t *testing.T) {
	f, err := Allocate2D[float32](2, 2)
	if err != nil {
		t.Fatal(err)
	}
	i, err := Allocate2D[int](2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Allocate2D[bool](3, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.Set(1, 1, 2.5)
	i.Set(1, 0, 7)
	b.Set(2, 1, true)
	if f.Data()[3] != 2.5 || i.Data()[3] != 7 || !b.Data()[5] {
		t.Error("elements were not stored row by row")
	}
}

func TestAllocate2DErrors(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		if _, err := Allocate2D[int](size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("%v: have %v, want %v", size, err, ErrInvalidSize)
		}
	}
	max := maxElements
	defer func() { maxElements = max }()
	maxElements = 10
	if _, err := Allocate2D[float64](3, 4); !errors.Is(err, ErrAllocation) {
		t.Errorf("have %v, want %v", err, ErrAllocation)
	}
	if _, err := Allocate2D[float64](2, 5); err != nil {
		t.Errorf("allocation at the limit failed: %v", err)
	}
}

func TestFree(t *testing.T) {
	var nilBuf *Buffer2D[float64]
	nilBuf.Free()
	nilBuf.Release()
	if nilBuf.Len() != 0 {
		t.Error("nil buffer should have length 0")
	}

	b, err := Allocate2D[int32](2, 2)
	if err != nil {
		t.Fatal(err)
	}
	b.Free()
	b.Free()
	if b.Len() != 0 || b.Data() != nil {
		t.Error("freed buffer still holds data")
	}
}

func TestScratch(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel

	s := NewScratch(log)
	a, _ := Allocate2D[float64](2, 2)
	b, _ := Allocate2D[int](1, 3)
	var c *Buffer2D[bool]
	s.Add(a, nil, b, c)
	if s.Len() != 3 {
		t.Errorf("have %d buffers, want 3", s.Len())
	}
	s.Release()
	if a.Len() != 0 || b.Len() != 0 {
		t.Error("buffers were not released")
	}
	if len(hook.Entries) != 3 {
		t.Fatalf("have %d log entries, want 3", len(hook.Entries))
	}
	for i, e := range hook.Entries {
		if e.Data["buffer"] != i+1 || e.Data["total"] != 3 {
			t.Errorf("entry %d: have fields %v", i, e.Data)
		}
	}

	hook.Reset()
	s.Release()
	if len(hook.Entries) != 0 {
		t.Error("second release logged again")
	}

	var nilScratch *Scratch
	nilScratch.Release()
	if nilScratch.Len() != 0 {
		t.Error("nil scratch should be empty")
	}
	NewScratch(nil).Release()
}
