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
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidSize is returned when a buffer is requested with a
	// non-positive number of rows or columns.
	ErrInvalidSize = errors.New("resgrid: invalid buffer size")

	// ErrAllocation is returned when a requested buffer is too large
	// to be allocated.
	ErrAllocation = errors.New("resgrid: allocation failed")
)

// maxElements is the largest number of elements a single Buffer2D may hold.
var maxElements = math.MaxInt >> 4

// Element is the set of types that can be stored in a Buffer2D.
type Element interface {
	~float64 | ~float32 | ~int | ~int32 | ~bool
}

// Buffer2D is a two-dimensional buffer backed by one contiguous block.
// Row r starts at offset r*Stride() in the block, so
// element (r, c+1) directly follows element (r, c).
type Buffer2D[T Element] struct {
	data       []T
	rows, cols int
}

// Allocate2D allocates a zeroed n1 x n2 buffer.
func Allocate2D[T Element](n1, n2 int) (*Buffer2D[T], error) {
	if n1 <= 0 || n2 <= 0 {
		return nil, fmt.Errorf("%w: %d x %d", ErrInvalidSize, n1, n2)
	}
	if n1 > maxElements/n2 {
		return nil, fmt.Errorf("%w: %d x %d elements exceeds the limit of %d",
			ErrAllocation, n1, n2, maxElements)
	}
	return &Buffer2D[T]{
		data: make([]T, n1*n2),
		rows: n1,
		cols: n2,
	}, nil
}

// Rows returns the number of rows in b.
func (b *Buffer2D[T]) Rows() int { return b.rows }

// Cols returns the number of columns in b.
func (b *Buffer2D[T]) Cols() int { return b.cols }

// Stride returns the distance between the starts of two successive rows.
func (b *Buffer2D[T]) Stride() int { return b.cols }

// Len returns the number of elements in b, or zero if b has been freed.
func (b *Buffer2D[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Offset returns the position of element (r, c) in the backing block.
func (b *Buffer2D[T]) Offset(r, c int) int { return r*b.cols + c }

// Row returns row r as a slice of the backing block.
func (b *Buffer2D[T]) Row(r int) []T {
	o := r * b.cols
	return b.data[o : o+b.cols : o+b.cols]
}

// At returns element (r, c).
func (b *Buffer2D[T]) At(r, c int) T { return b.data[r*b.cols+c] }

// Set sets element (r, c) to v.
func (b *Buffer2D[T]) Set(r, c int, v T) { b.data[r*b.cols+c] = v }

// Data returns the whole backing block in row order.
func (b *Buffer2D[T]) Data() []T { return b.data }

// Free releases the backing block. It is safe to call Free on a nil
// buffer and to call it more than once.
func (b *Buffer2D[T]) Free() {
	if b == nil || b.data == nil {
		return
	}
	b.data = nil
	b.rows, b.cols = 0, 0
}

// Release implements Releaser.
func (b *Buffer2D[T]) Release() { b.Free() }

// Releaser is a resource that can be released.
type Releaser interface {
	Release()
}

// Scratch owns a set of buffers that are released together,
// typically with a deferred call to Release.
type Scratch struct {
	Log logrus.FieldLogger

	items []Releaser
}

// NewScratch returns an empty Scratch that logs releases to log.
// If log is nil, releases are not logged.
func NewScratch(log logrus.FieldLogger) *Scratch {
	return &Scratch{Log: log}
}

// Add takes ownership of r. Nil values are ignored.
func (s *Scratch) Add(r ...Releaser) {
	for _, rr := range r {
		if rr != nil {
			s.items = append(s.items, rr)
		}
	}
}

// Len returns the number of buffers s currently owns.
func (s *Scratch) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Release releases every buffer held by s in the order they were added.
// Calling Release on a nil or already released Scratch does nothing.
func (s *Scratch) Release() {
	if s == nil {
		return
	}
	n := len(s.items)
	for i, r := range s.items {
		r.Release()
		if s.Log != nil {
			s.Log.WithFields(logrus.Fields{
				"buffer": i + 1,
				"total":  n,
			}).Debug("resgrid: released scratch buffer")
		}
	}
	s.items = nil
}
