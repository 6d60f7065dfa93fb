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

	"github.com/ctessum/sparse"
)

// ErrInvalidExtents is returned when a grid has a non-positive number of
// cells along any axis, or more cells than can be indexed.
var ErrInvalidExtents = errors.New("resgrid: invalid grid extents")

// IndexMode selects the convention used to map (i, j, k) grid
// coordinates to a linear offset.
type IndexMode int

const (
	// ColumnMajor places i fastest, then j, then k. All arrays created
	// by this package use this convention.
	ColumnMajor IndexMode = iota

	// RowMajor places k fastest, then j, then i.
	RowMajor
)

// Extents holds the number of grid cells along each axis.
type Extents struct {
	Nx, Ny, Nz int
}

// Validate returns an error if any of the extents is not positive or if
// the total number of cells overflows an int.
func (e Extents) Validate() error {
	if e.Nx <= 0 || e.Ny <= 0 || e.Nz <= 0 {
		return fmt.Errorf("%w: nx=%d, ny=%d, nz=%d", ErrInvalidExtents, e.Nx, e.Ny, e.Nz)
	}
	if e.Nx > math.MaxInt32 || e.Ny > math.MaxInt32 ||
		e.Nx*e.Ny > math.MaxInt/e.Nz {
		return fmt.Errorf("%w: %dx%dx%d cells overflows the index range",
			ErrInvalidExtents, e.Nx, e.Ny, e.Nz)
	}
	return nil
}

// Len returns the number of cells in the grid.
func (e Extents) Len() int { return e.Nx * e.Ny * e.Nz }

// Layer returns the number of cells in one layer of the grid.
func (e Extents) Layer() int { return e.Nx * e.Ny }

// Contains reports whether the 1-based coordinates are inside the grid.
func (e Extents) Contains(i, j, k int) bool {
	return i >= 1 && i <= e.Nx && j >= 1 && j <= e.Ny && k >= 1 && k <= e.Nz
}

// Index returns the linear offset of the cell at 1-based coordinates
// (i, j, k). No bounds checking is performed.
func (e Extents) Index(i, j, k int, mode IndexMode) int {
	if mode == RowMajor {
		return (i-1)*e.Ny*e.Nz + (j-1)*e.Nz + (k - 1)
	}
	return (k-1)*e.Nx*e.Ny + (j-1)*e.Nx + (i - 1)
}

// IJK is the inverse of Index.
func (e Extents) IJK(offset int, mode IndexMode) (i, j, k int) {
	if mode == RowMajor {
		k = offset%e.Nz + 1
		j = (offset/e.Nz)%e.Ny + 1
		i = offset/(e.Nz*e.Ny) + 1
		return
	}
	i = offset%e.Nx + 1
	j = (offset/e.Nx)%e.Ny + 1
	k = offset/(e.Nx*e.Ny) + 1
	return
}

// NewProperty returns a zeroed property array for the grid. Its shape
// is (Nz, Ny, Nx), so that the row-major index of element (k-1, j-1, i-1)
// equals e.Index(i, j, k, ColumnMajor).
func (e Extents) NewProperty() *sparse.DenseArray {
	return sparse.ZerosDense(e.Nz, e.Ny, e.Nx)
}

// NewActnum returns a zeroed active-cell mask laid out like NewProperty.
func (e Extents) NewActnum() *sparse.DenseArrayInt {
	return sparse.ZerosDenseInt(e.Nz, e.Ny, e.Nx)
}

// extentsFromShape returns the extents of a (Nz, Ny, Nx) shaped array.
func extentsFromShape(shape []int) (Extents, error) {
	if len(shape) != 3 {
		return Extents{}, fmt.Errorf("%w: grid arrays must have 3 dimensions but have %d",
			ErrInvalidExtents, len(shape))
	}
	e := Extents{Nx: shape[2], Ny: shape[1], Nz: shape[0]}
	return e, e.Validate()
}
