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

// ErrGeometry is returned when a ThicknessProvider is given geometry
// it cannot interpret.
var ErrGeometry = errors.New("resgrid: unsupported grid geometry")

// Geometry is an opaque description of the grid geometry. It is passed
// unchanged to a ThicknessProvider.
type Geometry interface{}

// A ThicknessProvider computes the vertical thickness of every grid cell.
type ThicknessProvider interface {
	// Thickness fills dz, which has ext.Len() elements in ColumnMajor
	// order, with the thickness of each cell.
	Thickness(ext Extents, geometry Geometry, actnum []int, dz []float64) error
}

// ThicknessFunc is an adapter to allow the use of ordinary functions as
// ThicknessProviders.
type ThicknessFunc func(ext Extents, geometry Geometry, actnum []int, dz []float64) error

// Thickness calls f(ext, geometry, actnum, dz).
func (f ThicknessFunc) Thickness(ext Extents, geometry Geometry, actnum []int, dz []float64) error {
	return f(ext, geometry, actnum, dz)
}

// StaticThickness is a ThicknessProvider for grids where the cell
// thicknesses are already known. The geometry must be either a []float64
// or a *sparse.DenseArray holding one thickness per cell.
type StaticThickness struct{}

// Thickness implements ThicknessProvider.
func (StaticThickness) Thickness(ext Extents, geometry Geometry, _ []int, dz []float64) error {
	var src []float64
	switch g := geometry.(type) {
	case []float64:
		src = g
	case *sparse.DenseArray:
		if g == nil {
			return fmt.Errorf("%w: nil thickness array", ErrGeometry)
		}
		e, err := extentsFromShape(g.Shape)
		if err != nil {
			return err
		}
		if e != ext {
			return fmt.Errorf("%w: thickness array is %dx%dx%d but grid is %dx%dx%d",
				ErrGeometry, e.Nx, e.Ny, e.Nz, ext.Nx, ext.Ny, ext.Nz)
		}
		src = g.Elements
	default:
		return fmt.Errorf("%w: StaticThickness can't use geometry of type %T", ErrGeometry, geometry)
	}
	if len(src) != len(dz) {
		return fmt.Errorf("%w: thickness array has %d cells but grid has %d",
			ErrGeometry, len(src), len(dz))
	}
	copy(dz, src)
	return nil
}

// InterfaceThickness is a ThicknessProvider for grids described by the
// depths of their layer interfaces. The geometry must be a
// *sparse.DenseArray with shape (Nz+1, Ny, Nx), where element (k, j, i)
// is the depth of the top of layer k+1 in column (i+1, j+1) and element
// (Nz, j, i) is the depth of the bottom of the column.
type InterfaceThickness struct{}

// Thickness implements ThicknessProvider.
func (InterfaceThickness) Thickness(ext Extents, geometry Geometry, _ []int, dz []float64) error {
	z, ok := geometry.(*sparse.DenseArray)
	if !ok || z == nil {
		return fmt.Errorf("%w: InterfaceThickness needs a *sparse.DenseArray of layer interface depths but got %T",
			ErrGeometry, geometry)
	}
	s := z.Shape
	if len(s) != 3 || s[0] != ext.Nz+1 || s[1] != ext.Ny || s[2] != ext.Nx {
		return fmt.Errorf("%w: layer interfaces have shape %v but should be [%d %d %d]",
			ErrGeometry, s, ext.Nz+1, ext.Ny, ext.Nx)
	}
	if len(dz) != ext.Len() {
		return fmt.Errorf("%w: thickness buffer has %d cells but grid has %d",
			ErrGeometry, len(dz), ext.Len())
	}
	layer := ext.Layer()
	for ib := range dz {
		// Interface k+1 is exactly one layer below interface k in the
		// flattened array.
		dz[ib] = math.Abs(z.Elements[ib+layer] - z.Elements[ib])
	}
	return nil
}
