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
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Names of the NetCDF dimensions and variables used in grid files.
const (
	DimX          = "x"
	DimY          = "y"
	DimZ          = "z"
	DimZInterface = "zInterface"

	// ActnumVar is the name of the active cell mask variable. Its
	// dimensions (z, y, x) define the grid extents.
	ActnumVar = "ACTNUM"
)

// GridData holds the active cell mask and the properties of a grid.
type GridData struct {
	Extents Extents
	Actnum  *sparse.DenseArrayInt

	// Properties holds the grid properties, with the keys being the
	// variable names. Properties have shape (Nz, Ny, Nx), except for layer
	// interface properties, which have shape (Nz+1, Ny, Nx).
	Properties map[string]*sparse.DenseArray
}

// NewGridData returns an empty GridData where all cells are active.
func NewGridData(ext Extents) (*GridData, error) {
	if err := ext.Validate(); err != nil {
		return nil, err
	}
	d := &GridData{
		Extents:    ext,
		Actnum:     ext.NewActnum(),
		Properties: make(map[string]*sparse.DenseArray),
	}
	for i := range d.Actnum.Elements {
		d.Actnum.Elements[i] = 1
	}
	return d, nil
}

// AddProperty adds a property to d, replacing any property with the
// same name.
func (d *GridData) AddProperty(name string, data *sparse.DenseArray) error {
	if name == ActnumVar {
		return fmt.Errorf("resgrid: %s is reserved for the active cell mask", ActnumVar)
	}
	if data == nil {
		return fmt.Errorf("resgrid: property %s is nil", name)
	}
	if _, ok := d.dims(data.Shape); !ok {
		return fmt.Errorf("resgrid: property %s has shape %v, which doesn't match grid %dx%dx%d",
			name, data.Shape, d.Extents.Nx, d.Extents.Ny, d.Extents.Nz)
	}
	if d.Properties == nil {
		d.Properties = make(map[string]*sparse.DenseArray)
	}
	d.Properties[name] = data
	return nil
}

// Property returns the property with the given name.
func (d *GridData) Property(name string) (*sparse.DenseArray, error) {
	p, ok := d.Properties[name]
	if !ok {
		return nil, fmt.Errorf("resgrid: grid has no property %s", name)
	}
	return p, nil
}

// ActiveMask returns the active cell mask as a flat array in
// ColumnMajor order.
func (d *GridData) ActiveMask() []int { return d.Actnum.Elements }

// dims returns the NetCDF dimension names for an array of the given shape.
func (d *GridData) dims(shape []int) ([]string, bool) {
	e := d.Extents
	if len(shape) != 3 || shape[1] != e.Ny || shape[2] != e.Nx {
		return nil, false
	}
	switch shape[0] {
	case e.Nz:
		return []string{DimZ, DimY, DimX}, true
	case e.Nz + 1:
		return []string{DimZInterface, DimY, DimX}, true
	}
	return nil, false
}

// ReadGridData reads a grid from a NetCDF file. The file must contain an
// ACTNUM variable with dimensions (z, y, x). Every other variable with
// the same horizontal dimensions and either z or zInterface as its
// vertical dimension is read as a property.
func ReadGridData(rw cdf.ReaderWriterAt) (*GridData, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("resgrid.ReadGridData: %v", err)
	}
	shape := f.Header.Lengths(ActnumVar)
	if shape == nil {
		return nil, fmt.Errorf("resgrid.ReadGridData: file has no %s variable", ActnumVar)
	}
	ext, err := extentsFromShape(shape)
	if err != nil {
		return nil, fmt.Errorf("resgrid.ReadGridData: %w", err)
	}
	d := &GridData{
		Extents:    ext,
		Actnum:     ext.NewActnum(),
		Properties: make(map[string]*sparse.DenseArray),
	}

	act, err := readVar(f, ActnumVar, ext.Len())
	if err != nil {
		return nil, err
	}
	for i, v := range act {
		d.Actnum.Elements[i] = int(v)
	}

	for _, name := range f.Header.Variables() {
		if name == ActnumVar {
			continue
		}
		dims := f.Header.Lengths(name)
		if _, ok := d.dims(dims); !ok {
			continue
		}
		p := sparse.ZerosDense(dims...)
		vals, err := readVar(f, name, len(p.Elements))
		if err != nil {
			return nil, err
		}
		copy(p.Elements, vals)
		d.Properties[name] = p
	}
	return d, nil
}

// readVar reads n values of variable name from f, converting them
// to float64.
func readVar(f *cdf.File, name string, n int) ([]float64, error) {
	buf := f.Header.ZeroValue(name, n)
	if buf == nil {
		return nil, fmt.Errorf("resgrid.ReadGridData: variable %s has an unsupported type", name)
	}
	r := f.Reader(name, nil, nil)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("resgrid.ReadGridData: reading %s: %v", name, err)
	}
	o := make([]float64, n)
	switch b := buf.(type) {
	case []uint8:
		for i, v := range b {
			o[i] = float64(v)
		}
	case []int16:
		for i, v := range b {
			o[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			o[i] = float64(v)
		}
	case []float32:
		for i, v := range b {
			o[i] = float64(v)
		}
	case []float64:
		copy(o, b)
	default:
		return nil, fmt.Errorf("resgrid.ReadGridData: variable %s has unsupported type %s",
			name, reflect.TypeOf(buf))
	}
	return o, nil
}

// Write writes d to NetCDF file w.
func (d *GridData) Write(w *os.File) error {
	e := d.Extents
	h := cdf.NewHeader(
		[]string{DimX, DimY, DimZ, DimZInterface},
		[]int{e.Nx, e.Ny, e.Nz, e.Nz + 1})
	h.AddAttribute("", "comment", "resgrid grid property file")
	h.AddAttribute("", "nx", []int32{int32(e.Nx)})
	h.AddAttribute("", "ny", []int32{int32(e.Ny)})
	h.AddAttribute("", "nz", []int32{int32(e.Nz)})

	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(d.Properties))
	for n := range d.Properties {
		names = append(names, n)
	}
	sort.Strings(names)

	h.AddVariable(ActnumVar, []string{DimZ, DimY, DimX}, []int32{0})
	h.AddAttribute(ActnumVar, "description", "Active cell mask")
	for _, name := range names {
		dims, ok := d.dims(d.Properties[name].Shape)
		if !ok {
			return fmt.Errorf("resgrid: property %s has shape %v, which doesn't match the grid",
				name, d.Properties[name].Shape)
		}
		h.AddVariable(name, dims, []float64{0})
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return err
	}

	act := make([]int32, len(d.Actnum.Elements))
	for i, v := range d.Actnum.Elements {
		act[i] = int32(v)
	}
	if err = writeVar(f, ActnumVar, act); err != nil {
		return err
	}
	for _, name := range names {
		if err = writeVar(f, name, d.Properties[name].Elements); err != nil {
			return err
		}
	}
	return cdf.UpdateNumRecs(w)
}

// writeVar writes all of the values of variable name to f.
func writeVar(f *cdf.File, name string, data interface{}) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("resgrid: writing variable %s to netcdf file: %v", name, err)
	}
	return nil
}
