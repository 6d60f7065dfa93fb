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
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func TestGridDataReadWrite(t *testing.T) {
	ext := Extents{Nx: 3, Ny: 2, Nz: 2}
	d, err := NewGridData(ext)
	if err != nil {
		t.Fatal(err)
	}
	d.Actnum.Elements[4] = 0
	poro := ext.NewProperty()
	for i := range poro.Elements {
		poro.Elements[i] = float64(i) / 10
	}
	poro.Elements[1] = -999
	if err = d.AddProperty("PORO", poro); err != nil {
		t.Fatal(err)
	}
	zi := sparse.ZerosDense(ext.Nz+1, ext.Ny, ext.Nx)
	for i := range zi.Elements {
		zi.Elements[i] = 1000 + float64(i/ext.Layer())*5
	}
	if err = d.AddProperty("ZINTERFACE", zi); err != nil {
		t.Fatal(err)
	}

	f, err := ioutil.TempFile("", "resgrid_griddata")
	if err != nil {
		t.Fatal(err)
	}
	fname := f.Name()
	defer os.Remove(fname)
	if err = d.Write(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	f, err = os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	d2, err := ReadGridData(f)
	if err != nil {
		t.Fatal(err)
	}
	if d2.Extents != ext {
		t.Errorf("extents: have %+v, want %+v", d2.Extents, ext)
	}
	if !reflect.DeepEqual(d2.Actnum.Elements, d.Actnum.Elements) {
		t.Errorf("actnum: have %v, want %v", d2.Actnum.Elements, d.Actnum.Elements)
	}
	if len(d2.Properties) != 2 {
		t.Errorf("have %d properties, want 2", len(d2.Properties))
	}
	for name, want := range d.Properties {
		have, err := d2.Property(name)
		if err != nil {
			t.Error(err)
			continue
		}
		if !reflect.DeepEqual(have.Shape, want.Shape) {
			t.Errorf("%s shape: have %v, want %v", name, have.Shape, want.Shape)
		}
		if !reflect.DeepEqual(have.Elements, want.Elements) {
			t.Errorf("%s: have %v, want %v", name, have.Elements, want.Elements)
		}
	}
}

func TestGridDataAddProperty(t *testing.T) {
	d, err := NewGridData(Extents{Nx: 2, Ny: 2, Nz: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err = d.AddProperty(ActnumVar, d.Extents.NewProperty()); err == nil {
		t.Error("adding a property called ACTNUM should fail")
	}
	if err = d.AddProperty("PORO", nil); err == nil {
		t.Error("adding a nil property should fail")
	}
	if err = d.AddProperty("PORO", sparse.ZerosDense(1, 2, 3)); err == nil {
		t.Error("adding a property with the wrong shape should fail")
	}
	if _, err = d.Property("PORO"); err == nil {
		t.Error("missing property should return an error")
	}
	for _, v := range d.ActiveMask() {
		if v != 1 {
			t.Fatalf("new grid should be fully active: %v", d.ActiveMask())
		}
	}
}

func TestNewGridDataInvalid(t *testing.T) {
	if _, err := NewGridData(Extents{Nx: 0, Ny: 1, Nz: 1}); err == nil {
		t.Error("expected an error for zero extents")
	}
}

func TestGridDataWriteActnumOnly(t *testing.T) {
	d, err := NewGridData(Extents{Nx: 2, Ny: 1, Nz: 2})
	if err != nil {
		t.Fatal(err)
	}
	d.Actnum.Elements[3] = 0
	f, err := ioutil.TempFile("", "resgrid_actnum")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	defer f.Close()
	// Writing the last element of a variable must not be reported as an error.
	if err = d.Write(f); err != nil {
		t.Fatal(err)
	}
	d2, err := ReadGridData(f)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 1, 1, 0}; !reflect.DeepEqual(d2.ActiveMask(), want) {
		t.Errorf("have %v, want %v", d2.ActiveMask(), want)
	}
	if len(d2.Properties) != 0 {
		t.Errorf("have %d properties, want 0", len(d2.Properties))
	}
}
