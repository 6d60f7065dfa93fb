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

package resgridutil

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/resgrid"
	"github.com/spatialmodel/resgrid/internal/hash"
	"gonum.org/v1/gonum/floats"
)

// Report summarizes a Fill run.
type Report struct {
	InputFile  string
	OutputFile string
	Property   string

	// Thickness is the name of the variable the cell thicknesses
	// were taken or calculated from.
	Thickness string

	Nx, Ny, Nz   int
	Background   float64
	MaxDz        float64
	IgnoreActnum bool

	Triggered  int
	Repaired   int
	Unresolved int

	// MinCellDz and MaxCellDz give the range of cell thicknesses in the grid.
	MinCellDz, MaxCellDz float64

	// SettingsHash identifies the combination of the settings above.
	SettingsHash string

	InputHash, OutputHash string
}

// fillSettings holds the settings that determine the result of a Fill.
type fillSettings struct {
	Property, Thickness string
	Background, MaxDz   float64
	IgnoreActnum        bool
}

// Fill reads the grid in inputFile, fills the background values of
// property and writes the grid to outputFile.
//
// If the grid contains the variable dzVar, it is used as the cell
// thickness. Otherwise the thickness is calculated from the layer interface
// depths in zInterfaceVar.
//
// background, maxDz and ignoreActnum are the settings of the
// resgrid.ColumnInterpolator. verbosity specifies how much information
// should be logged. If reportFile is not empty, a TOML summary of the run
// is written there. If log is nil, nothing is logged.
func Fill(log logrus.FieldLogger, inputFile, outputFile, property, dzVar, zInterfaceVar string,
	background, maxDz float64, ignoreActnum bool, verbosity int, reportFile string) (*Report, error) {
	if log == nil {
		log = newLogger(ioutil.Discard, verbosity)
	}

	log.WithField("file", inputFile).Info("resgrid: reading input grid")
	d, err := readGrid(inputFile)
	if err != nil {
		return nil, err
	}
	prop, err := d.Property(property)
	if err != nil {
		return nil, err
	}
	if property == dzVar || property == zInterfaceVar {
		return nil, fmt.Errorf("resgrid: property %s is also the cell thickness source and can't be filled", property)
	}
	if len(prop.Shape) == 0 || prop.Shape[0] != d.Extents.Nz {
		return nil, fmt.Errorf("resgrid: property %s must have dimensions (%s, %s, %s)",
			property, resgrid.DimZ, resgrid.DimY, resgrid.DimX)
	}

	var (
		tp       resgrid.ThicknessProvider
		geometry resgrid.Geometry
		geomName string
	)
	if dz, ok := d.Properties[dzVar]; ok && dzVar != "" {
		tp, geometry, geomName = resgrid.StaticThickness{}, dz, dzVar
	} else if zi, ok := d.Properties[zInterfaceVar]; ok && zInterfaceVar != "" {
		tp, geometry, geomName = resgrid.InterfaceThickness{}, zi, zInterfaceVar
	} else {
		return nil, fmt.Errorf("resgrid: input grid has neither a %s nor a %s variable to compute cell thicknesses from",
			dzVar, zInterfaceVar)
	}

	r := &Report{
		InputFile:    inputFile,
		OutputFile:   outputFile,
		Property:     property,
		Thickness:    geomName,
		Nx:           d.Extents.Nx,
		Ny:           d.Extents.Ny,
		Nz:           d.Extents.Nz,
		Background:   background,
		MaxDz:        maxDz,
		IgnoreActnum: ignoreActnum,
		InputHash:    hash.Floats(prop.Elements),
	}
	r.SettingsHash = hash.Hash(fillSettings{
		Property:     property,
		Thickness:    geomName,
		Background:   background,
		MaxDz:        maxDz,
		IgnoreActnum: ignoreActnum,
	})

	cellDz := make([]float64, d.Extents.Len())
	if err = tp.Thickness(d.Extents, geometry, d.ActiveMask(), cellDz); err != nil {
		return nil, err
	}
	r.MinCellDz, r.MaxCellDz = floats.Min(cellDz), floats.Max(cellDz)
	log.WithFields(logrus.Fields{
		"nx": r.Nx, "ny": r.Ny, "nz": r.Nz,
		"thickness": geomName, "min_dz": r.MinCellDz, "max_dz": r.MaxCellDz,
		"hash": r.InputHash,
	}).Info("resgrid: loaded grid")

	// The interpolator reuses the thicknesses calculated above.
	c := &resgrid.ColumnInterpolator{
		Thickness:    resgrid.StaticThickness{},
		Background:   background,
		MaxDz:        maxDz,
		IgnoreActnum: ignoreActnum,
		Verbosity:    verbosity,
		Log:          log,
	}
	s, err := c.Interpolate(d.Extents, cellDz, d.ActiveMask(), prop.Elements)
	if err != nil {
		return nil, err
	}
	r.Triggered, r.Repaired, r.Unresolved = s.Triggered, s.Repaired, s.Unresolved
	r.OutputHash = hash.Floats(prop.Elements)

	log.WithFields(logrus.Fields{
		"property":   property,
		"triggered":  s.Triggered,
		"repaired":   s.Repaired,
		"unresolved": s.Unresolved,
		"hash":       r.OutputHash,
	}).Info("resgrid: filled background values")
	if s.Unresolved > 0 {
		log.Warnf("resgrid: %d background cells had no valid neighbor and were left unchanged", s.Unresolved)
	}

	log.WithField("file", outputFile).Info("resgrid: writing output grid")
	if err = writeGrid(outputFile, d); err != nil {
		return nil, err
	}
	if reportFile != "" {
		if err = writeReport(reportFile, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func readGrid(filename string) (*resgrid.GridData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("resgrid: problem opening input grid: %v", err)
	}
	defer f.Close()
	d, err := resgrid.ReadGridData(f)
	if err != nil {
		return nil, fmt.Errorf("resgrid: problem loading input grid: %v", err)
	}
	return d, nil
}

func writeGrid(filename string, d *resgrid.GridData) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("resgrid: problem creating output grid: %v", err)
	}
	if err = d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("resgrid: problem writing output grid: %v", err)
	}
	return f.Close()
}

func writeReport(filename string, r *Report) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("resgrid: problem creating report file: %v", err)
	}
	if err = toml.NewEncoder(f).Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("resgrid: problem writing report file: %v", err)
	}
	return f.Close()
}
