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
	"io/ioutil"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrLength is returned when an input array does not have one
// element per grid cell.
var ErrLength = errors.New("resgrid: array length does not match grid")

// ColumnInterpolator replaces background values in thin grid cells with
// the value of the nearest thick, active cell in the same column.
type ColumnInterpolator struct {
	// Thickness computes the cell thicknesses from the grid geometry.
	Thickness ThicknessProvider

	// Background is the value marking cells that need to be filled.
	// A NaN Background matches NaN property values.
	Background float64

	// MaxDz is the thickness threshold. Cells with thickness <= MaxDz
	// are filled; cells thicker than MaxDz can donate their values.
	MaxDz float64

	// IgnoreActnum specifies whether inactive background cells should be
	// filled as well. Donor cells must always be active.
	IgnoreActnum bool

	// Verbosity controls the amount of logging: at 2 and above the start
	// and end of each call are logged, and above 2 every filled cell.
	Verbosity int

	// Log receives log messages. If it is nil, nothing is logged.
	Log logrus.FieldLogger
}

// Summary holds the outcome of an interpolation.
type Summary struct {
	// Triggered is the number of cells that needed to be filled.
	Triggered int

	// Repaired is the number of those cells that found a donor.
	Repaired int

	// Unresolved is the number of those cells that did not.
	Unresolved int
}

// Interpolate fills the background cells in prop in place. geometry is
// passed to c.Thickness, and actnum holds one value per cell where
// nonzero values mark active cells. Cells without a donor are left
// unchanged. prop is not modified if an error is returned.
func (c *ColumnInterpolator) Interpolate(ext Extents, geometry Geometry, actnum []int, prop []float64) (Summary, error) {
	log := c.logger()
	if c.Verbosity >= 2 {
		log.WithFields(logrus.Fields{
			"nx": ext.Nx, "ny": ext.Ny, "nz": ext.Nz,
			"background": c.Background, "maxdz": c.MaxDz,
		}).Info("resgrid: starting vertical background interpolation")
	}
	if err := ext.Validate(); err != nil {
		return Summary{}, err
	}
	n := ext.Len()
	if len(actnum) != n {
		return Summary{}, fmt.Errorf("%w: actnum has %d values but the grid has %d cells", ErrLength, len(actnum), n)
	}
	if len(prop) != n {
		return Summary{}, fmt.Errorf("%w: property has %d values but the grid has %d cells", ErrLength, len(prop), n)
	}
	if c.Thickness == nil {
		return Summary{}, errors.New("resgrid: ColumnInterpolator has no ThicknessProvider")
	}

	scratch := NewScratch(log)
	defer scratch.Release()

	dzBuf, err := Allocate2D[float64](ext.Nz, ext.Layer())
	if err != nil {
		return Summary{}, err
	}
	scratch.Add(dzBuf)
	dz := dzBuf.Data()
	if err := c.Thickness.Thickness(ext, geometry, actnum, dz); err != nil {
		return Summary{}, fmt.Errorf("resgrid: calculating cell thickness: %w", err)
	}

	isBackground := c.backgroundMatcher()
	var trigger func(ib int) bool
	if c.IgnoreActnum {
		trigger = func(ib int) bool { return isBackground(prop[ib]) && dz[ib] <= c.MaxDz }
	} else {
		trigger = func(ib int) bool {
			return actnum[ib] != 0 && isBackground(prop[ib]) && dz[ib] <= c.MaxDz
		}
	}
	donor := func(ib, self int) bool {
		return ib != self && actnum[ib] != 0 && dz[ib] > c.MaxDz
	}
	debug := c.Verbosity > 2

	var s Summary
	for i := 1; i <= ext.Nx; i++ {
		for j := 1; j <= ext.Ny; j++ {
			for k := 1; k <= ext.Nz; k++ {
				ib := ext.Index(i, j, k, ColumnMajor)
				if !trigger(ib) {
					continue
				}
				s.Triggered++
				if debug {
					log.WithFields(logrus.Fields{
						"i": i, "j": j, "k": k, "value": prop[ib], "dz": dz[ib],
					}).Debug("resgrid: background cell needs filling")
				}
				use, useK := -1, 0
				for r := 1; r < ext.Nz; r++ {
					ka, kb := k-r, k+r
					if ka < 1 {
						ka = 1
					}
					if kb > ext.Nz {
						kb = ext.Nz
					}
					if iba := ext.Index(i, j, ka, ColumnMajor); donor(iba, ib) {
						use, useK = iba, ka
						break
					}
					if ibb := ext.Index(i, j, kb, ColumnMajor); donor(ibb, ib) {
						use, useK = ibb, kb
						break
					}
					if ka == 1 && kb == ext.Nz {
						// Larger radii would test the same two cells again.
						break
					}
				}
				if use < 0 {
					s.Unresolved++
					if debug {
						log.WithFields(logrus.Fields{
							"i": i, "j": j, "k": k, "value": prop[ib], "dz": dz[ib], "actnum": actnum[ib],
						}).Debug("resgrid: no valid value found for cell")
					}
					continue
				}
				prop[ib] = prop[use]
				s.Repaired++
				if debug {
					log.WithFields(logrus.Fields{
						"i": i, "j": j, "k": k, "value": prop[ib], "from_k": useK,
					}).Debug("resgrid: cell inherits value")
				}
			}
		}
	}

	if c.Verbosity >= 2 {
		log.WithFields(logrus.Fields{
			"triggered":  s.Triggered,
			"repaired":   s.Repaired,
			"unresolved": s.Unresolved,
		}).Info("resgrid: finished vertical background interpolation")
	}
	return s, nil
}

// InterpolateTo is like Interpolate but reads the property from src and
// writes the result to dst. dst and src may be the same slice.
func (c *ColumnInterpolator) InterpolateTo(ext Extents, geometry Geometry, actnum []int, dst, src []float64) (Summary, error) {
	if len(dst) != len(src) {
		return Summary{}, fmt.Errorf("%w: output has %d values but input has %d", ErrLength, len(dst), len(src))
	}
	if len(src) > 0 && &dst[0] == &src[0] {
		return c.Interpolate(ext, geometry, actnum, dst)
	}
	tmp := make([]float64, len(src))
	copy(tmp, src)
	s, err := c.Interpolate(ext, geometry, actnum, tmp)
	if err != nil {
		return s, err
	}
	copy(dst, tmp)
	return s, nil
}

// InterpolateColumnBackground fills background values in prop in place.
// Cells whose value equals bgval and whose thickness, as calculated by tp
// from geometry, is at most dzmax take the value of the nearest cell in
// the same column that is active and thicker than dzmax. Cells above are
// preferred over cells below at the same distance. If ignoreActnum is
// false, only active background cells are filled.
func InterpolateColumnBackground(ext Extents, geometry Geometry, actnum []int, prop []float64,
	bgval, dzmax float64, ignoreActnum bool, verbosity int, tp ThicknessProvider, log logrus.FieldLogger) error {
	c := &ColumnInterpolator{
		Thickness:    tp,
		Background:   bgval,
		MaxDz:        dzmax,
		IgnoreActnum: ignoreActnum,
		Verbosity:    verbosity,
		Log:          log,
	}
	_, err := c.Interpolate(ext, geometry, actnum, prop)
	return err
}

func (c *ColumnInterpolator) backgroundMatcher() func(v float64) bool {
	bg := c.Background
	if math.IsNaN(bg) {
		return math.IsNaN
	}
	return func(v float64) bool { return v == bg }
}

func (c *ColumnInterpolator) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}
