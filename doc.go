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

// Package resgrid repairs properties of structured 3D reservoir grids.
//
// Grid cells are addressed with 1-based (i, j, k) coordinates and stored in
// flat arrays with i varying fastest and k slowest (see Extents.Index).
// ColumnInterpolator fills background values in thin cells with the value of
// the nearest thick, active cell in the same vertical column.
package resgrid

// Version gives the version number.
const Version = "0.1.0"
