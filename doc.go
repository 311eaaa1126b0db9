/*
 * doc.go, part of fracdim.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package fracdim estimates the 3D box-counting (fractal) dimension of the point cloud
formed by the atoms of a molecular structure.



	**fracdim Capabilities**


    Reads atomic coordinates from PDB (ATOM and HETATM records) and XYZ files,
	plain or compressed with gzip or zstd. Malformed records are skipped, not fatal.

    Counts the boxes occupied by the point cloud for a set of geometrically spaced
	box sizes, from a fraction of the largest span of the structure down to a fixed floor.

    Fits log(N) against log(r) by least squares. The dimension D is minus the
	slope, and the quality of the fit is the squared Pearson correlation (R²).

    Classifies structures as rigid or plastic from their dimension.

    All the empirical constants (box size range, number of scales, minimum
	number of points, rigid/plastic threshold) are fields of Options, and can be
	read from a YAML file.

The estimation fails with an InsufficientDataError for clouds with too few points,
and with a DegenerateFitError when the fit is undefined (for instance, when all box
sizes give the same count). A failed estimation never returns a FitResult.

The cmd/fracdim program is a command-line driver for the package.
*/
package fracdim
