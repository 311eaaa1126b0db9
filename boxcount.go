/*
 * boxcount.go, part of fracdim.
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

package fracdim

import (
	"fmt"
	"math"

	v3 "github.com/rmera/fracdim/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// cell identifies a box of the grid by its integer index along each axis.
type cell struct {
	i, j, k int64
}

// Estimate obtains the box-counting dimension of the points in coords. The number
// of occupied boxes N is counted for opts.Scales box sizes r, and the dimension is
// minus the slope of the least-squares line log(N) = slope*log(r) + intercept.
// The R² of the result is the squared Pearson correlation between log(r) and log(N).
// If opts is nil, the default options are used.
// It returns an InsufficientDataError if coords has fewer than opts.MinPoints points
// and a DegenerateFitError if the fit is undefined.
func Estimate(coords *v3.Matrix, opts *Options) (*FitResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errDecorate(err, "Estimate")
	}
	n := coords.NVecs()
	if n < opts.MinPoints {
		return nil, InsufficientDataError{Points: n, Required: opts.MinPoints, deco: []string{"Estimate"}}
	}
	origin, _ := coords.Bounds()
	radii, err := Scales(coords.Extent(), opts)
	if err != nil {
		return nil, errDecorate(err, "Estimate")
	}
	ret := &FitResult{
		Samples: make([]BoxCountSample, len(radii)),
		LogR:    make([]float64, len(radii)),
		LogN:    make([]float64, len(radii)),
	}
	constant := true
	for i, r := range radii {
		c := BoxCount(coords, origin, r)
		ret.Samples[i] = BoxCountSample{Radius: r, Count: c}
		ret.LogR[i] = math.Log(r)
		ret.LogN[i] = math.Log(float64(c))
		if c != ret.Samples[0].Count {
			constant = false
		}
	}
	if constant {
		return nil, DegenerateFitError{Reason: fmt.Sprintf("all %d box sizes give the same count (%d)", len(radii), ret.Samples[0].Count), deco: []string{"Estimate"}}
	}
	intercept, slope := stat.LinearRegression(ret.LogR, ret.LogN, nil, false)
	corr := stat.Correlation(ret.LogR, ret.LogN, nil)
	if !finite(slope) || !finite(intercept) || !finite(corr) {
		return nil, DegenerateFitError{Reason: "non-finite regression coefficients", deco: []string{"Estimate"}}
	}
	ret.D = -slope
	ret.Intercept = intercept
	//rounding can push |corr| a hair above 1
	ret.R2 = math.Min(corr*corr, 1)
	return ret, nil
}

// Scales returns opts.Scales box sizes, geometrically spaced between extent/opts.RMaxDivisor
// and opts.RMin, both included, in that order. When the largest box size is bigger
// than RMin (the usual case) the sizes are decreasing.
// It returns a DegenerateFitError if extent is not positive or if both ends of the range
// are equal, as the logarithms of the sizes would have no variance.
func Scales(extent float64, opts *Options) ([]float64, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errDecorate(err, "Scales")
	}
	rmax := extent / opts.RMaxDivisor
	if !(rmax > 0) || math.IsInf(rmax, 0) {
		return nil, DegenerateFitError{Reason: fmt.Sprintf("invalid largest box size %g for extent %g", rmax, extent), deco: []string{"Scales"}}
	}
	if rmax == opts.RMin {
		return nil, DegenerateFitError{Reason: fmt.Sprintf("largest and smallest box sizes are both %g", rmax), deco: []string{"Scales"}}
	}
	s := floats.LogSpan(make([]float64, opts.Scales), rmax, opts.RMin)
	//exp(log(x)) is not always x
	s[0] = rmax
	s[len(s)-1] = opts.RMin
	return s, nil
}

// BoxCount returns the number of distinct boxes of side r occupied by the points in coords,
// for a grid with a corner at origin. A point p falls in the box with indexes
// floor((p[i]-origin[i])/r) for each axis i. r must be positive.
func BoxCount(coords *v3.Matrix, origin [3]float64, r float64) int {
	if !(r > 0) {
		panic(fmt.Sprintf("fracdim.BoxCount: box size must be positive, got %g", r))
	}
	n := coords.NVecs()
	boxes := make(map[cell]struct{}, n)
	for i := 0; i < n; i++ {
		p := coords.Vec(i)
		boxes[cell{
			i: int64(math.Floor((p[0] - origin[0]) / r)),
			j: int64(math.Floor((p[1] - origin[1]) / r)),
			k: int64(math.Floor((p[2] - origin[2]) / r)),
		}] = struct{}{}
	}
	return len(boxes)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
