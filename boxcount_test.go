/*
 * boxcount_test.go, part of fracdim.
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
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	v3 "github.com/rmera/fracdim/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomCloud returns n points produced by gen, using a random source with the given seed.
func randomCloud(Te *testing.T, n int, seed int64, gen func(r *rand.Rand) (x, y, z float64)) *v3.Matrix {
	Te.Helper()
	r := rand.New(rand.NewSource(seed))
	data := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		x, y, z := gen(r)
		data = append(data, x, y, z)
	}
	M, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return M
}

func cube(side float64) func(r *rand.Rand) (float64, float64, float64) {
	return func(r *rand.Rand) (float64, float64, float64) {
		return side * r.Float64(), side * r.Float64(), side * r.Float64()
	}
}

func plane(side float64) func(r *rand.Rand) (float64, float64, float64) {
	return func(r *rand.Rand) (float64, float64, float64) {
		return side * r.Float64(), side * r.Float64(), 0
	}
}

func segment(length float64) func(r *rand.Rand) (float64, float64, float64) {
	return func(r *rand.Rand) (float64, float64, float64) {
		return length * r.Float64(), 0, 0
	}
}

// counts must not decrease as the box sizes in samples decrease.
func assertMonotone(Te *testing.T, samples []BoxCountSample) {
	Te.Helper()
	for i := 1; i < len(samples); i++ {
		require.Less(Te, samples[i].Radius, samples[i-1].Radius)
		assert.GreaterOrEqual(Te, samples[i].Count, samples[i-1].Count, "radius %g vs %g", samples[i].Radius, samples[i-1].Radius)
	}
}

func TestEstimateCube(Te *testing.T) {
	//The cloud needs to be dense enough to fill the smallest boxes,
	//otherwise the counts saturate at the number of points.
	coords := randomCloud(Te, 50000, 1, cube(40))
	res, err := Estimate(coords, nil)
	require.NoError(Te, err)
	Te.Logf("cube: D=%.4f R2=%.4f", res.D, res.R2)
	assert.InDelta(Te, 3.0, res.D, 0.2)
	assert.GreaterOrEqual(Te, res.D, 2.7)
	assert.LessOrEqual(Te, res.D, 3.0)
	assert.Greater(Te, res.R2, 0.95)
	assert.Len(Te, res.Samples, DefaultScales)
	assert.Len(Te, res.LogR, DefaultScales)
	assert.Len(Te, res.LogN, DefaultScales)
	assertMonotone(Te, res.Samples)
	assert.Equal(Te, Plastic, res.Rigidity(nil))
	assert.False(Te, res.PoorFit(nil))
}

func TestEstimatePlane(Te *testing.T) {
	coords := randomCloud(Te, 20000, 2, plane(40))
	res, err := Estimate(coords, nil)
	require.NoError(Te, err)
	Te.Logf("plane: D=%.4f R2=%.4f", res.D, res.R2)
	assert.InDelta(Te, 2.0, res.D, 0.15)
	assert.Greater(Te, res.R2, 0.95)
	assertMonotone(Te, res.Samples)
	assert.Equal(Te, Rigid, res.Rigidity(nil))
}

func TestEstimateLine(Te *testing.T) {
	coords := randomCloud(Te, 10000, 3, segment(100))
	res, err := Estimate(coords, nil)
	require.NoError(Te, err)
	Te.Logf("line: D=%.4f R2=%.4f", res.D, res.R2)
	assert.InDelta(Te, 1.0, res.D, 0.1)
	assert.Greater(Te, res.R2, 0.95)
	assertMonotone(Te, res.Samples)
}

// A sparse cloud can't fill the smallest boxes, so the counts level off
// near the number of points and the slope is underestimated.
func TestEstimateSparseCube(Te *testing.T) {
	coords := randomCloud(Te, 1000, 4, cube(40))
	res, err := Estimate(coords, nil)
	require.NoError(Te, err)
	Te.Logf("sparse cube: D=%.4f R2=%.4f", res.D, res.R2)
	assert.Less(Te, res.D, 2.7)
	assert.Greater(Te, res.D, 1.0)
	assert.GreaterOrEqual(Te, res.R2, 0.0)
	assert.LessOrEqual(Te, res.R2, 1.0)
	assert.LessOrEqual(Te, res.Samples[len(res.Samples)-1].Count, 1000)
}

func TestR2Range(Te *testing.T) {
	gens := map[string]func(r *rand.Rand) (float64, float64, float64){
		"cube":  cube(25),
		"plane": plane(60),
		"line":  segment(300),
		"blob": func(r *rand.Rand) (float64, float64, float64) {
			return 10 * r.NormFloat64(), 10 * r.NormFloat64(), 3 * r.NormFloat64()
		},
	}
	for name, gen := range gens {
		for _, n := range []int{10, 50, 500, 3000} {
			coords := randomCloud(Te, n, int64(n), gen)
			res, err := Estimate(coords, nil)
			if err != nil {
				var d DegenerateFitError
				require.True(Te, errors.As(err, &d), "%s %d: %v", name, n, err)
				continue
			}
			assert.GreaterOrEqual(Te, res.R2, 0.0, "%s %d", name, n)
			assert.LessOrEqual(Te, res.R2, 1.0, "%s %d", name, n)
			assert.False(Te, math.IsNaN(res.D), "%s %d", name, n)
		}
	}
}

func TestBoxCountNested(Te *testing.T) {
	//For box sizes r and 2r the grids are nested, so counts can't increase
	//with the box size, regardless of how sparse the cloud is.
	coords := randomCloud(Te, 2000, 5, cube(40))
	origin, _ := coords.Bounds()
	prev := coords.NVecs() + 1
	for r := 0.25; r <= 64; r *= 2 {
		c := BoxCount(coords, origin, r)
		assert.LessOrEqual(Te, c, prev, "r=%g", r)
		assert.Greater(Te, c, 0)
		prev = c
	}
	//Big enough boxes hold everything
	assert.Equal(Te, 1, BoxCount(coords, origin, 64))
	assert.Panics(Te, func() { BoxCount(coords, origin, 0) })
}

func TestBoxCountDistinct(Te *testing.T) {
	//several points in the same box count once
	data := []float64{
		0, 0, 0,
		0.5, 0.5, 0.5,
		0.9, 0.1, 0.3,
		1.5, 0, 0,
		-1.5, 0, 0,
	}
	coords, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	//boxes: (0,0,0) x3, (1,0,0), (-2,0,0)
	assert.Equal(Te, 3, BoxCount(coords, [3]float64{0, 0, 0}, 1))
	origin, _ := coords.Bounds()
	//from the minimum: x offsets 1.5, 2, 2.4, 3, 0 -> boxes 1, 2, 2, 3, 0
	assert.Equal(Te, 4, BoxCount(coords, origin, 1))
	assert.Equal(Te, 0, BoxCount(nil, origin, 1))
}

func TestScales(Te *testing.T) {
	s, err := Scales(40, nil)
	require.NoError(Te, err)
	require.Len(Te, s, DefaultScales)
	assert.Equal(Te, 10.0, s[0])
	assert.Equal(Te, DefaultRMin, s[len(s)-1])
	ratio := s[1] / s[0]
	for i := 1; i < len(s); i++ {
		assert.Less(Te, s[i], s[i-1])
		assert.InEpsilon(Te, ratio, s[i]/s[i-1], 1e-9)
	}

	//Small structures give increasing box sizes, which is still a valid fit.
	opts := DefaultOptions()
	opts.Scales = 4
	s, err = Scales(4, opts)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, s[1], s[2], 2}, s)
	assert.Greater(Te, s[1], 1.0)

	var d DegenerateFitError
	_, err = Scales(0, nil)
	assert.True(Te, errors.As(err, &d))
	_, err = Scales(8, nil) //extent/4 == rmin
	assert.True(Te, errors.As(err, &d))
	_, err = Scales(math.Inf(1), nil)
	assert.True(Te, errors.As(err, &d))
}

func TestInsufficientData(Te *testing.T) {
	coords := randomCloud(Te, 9, 6, cube(40))
	res, err := Estimate(coords, nil)
	assert.Nil(Te, res)
	var ins InsufficientDataError
	require.True(Te, errors.As(err, &ins))
	assert.Equal(Te, 9, ins.Points)
	assert.Equal(Te, DefaultMinPoints, ins.Required)
	assert.True(Te, ins.Critical())
	assert.Contains(Te, err.Error(), "Estimate")

	//An empty cloud, as returned by the readers when there are no atoms.
	res, err = Estimate(nil, nil)
	assert.Nil(Te, res)
	require.True(Te, errors.As(err, &ins))
	assert.Equal(Te, 0, ins.Points)

	//The threshold is configurable
	opts := DefaultOptions()
	opts.MinPoints = 5
	_, err = Estimate(coords, opts)
	assert.False(Te, errors.As(err, &ins))
}

func TestDegenerateIdenticalPoints(Te *testing.T) {
	data := make([]float64, 0, 60)
	for i := 0; i < 20; i++ {
		data = append(data, 1, 2, 3)
	}
	coords, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	res, err := Estimate(coords, nil)
	assert.Nil(Te, res)
	var d DegenerateFitError
	require.True(Te, errors.As(err, &d))
	assert.Contains(Te, err.Error(), "degenerate")
}

func TestDegenerateConstantCounts(Te *testing.T) {
	//Points 100 units apart, with all the boxes smaller than that:
	//each point always sits alone in its box.
	data := make([]float64, 0, 30)
	for i := 0; i < 10; i++ {
		data = append(data, 100*float64(i), 0, 0)
	}
	coords, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	opts := DefaultOptions()
	opts.RMaxDivisor = 20 //largest box: 900/20=45
	res, err := Estimate(coords, opts)
	assert.Nil(Te, res)
	var d DegenerateFitError
	require.True(Te, errors.As(err, &d))
	assert.Contains(Te, d.Reason, "same count (10)")
}

func TestEstimateInvalidOptions(Te *testing.T) {
	coords := randomCloud(Te, 100, 7, cube(40))
	opts := DefaultOptions()
	opts.Scales = 1
	_, err := Estimate(coords, opts)
	var e Error
	require.True(Te, errors.As(err, &e))
	assert.Contains(Te, err.Error(), "Estimate")
	assert.Contains(Te, err.Error(), "scales")
}

func TestEstimateDeterministic(Te *testing.T) {
	coords := randomCloud(Te, 5000, 8, cube(40))
	a, err := Estimate(coords, nil)
	require.NoError(Te, err)
	b, err := Estimate(coords, nil)
	require.NoError(Te, err)
	if diff := cmp.Diff(a, b); diff != "" {
		Te.Errorf("two estimations of the same cloud differ (-first +second):\n%s", diff)
	}
	//The input is not modified
	c := randomCloud(Te, 5000, 8, cube(40))
	assert.True(Te, cmp.Equal(c.RawMatrix().Data, coords.RawMatrix().Data))
}

func TestEstimateCustomScales(Te *testing.T) {
	coords := randomCloud(Te, 20000, 9, plane(40))
	opts := DefaultOptions()
	opts.Scales = 8
	opts.RMin = 2.5
	res, err := Estimate(coords, opts)
	require.NoError(Te, err)
	require.Len(Te, res.Samples, 8)
	assert.Equal(Te, 2.5, res.Samples[7].Radius)
	for i, s := range res.Samples {
		assert.Equal(Te, math.Log(s.Radius), res.LogR[i])
		assert.Equal(Te, math.Log(float64(s.Count)), res.LogN[i])
	}
}
