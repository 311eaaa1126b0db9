/*
 * gonum.go, part of fracdim.
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

//All the *Vec functions operate on row vectors, i.e. one point in 3D space per row.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, backed by a row-major gonum Dense.
// Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space.
// A nil *Matrix is a valid, empty set of vectors.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// The data slice is used as the backing store, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Input slice is empty", []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors (rows) in the matrix.
// Returns 0 for a nil matrix.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Vec returns the slice with the i-th vector of F. It shares the
// storage of F, changes to one are reflected in the other.
func (F *Matrix) Vec(i int) []float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return F.RawRowView(i)
}

// Col returns a copy of the i-th column of F (all the x, y or z values).
// If dst is given and long enough, the values are stored there.
func (F *Matrix) Col(i int, dst ...[]float64) []float64 {
	if i < 0 || i > 2 {
		panic(ErrIndexOutOfRange)
	}
	var d []float64
	if len(dst) > 0 && len(dst[0]) >= F.NVecs() {
		d = dst[0][:F.NVecs()]
	}
	return mat.Col(d, i, F.Dense)
}

// Bounds returns the per-axis minimum and maximum over all the vectors in F.
// It panics if F is empty.
func (F *Matrix) Bounds() (min, max [3]float64) {
	if F.NVecs() == 0 {
		panic(ErrNotEnoughElements)
	}
	col := make([]float64, F.NVecs())
	for i := 0; i < 3; i++ {
		col = F.Col(i, col)
		min[i] = floats.Min(col)
		max[i] = floats.Max(col)
	}
	return min, max
}

// Extent returns the largest span among the three axes of F.
func (F *Matrix) Extent() float64 {
	min, max := F.Bounds()
	var ext float64
	for i := range min {
		if d := max[i] - min[i]; d > ext {
			ext = d
		}
	}
	return ext
}

// String returns a representation of the matrix with one vector per line.
func (F *Matrix) String() string {
	if F.NVecs() == 0 {
		return "[]"
	}
	return fmt.Sprintf("%v", mat.Formatted(F.Dense, mat.Squeeze()))
}

//Errors

// errorInt is the interface all errors in this package satisfy.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

// Error is the error type returned by v3 functions.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("%s", err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

var _ errorInt = Error{}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("fracdim/v3: A Matrix should have 3 columns")
	ErrNotEnoughElements = PanicMsg("fracdim/v3: not enough elements in Matrix")
	ErrIndexOutOfRange   = PanicMsg("fracdim/v3: index out of range")
)
