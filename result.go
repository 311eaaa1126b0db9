/*
 * result.go, part of fracdim.
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
	"strings"
)

// BoxCountSample is the number of occupied boxes for one box size.
type BoxCountSample struct {
	Radius float64 `json:"radius"`
	Count  int     `json:"count"`
}

// FitResult is the outcome of a box-counting estimation.
// LogR and LogN are the natural logarithms of the box sizes and counts
// that entered the fit, in the same order as Samples.
type FitResult struct {
	D         float64          `json:"dimension"`
	R2        float64          `json:"r2"`
	Intercept float64          `json:"intercept"`
	Samples   []BoxCountSample `json:"samples"`
	LogR      []float64        `json:"log_r"`
	LogN      []float64        `json:"log_n"`
}

// Rigidity returns the rigid/plastic classification of the structure, using
// the threshold in opts (or the default one, if opts is nil).
func (F *FitResult) Rigidity(opts *Options) Rigidity {
	t := DefaultRigidThreshold
	if opts != nil {
		t = opts.RigidThreshold
	}
	return Classify(F.D, t)
}

// PoorFit returns true if the R² of the fit is below the threshold in opts
// (or the default one, if opts is nil). A poor fit means the structure is not
// well described by a single dimension over the sampled box sizes.
func (F *FitResult) PoorFit(opts *Options) bool {
	t := DefaultMinR2
	if opts != nil {
		t = opts.MinR2
	}
	return F.R2 < t
}

func (F *FitResult) String() string {
	ret := fmt.Sprintf("D: %.3f, R2: %.4f\n", F.D, F.R2)
	r := make([]string, 0, len(F.Samples))
	n := make([]string, 0, len(F.Samples))
	for _, v := range F.Samples {
		r = append(r, fmt.Sprintf("%8.3f", v.Radius))
		n = append(n, fmt.Sprintf("%8d", v.Count))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(r, " "), strings.Join(n, " "))
}

// Rigidity is the qualitative interpretation of a fractal dimension. Higher
// dimensions are associated with more flexible structures.
type Rigidity int

const (
	Rigid Rigidity = iota
	Plastic
)

func (R Rigidity) String() string {
	switch R {
	case Rigid:
		return "rigid"
	case Plastic:
		return "plastic"
	}
	return fmt.Sprintf("Rigidity(%d)", int(R))
}

// MarshalText allows Rigidity to be used as a JSON string.
func (R Rigidity) MarshalText() ([]byte, error) {
	return []byte(R.String()), nil
}

// Classify returns Rigid if d is below threshold, Plastic otherwise.
func Classify(d, threshold float64) Rigidity {
	if d < threshold {
		return Rigid
	}
	return Plastic
}
