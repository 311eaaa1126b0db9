/*
 * options.go, part of fracdim.
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
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for the estimator. They are empirical, calibrated for
// coordinates in angstroms and for structures of the size of a short
// DNA duplex or a small protein. Inputs with very different scales
// need different values.
const (
	DefaultRMaxDivisor    = 4.0
	DefaultRMin           = 2.0
	DefaultScales         = 15
	DefaultMinPoints      = 10
	DefaultRigidThreshold = 2.15
	DefaultMinR2          = 0.95
)

// Options holds the tunable parameters of the box-counting estimator.
type Options struct {
	//The largest box size is the largest span of the cloud divided by this.
	RMaxDivisor float64 `yaml:"rmax_divisor"`
	//Smallest box size, in the units of the coordinates.
	RMin float64 `yaml:"rmin"`
	//Number of box sizes to sample.
	Scales int `yaml:"scales"`
	//Point clouds with fewer points are rejected.
	MinPoints int `yaml:"min_points"`
	//Dimensions below this are classified as rigid, the rest as plastic.
	RigidThreshold float64 `yaml:"rigid_threshold"`
	//Fits with R² below this are flagged as poor.
	MinR2 float64 `yaml:"min_r2"`
}

// DefaultOptions returns a new Options with the default values.
func DefaultOptions() *Options {
	return &Options{
		RMaxDivisor:    DefaultRMaxDivisor,
		RMin:           DefaultRMin,
		Scales:         DefaultScales,
		MinPoints:      DefaultMinPoints,
		RigidThreshold: DefaultRigidThreshold,
		MinR2:          DefaultMinR2,
	}
}

// Validate returns an error if any of the options can't be used by
// the estimator.
func (O *Options) Validate() error {
	var msg string
	switch {
	case !(O.RMaxDivisor > 0):
		msg = fmt.Sprintf("rmax_divisor must be positive, got %g", O.RMaxDivisor)
	case !(O.RMin > 0):
		msg = fmt.Sprintf("rmin must be positive, got %g", O.RMin)
	case O.Scales < 2:
		msg = fmt.Sprintf("at least 2 scales are needed for a fit, got %d", O.Scales)
	case O.MinPoints < 2:
		msg = fmt.Sprintf("min_points must be at least 2, got %d", O.MinPoints)
	case O.MinR2 < 0 || O.MinR2 > 1:
		msg = fmt.Sprintf("min_r2 must be in [0,1], got %g", O.MinR2)
	default:
		return nil
	}
	return Error{msg, []string{"Options.Validate"}, true}
}

// LoadOptions reads a YAML file with estimator options. Fields missing from the file
// keep their default values. The returned options are validated.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}
	O := DefaultOptions()
	if err := yaml.Unmarshal(data, O); err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}
	if err := O.Validate(); err != nil {
		return nil, errDecorate(err, "LoadOptions")
	}
	return O, nil
}
