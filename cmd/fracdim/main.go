// Command fracdim estimates the 3D box-counting (fractal) dimension of a molecular
// structure and reports it, together with the quality of the fit and a rigid/plastic
// interpretation.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/rmera/fracdim"
)

const (
	defaultFile = "1BNA.pdb"

	// Flags.
	flagConfig         = "config"
	flagRMin           = "rmin"
	flagRMaxDivisor    = "rmax-divisor"
	flagScales         = "scales"
	flagMinPoints      = "min-points"
	flagRigidThreshold = "rigid-threshold"
	flagMinR2          = "min-r2"
	flagJSON           = "json"
	flagTable          = "table"
	flagDebug          = "debug"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fracdim:", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "fracdim",
		Usage:     "estimate the 3D fractal dimension of a molecular structure by box-counting",
		ArgsUsage: "[FILE (default " + defaultFile + ")]",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "YAML file with estimator options",
			},
			&cli.Float64Flag{
				Name:  flagRMin,
				Value: fracdim.DefaultRMin,
				Usage: "smallest box size, in the units of the coordinates",
			},
			&cli.Float64Flag{
				Name:  flagRMaxDivisor,
				Value: fracdim.DefaultRMaxDivisor,
				Usage: "the largest box size is the largest span of the structure divided by this",
			},
			&cli.IntFlag{
				Name:  flagScales,
				Value: fracdim.DefaultScales,
				Usage: "number of box sizes",
			},
			&cli.IntFlag{
				Name:  flagMinPoints,
				Value: fracdim.DefaultMinPoints,
				Usage: "minimum number of atoms for an estimation",
			},
			&cli.Float64Flag{
				Name:  flagRigidThreshold,
				Value: fracdim.DefaultRigidThreshold,
				Usage: "structures with a dimension below this are reported as rigid",
			},
			&cli.Float64Flag{
				Name:  flagMinR2,
				Value: fracdim.DefaultMinR2,
				Usage: "fits with an R² below this are reported as poor",
			},
			&cli.BoolFlag{
				Name:  flagJSON,
				Usage: "print the result as JSON",
			},
			&cli.BoolFlag{
				Name:    flagTable,
				Aliases: []string{"t"},
				Usage:   "also print the box counts for each box size",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c.Bool(flagDebug), errOut)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			opts, err := optionsFromContext(c)
			if err != nil {
				return err
			}
			path := defaultFile
			if c.NArg() > 0 {
				path = c.Args().First()
			}
			return run(c.App.Writer, path, opts, reportConfig{json: c.Bool(flagJSON), table: c.Bool(flagTable)}, logger)
		},
	}
}

// optionsFromContext builds the estimator options: defaults, then the
// config file, if any, then the flags explicitly given.
func optionsFromContext(c *cli.Context) (*fracdim.Options, error) {
	opts := fracdim.DefaultOptions()
	if p := c.String(flagConfig); p != "" {
		var err error
		opts, err = fracdim.LoadOptions(p)
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet(flagRMin) {
		opts.RMin = c.Float64(flagRMin)
	}
	if c.IsSet(flagRMaxDivisor) {
		opts.RMaxDivisor = c.Float64(flagRMaxDivisor)
	}
	if c.IsSet(flagScales) {
		opts.Scales = c.Int(flagScales)
	}
	if c.IsSet(flagMinPoints) {
		opts.MinPoints = c.Int(flagMinPoints)
	}
	if c.IsSet(flagRigidThreshold) {
		opts.RigidThreshold = c.Float64(flagRigidThreshold)
	}
	if c.IsSet(flagMinR2) {
		opts.MinR2 = c.Float64(flagMinR2)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// run reads the structure in path, estimates its dimension and writes the report to out.
// A missing file, too few atoms or an undefined fit are reported to the user and
// are not errors. Anything else is returned.
func run(out io.Writer, path string, opts *fracdim.Options, rc reportConfig, logger *zap.SugaredLogger) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugw("input file not found", "file", path)
			fmt.Fprintf(out, "Error: file %q not found.\n", path)
			fmt.Fprintln(out, "   Put it in the working directory, or give its path as an argument.")
			return nil
		}
		return err
	}
	coords, rep, err := fracdim.FileRead(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Debugw("structure read", "file", path, "format", fracdim.FormatFromName(path), "atoms", rep.Records, "skipped", rep.Skipped)
	if rep.Skipped > 0 {
		logger.Warnw("atom records with malformed coordinates were skipped", "file", path, "skipped", rep.Skipped)
	}

	res, err := fracdim.Estimate(coords, opts)
	var insufficient fracdim.InsufficientDataError
	var degenerate fracdim.DegenerateFitError
	switch {
	case errors.As(err, &insufficient):
		fmt.Fprintf(out, "Error: too few atoms found in %s (%d, at least %d needed).\n", path, insufficient.Points, insufficient.Required)
		return nil
	case errors.As(err, &degenerate):
		fmt.Fprintf(out, "Error: the fractal dimension of %s can't be determined: %s.\n", path, degenerate.Reason)
		return nil
	case err != nil:
		return err
	}
	logger.Debugw("fit done", "D", res.D, "r2", res.R2, "intercept", res.Intercept, "scales", len(res.Samples))
	if rc.json {
		return writeJSON(out, path, res, opts)
	}
	return writeReport(out, path, res, opts, rc.table)
}
