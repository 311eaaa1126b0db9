package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rmera/fracdim"
)

var rule = strings.Repeat("=", 50)

type reportConfig struct {
	json  bool
	table bool
}

// writeReport prints the human-readable report for res.
func writeReport(out io.Writer, path string, res *fracdim.FitResult, opts *fracdim.Options, withTable bool) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "FRACTAL RESULTS")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Structure: %s\n", path)
	fmt.Fprintf(&b, "3D fractal dimension: D = %.3f\n", res.D)
	fmt.Fprintf(&b, "Fit quality: R² = %.4f\n", res.R2)
	fmt.Fprintf(&b, "Interpretation: %s structure\n", res.Rigidity(opts))
	if res.PoorFit(opts) {
		first, last := res.Samples[0].Radius, res.Samples[len(res.Samples)-1].Radius
		fmt.Fprintf(&b, "Warning: R² is below %.2f. A single fractal dimension describes this structure poorly for box sizes %.2f to %.2f.\n",
			opts.MinR2, first, last)
	}
	fmt.Fprintln(&b, rule)
	if withTable {
		fmt.Fprintln(&b, samplesTable(res))
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// samplesTable renders the box count for each box size.
func samplesTable(res *fracdim.FitResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "r", "N(r)", "ln r", "ln N"})
	for i, s := range res.Samples {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.3f", s.Radius),
			s.Count,
			fmt.Sprintf("%.4f", res.LogR[i]),
			fmt.Sprintf("%.4f", res.LogN[i]),
		})
	}
	return t.Render()
}

// jsonReport is the document printed with --json.
type jsonReport struct {
	File string `json:"file"`
	*fracdim.FitResult
	Interpretation fracdim.Rigidity `json:"interpretation"`
	PoorFit        bool             `json:"poor_fit"`
}

func writeJSON(out io.Writer, path string, res *fracdim.FitResult, opts *fracdim.Options) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		File:           path,
		FitResult:      res,
		Interpretation: res.Rigidity(opts),
		PoorFit:        res.PoorFit(opts),
	})
}
