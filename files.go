/*
 * files.go, part of fracdim.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package fracdim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/fracdim/v3"
	"go.uber.org/multierr"
)

// ReadReport summarizes what a coordinate reader found in its input.
type ReadReport struct {
	Records int //atom records that contributed a point
	Skipped int //atom records dropped because of missing or malformed coordinates
}

// Format is a structure file format that can be read.
type Format int

const (
	PDB Format = iota
	XYZ
)

func (F Format) String() string {
	switch F {
	case PDB:
		return "pdb"
	case XYZ:
		return "xyz"
	}
	return fmt.Sprintf("Format(%d)", int(F))
}

//Pdb_read family

// Column ranges of the cartesian coordinates in ATOM/HETATM records.
const (
	pdbXStart = 30
	pdbYStart = 38
	pdbZStart = 46
	pdbZEnd   = 54
)

// pdbCoords parses the coordinates of a valid ATOM or HETATM line of a PDB file.
func pdbCoords(line string) ([3]float64, error) {
	var c [3]float64
	var err error
	if len(line) < pdbZEnd {
		return c, fmt.Errorf("line too short for coordinates: %d characters", len(line))
	}
	fields := [3]string{line[pdbXStart:pdbYStart], line[pdbYStart:pdbZStart], line[pdbZStart:pdbZEnd]}
	for i, f := range fields {
		//Here we shouldn't need TrimSpace, but I keep it just in case someone
		//doesn't use all the fields when writing a PDB
		c[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return c, err
		}
		if !finite(c[i]) {
			return c, fmt.Errorf("non-finite coordinate %q", f)
		}
	}
	return c, nil
}

// PDBRead reads the coordinates of all the ATOM and HETATM records from a PDB-formatted
// io.Reader. Records with malformed coordinates are skipped and counted in the returned
// ReadReport. If no record is read, the returned matrix is nil, and the error is nil.
func PDBRead(pdb io.Reader) (*v3.Matrix, ReadReport, error) {
	var rep ReadReport
	coords := make([]float64, 0, 3*1024)
	s := bufio.NewScanner(pdb)
	s.Buffer(make([]byte, 0, 1024), 1024*1024)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		c, err := pdbCoords(line)
		if err != nil {
			rep.Skipped++
			continue
		}
		coords = append(coords, c[0], c[1], c[2])
		rep.Records++
	}
	if err := s.Err(); err != nil {
		return nil, rep, Error{fmt.Sprintf("reading PDB input: %v", err), []string{"PDBRead"}, true}
	}
	return toMatrix(coords, rep, "PDBRead")
}

//End Pdb_read family

// XYZRead reads the coordinates of the first frame of an XYZ-formatted io.Reader.
// The first line must hold the number of atoms, the second is a comment, and each
// of the following lines holds an element symbol and the x, y and z coordinates.
// Atom lines that can't be parsed are skipped and counted in the ReadReport.
func XYZRead(xyz io.Reader) (*v3.Matrix, ReadReport, error) {
	var rep ReadReport
	s := bufio.NewScanner(xyz)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, rep, Error{fmt.Sprintf("reading XYZ input: %v", err), []string{"XYZRead"}, true}
		}
		//an empty file just has no atoms
		return nil, rep, nil
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(s.Text()))
	if err != nil || natoms < 0 {
		return nil, rep, Error{fmt.Sprintf("invalid atom count in XYZ header: %q", s.Text()), []string{"XYZRead"}, true}
	}
	s.Scan() //comment line
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms && s.Scan(); i++ {
		fields := strings.Fields(s.Text())
		if len(fields) < 4 {
			rep.Skipped++
			continue
		}
		var c [3]float64
		ok := true
		for j := range c {
			c[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil || !finite(c[j]) {
				ok = false
				break
			}
		}
		if !ok {
			rep.Skipped++
			continue
		}
		coords = append(coords, c[0], c[1], c[2])
		rep.Records++
	}
	if err := s.Err(); err != nil {
		return nil, rep, Error{fmt.Sprintf("reading XYZ input: %v", err), []string{"XYZRead"}, true}
	}
	return toMatrix(coords, rep, "XYZRead")
}

func toMatrix(coords []float64, rep ReadReport, caller string) (*v3.Matrix, ReadReport, error) {
	if len(coords) == 0 {
		return nil, rep, nil
	}
	M, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, rep, Error{err.Error(), []string{caller}, true}
	}
	return M, rep, nil
}

// FormatFromName guesses the format of a structure file from its name. Compression
// suffixes (.gz, .zst, .zstd) are ignored. Files ending in .xyz are XYZ, everything else
// is read as PDB.
func FormatFromName(name string) Format {
	base := strings.ToLower(filepath.Base(name))
	for _, suf := range []string{".gz", ".zst", ".zstd"} {
		base = strings.TrimSuffix(base, suf)
	}
	if filepath.Ext(base) == ".xyz" {
		return XYZ
	}
	return PDB
}

// FileRead reads the coordinates from the structure file name, guessing the format
// from the name. Files ending in .gz are gzip-decompressed, files ending in .zst or .zstd,
// zstd-decompressed. An error from opening the file is returned as is, so it can be checked
// with errors.Is (for instance, against fs.ErrNotExist).
func FileRead(name string) (*v3.Matrix, ReadReport, error) {
	return formatFileRead(name, FormatFromName(name))
}

// PDBFileRead reads the coordinates from a PDB file, possibly compressed.
func PDBFileRead(name string) (*v3.Matrix, ReadReport, error) {
	return formatFileRead(name, PDB)
}

// XYZFileRead reads the coordinates from an XYZ file, possibly compressed.
func XYZFileRead(name string) (*v3.Matrix, ReadReport, error) {
	return formatFileRead(name, XYZ)
}

func formatFileRead(name string, format Format) (M *v3.Matrix, rep ReadReport, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, rep, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	r, err := decompressor(f, name)
	if err != nil {
		return nil, rep, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	switch format {
	case XYZ:
		M, rep, err = XYZRead(r)
	default:
		M, rep, err = PDBRead(r)
	}
	return M, rep, errDecorate(err, "FileRead "+name)
}

// decompressor returns a reader that decompresses f according to the extension of name.
// Uncompressed files get a reader whose Close is a no-op, as f is closed by the caller.
func decompressor(f io.Reader, name string) (io.ReadCloser, error) {
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream %s: %w", name, err)
		}
		return r, nil
	case strings.HasSuffix(lname, ".zst"), strings.HasSuffix(lname, ".zstd"):
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream %s: %w", name, err)
		}
		return d.IOReadCloser(), nil
	}
	return io.NopCloser(f), nil
}
