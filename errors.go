/*
 * errors.go, part of fracdim.
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

//This error scheme predates the "wrapping" error system of Go. The types here
//can still be recovered with errors.As, and are never wrapped inside this package.

// Errorer is the interface for errors that all types in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Errorer interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice resulting from the current call. An empty string just returns the current value.
	Critical() bool
}

// Error is the general error type of the package. It is used for problems that don't
// have a more specific type, such as invalid options.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return decorated(err.message, err.deco)
}

// Decorate adds new information to the error.
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) Critical() bool { return err.critical }

// InsufficientDataError is returned when a point cloud has fewer points than
// needed for a meaningful box-counting fit. No counting nor regression is
// attempted in that case.
type InsufficientDataError struct {
	Points   int //points available
	Required int //minimum number of points
	deco     []string
}

func (err InsufficientDataError) Error() string {
	return decorated(fmt.Sprintf("too few points: %d found, at least %d required", err.Points, err.Required), err.deco)
}

func (E InsufficientDataError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err InsufficientDataError) Critical() bool { return true }

// DegenerateFitError is returned when the log-log data has no variance in one of
// its variables, so the slope and the correlation coefficient are undefined.
type DegenerateFitError struct {
	Reason string
	deco   []string
}

func (err DegenerateFitError) Error() string {
	return decorated("degenerate fit: "+err.Reason, err.deco)
}

func (E DegenerateFitError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err DegenerateFitError) Critical() bool { return true }

func decorated(msg string, deco []string) string {
	if len(deco) == 0 {
		return msg
	}
	//deco goes from the innermost caller to the outermost, we print it the other way.
	rev := make([]string, 0, len(deco))
	for i := len(deco) - 1; i >= 0; i-- {
		rev = append(rev, deco[i])
	}
	return fmt.Sprintf("%s: %s", strings.Join(rev, ": "), msg)
}

// errDecorate is a helper function that decorates the error with the caller's name
// before returning it, if it implements Errorer. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case Error:
		e.deco = append(e.deco, caller)
		return e
	case InsufficientDataError:
		e.deco = append(e.deco, caller)
		return e
	case DegenerateFitError:
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}
