/*
Copyright © 2019 the InMAP authors.
This file is part of resgrid.

resgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

resgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with resgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package resgridutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// checkInputFile makes sure that the input file is specified and exists,
// and expands any environment variables.
func checkInputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an input file configuration variable (for example: InputFile="grid.ncf")`)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("resgrid: problem with InputFile: %v", err)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="filled.ncf")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("resgrid: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkReportFile expands any environment variables in the report file
// path and makes sure its directory exists. An empty path is allowed.
func checkReportFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("resgrid: the ReportFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// floatOption returns the value of the named configuration option as a
// float64. Values set through environment variables or configuration
// files may be strings, so they are converted explicitly.
func floatOption(name string) (float64, error) {
	v, err := cast.ToFloat64E(Cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("resgrid: configuration variable %s must be a number: %v", name, err)
	}
	return v, nil
}

// intOption is like floatOption, for integers.
func intOption(name string) (int, error) {
	v, err := cast.ToIntE(Cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("resgrid: configuration variable %s must be an integer: %v", name, err)
	}
	return v, nil
}

// boolOption is like floatOption, for booleans.
func boolOption(name string) (bool, error) {
	v, err := cast.ToBoolE(Cfg.Get(name))
	if err != nil {
		return false, fmt.Errorf("resgrid: configuration variable %s must be true or false: %v", name, err)
	}
	return v, nil
}

// newLogger returns a logger writing to w. Verbosity levels above 2
// enable debug messages and levels below 1 only log warnings and errors.
func newLogger(w io.Writer, verbosity int) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	}
	switch {
	case verbosity > 2:
		log.Level = logrus.DebugLevel
	case verbosity < 1:
		log.Level = logrus.WarnLevel
	default:
		log.Level = logrus.InfoLevel
	}
	return log
}
