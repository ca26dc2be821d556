// This file is part of mc1 - https://github.com/mrisc32/mc1
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Assemble reads a VCP source from r (named name, for diagnostics and for
// resolving ".include"/".incbin" targets relative to its directory) and
// assembles it under the given dialect.
//
// Assemble is reentrant and keeps no process-global state: concurrent calls
// with distinct arguments do not interfere with one another, and a failure
// is always reported as a returned error (never a process exit or a panic
// that a caller must recover).
func Assemble(name string, r io.Reader, dialect Dialect) (Result, error) {
	stmts, warnings, err := readStatements(name, r, dialect)
	if err != nil {
		return Result{}, err
	}
	a := newAssembler(dialect, stmts)
	res, err := a.run()
	if err != nil {
		return Result{}, err
	}
	res.Warnings = append(warnings, res.Warnings...)
	return res, nil
}

// AssembleFile assembles sourcePath under dialect and writes the result to
// outputPath in the format named by formatTag ("auto", "asm" or "bin"; auto
// decides from outputPath's extension). This is the library entry point a
// batch driver or an embedding host calls directly: it never exits the
// process and never logs on its own, returning a Result (for its
// Warnings) and an error instead.
func AssembleFile(sourcePath, outputPath, formatTag string, dialect Dialect) (Result, error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return Result{}, errors.Wrapf(err, "open %s", sourcePath)
	}
	defer f.Close()

	res, err := Assemble(sourcePath, f, dialect)
	if err != nil {
		return Result{}, err
	}

	format, err := ParseFormat(formatTag, outputPath)
	if err != nil {
		return Result{}, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, errors.Wrapf(err, "create %s", outputPath)
	}
	defer out.Close()

	switch format {
	case FormatBinary:
		err = WriteBinary(out, res.Words)
	case FormatAssembly:
		err = WriteAssembly(out, sourcePath, dialect, res)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
