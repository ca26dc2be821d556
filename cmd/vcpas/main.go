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

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/pkg/errors"

	"github.com/mrisc32/mc1/asm"
	"github.com/mrisc32/mc1/internal/vcpi"
)

var debug bool

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	outFileName := getopt.StringLong("output", 'o', "", "the output file")
	format := getopt.StringLong("format", 'f', "auto", "the output format (auto, asm or bin)")
	legacy := getopt.BoolLong("legacy", 0, "assemble with the older vcp-as dialect instead of vcpas")
	getopt.BoolVarLong(&debug, "debug", 'g', "enable debug diagnostics")
	help := getopt.BoolLong("help", 'h', "print this help message")

	getopt.SetParameters("VCP_FILE")
	getopt.Parse()

	if *help {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(2)
	}
	if *outFileName == "" {
		atExit(errors.New("-o/--output is required"))
	}

	logger := slog.New(vcpi.NewHandler(os.Stderr, slog.LevelWarn))

	dialect := asm.DialectVCPAS
	if *legacy {
		dialect = asm.DialectVCPLegacy
	}

	res, err := asm.AssembleFile(args[0], *outFileName, *format, dialect)
	if err != nil {
		atExit(err)
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
}
