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
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/mrisc32/mc1/internal/vcpi"
)

// Format selects an output container for an assembled Result.
type Format int

const (
	// FormatBinary emits a raw little-endian 32-bit word stream, no header.
	FormatBinary Format = iota
	// FormatAssembly emits a ".data" section of GNU-assembler text.
	FormatAssembly
)

// FormatFromExt auto-detects the output format from output_file's
// extension, carried byte-for-byte from both Python originals'
// get_format: ".s" and ".inc" (case-insensitively) select FormatAssembly,
// anything else selects FormatBinary.
func FormatFromExt(ext string) Format {
	if strings.EqualFold(ext, ".s") || strings.EqualFold(ext, ".inc") {
		return FormatAssembly
	}
	return FormatBinary
}

// ParseFormat maps a CLI "-f/--format" value ("auto", "asm", "bin") to a
// Format, resolving "auto" against outputPath's extension.
func ParseFormat(format, outputPath string) (Format, error) {
	switch format {
	case "auto":
		return FormatFromExt(extOf(outputPath)), nil
	case "asm":
		return FormatAssembly, nil
	case "bin":
		return FormatBinary, nil
	default:
		return 0, errors.Errorf("unrecognized output format %q", format)
	}
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

// WriteBinary writes words as a contiguous little-endian 32-bit word
// stream, with no header of any kind.
func WriteBinary(w io.Writer, words []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, words); err != nil {
		return errors.Wrap(err, "write binary image")
	}
	return nil
}

// WriteAssembly emits words as a GNU-assembler ".data" section, declaring
// vcp_program (the word array), vcp_program_words (its length) and, for
// dialects that have one, vcp_program_start (the address named by the
// first ".org" in the source).
func WriteAssembly(w io.Writer, sourceName string, dialect Dialect, res Result) error {
	ew := vcpi.NewErrWriter(w)
	fmt.Fprintf(ew, "; Source file: %s\n", sourceName)
	fmt.Fprintf(ew, "; Assembled by %s\n\n", dialect.driverName())
	fmt.Fprintf(ew, "    .data\n\n")
	fmt.Fprintf(ew, "    .global vcp_program\n")
	if res.HasStart {
		fmt.Fprintf(ew, "    .global vcp_program_start\n")
	}
	fmt.Fprintf(ew, "    .global vcp_program_words\n\n")
	if res.HasStart {
		fmt.Fprintf(ew, "vcp_program_start = %#x\n", res.Start)
	}
	fmt.Fprintf(ew, "vcp_program_words = %d\n\n", len(res.Words))
	fmt.Fprintf(ew, "vcp_program:\n")
	for _, word := range res.Words {
		fmt.Fprintf(ew, "    .word   %#010x\n", word)
	}
	if ew.Err != nil {
		return errors.Wrap(ew.Err, "write assembly image")
	}
	return nil
}
