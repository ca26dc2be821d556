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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Statement is one source line after comment stripping and command/operand
// splitting. ".include" and ".incbin" never appear here: the reader expands
// them in place.
type Statement struct {
	Line int
	Cmd  string
	Args []string
}

const maxIncludeDepth = 64

// readStatements reads name (via r for the top-level call, or by opening the
// file itself for a nested ".include"/".incbin") into a flat statement list,
// recursively expanding include directives relative to the including file's
// directory.
func readStatements(name string, r io.Reader, dialect Dialect) ([]Statement, []string, error) {
	return readStatementsDepth(name, r, dialect, 0, map[string]bool{})
}

func readStatementsDepth(name string, r io.Reader, dialect Dialect, depth int, visiting map[string]bool) ([]Statement, []string, error) {
	if depth > maxIncludeDepth {
		return nil, nil, errors.Errorf("%s: include nesting too deep (possible cycle)", name)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = name
	}
	if visiting[abs] {
		return nil, nil, errors.Errorf("%s: include cycle detected", name)
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	var stmts []Statement
	var warnings []string
	dir := filepath.Dir(name)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, args := splitStatement(line, dialect)

		switch cmd {
		case ".include":
			if len(args) != 1 {
				return nil, nil, errors.Errorf("%s:%d: .include requires exactly one argument", name, lineNo)
			}
			incPath := filepath.Join(dir, args[0])
			f, err := os.Open(incPath)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "%s:%d: open include %q", name, lineNo, incPath)
			}
			sub, subWarn, err := readStatementsDepth(incPath, f, dialect, depth+1, visiting)
			f.Close()
			if err != nil {
				return nil, nil, err
			}
			stmts = append(stmts, sub...)
			warnings = append(warnings, subWarn...)

		case ".incbin":
			if len(args) != 1 {
				return nil, nil, errors.Errorf("%s:%d: .incbin requires exactly one argument", name, lineNo)
			}
			incPath := filepath.Join(dir, args[0])
			data, err := os.ReadFile(incPath)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "%s:%d: open incbin %q", name, lineNo, incPath)
			}
			words, padded := bytesToWords(data)
			if padded {
				warnings = append(warnings, fmt.Sprintf("%s:%d: .incbin %q: %d trailing byte(s) zero-padded to a full word", name, lineNo, incPath, len(data)%4))
			}
			for _, w := range words {
				stmts = append(stmts, Statement{Line: lineNo, Cmd: ".word", Args: []string{fmt.Sprintf("%#x", w)}})
			}

		default:
			stmts = append(stmts, Statement{Line: lineNo, Cmd: cmd, Args: args})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", name)
	}
	return stmts, warnings, nil
}

// splitStatement extracts the command token and operand list from an
// already comment-stripped, trimmed source line.
//
// The command token is lowercased, except for label definitions (a token
// ending in ":"), whose identifier is kept exactly as written: labels are
// case-sensitive, so folding their case here would make "Target:" and a
// later reference to "Target" resolve to different names than the table
// they're stored under.
func splitStatement(line string, dialect Dialect) (cmd string, args []string) {
	i := strings.IndexAny(line, " \t")
	var rawCmd, operandStr string
	if i < 0 {
		rawCmd = line
	} else {
		rawCmd = line[:i]
		operandStr = strings.TrimSpace(line[i:])
	}

	if strings.HasSuffix(rawCmd, ":") {
		cmd = rawCmd
	} else {
		cmd = strings.ToLower(rawCmd)
	}

	if operandStr == "" {
		return cmd, nil
	}
	if dialect == DialectVCPLegacy {
		operandStr = stripWhitespace(operandStr)
	}
	parts := strings.Split(operandStr, ",")
	args = make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		args[i] = p
	}
	return cmd, args
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// bytesToWords groups data into little-endian 32-bit words, zero-padding a
// final partial word instead of silently dropping the trailing bytes.
func bytesToWords(data []byte) (words []uint32, padded bool) {
	full := len(data) / 4
	rem := len(data) % 4
	words = make([]uint32, 0, full+1)
	for i := 0; i < full; i++ {
		words = append(words, binary.LittleEndian.Uint32(data[i*4:i*4+4]))
	}
	if rem > 0 {
		var tail [4]byte
		copy(tail[:], data[full*4:])
		words = append(words, binary.LittleEndian.Uint32(tail[:]))
		padded = true
	}
	return words, padded
}
