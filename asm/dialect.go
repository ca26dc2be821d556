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

import "fmt"

// Dialect selects one of the two historical VCP opcode encodings. The two
// source tools share almost everything but the opcode table, the expression
// grammar and a couple of directives, so rather than duplicating the whole
// pipeline we parameterize it on a Dialect value.
type Dialect int

const (
	// DialectVCPAS is the newer "vcpas" dialect: 4-bit opcode in bits 31:28,
	// a full arithmetic expression grammar, and a biased setpal count.
	DialectVCPAS Dialect = iota
	// DialectVCPLegacy is the older "vcp-as" dialect: 2-bit opcode group in
	// bits 31:30, bare literal/identifier operands only, and an unbiased
	// setpal count.
	DialectVCPLegacy
)

func (d Dialect) String() string {
	switch d {
	case DialectVCPAS:
		return "vcpas"
	case DialectVCPLegacy:
		return "vcp-as"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// driverName is the name stamped into the assembly emitter's header comment.
func (d Dialect) driverName() string { return d.String() }

// fieldOverflow records an operand that did not fit in its encoded bit
// field. The value is still masked and emitted (matching the Python
// originals' silent-mask behavior), but the caller surfaces this as a
// non-fatal warning.
type fieldOverflow struct {
	field string
	value int64
	bits  uint
}

// field masks val to the low bits-wide field and reports whether it had to
// be truncated to fit.
func field(name string, val int64, bits uint) (uint32, *fieldOverflow) {
	mask := int64(1)<<bits - 1
	masked := val & mask
	if val < 0 || val > mask {
		return uint32(masked), &fieldOverflow{field: name, value: val, bits: bits}
	}
	return uint32(masked), nil
}

func appendOverflow(dst []fieldOverflow, o *fieldOverflow) []fieldOverflow {
	if o == nil {
		return dst
	}
	return append(dst, *o)
}

// opcodeDef describes one mnemonic: its operand count and how to encode its
// (already evaluated) integer operands into a 32-bit instruction word.
type opcodeDef struct {
	argc   int
	encode func(args []int64) (uint32, []fieldOverflow)
}

// vcpasOpcodes is the encoding table for DialectVCPAS (spec: 4-bit opcode in
// bits 31:28).
var vcpasOpcodes = map[string]opcodeDef{
	"jmp": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		addr, o := field("addr24", a[0], 24)
		return 0x00000000 | addr, appendOverflow(nil, o)
	}},
	"jsr": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		addr, o := field("addr24", a[0], 24)
		return 0x10000000 | addr, appendOverflow(nil, o)
	}},
	"rts": {argc: 0, encode: func([]int64) (uint32, []fieldOverflow) {
		return 0x20000000, nil
	}},
	"nop": {argc: 0, encode: func([]int64) (uint32, []fieldOverflow) {
		return 0x30000000, nil
	}},
	"waitx": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		n, o := field("n16", a[0], 16)
		return 0x40000000 | n, appendOverflow(nil, o)
	}},
	"waity": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		n, o := field("n16", a[0], 16)
		return 0x50000000 | n, appendOverflow(nil, o)
	}},
	"setpal": {argc: 2, encode: func(a []int64) (uint32, []fieldOverflow) {
		first, o1 := field("first8", a[0], 8)
		count, o2 := field("count8", a[1]-1, 8)
		w := appendOverflow(nil, o1)
		w = appendOverflow(w, o2)
		return 0x60000000 | (first << 8) | count, w
	}},
	"setreg": {argc: 2, encode: func(a []int64) (uint32, []fieldOverflow) {
		reg, o1 := field("reg4", a[0], 4)
		val, o2 := field("val24", a[1], 24)
		w := appendOverflow(nil, o1)
		w = appendOverflow(w, o2)
		return 0x80000000 | (reg << 24) | val, w
	}},
}

// vcpLegacyOpcodes is the encoding table for DialectVCPLegacy (spec: 2-bit
// opcode group in bits 31:30 plus sub-bits).
var vcpLegacyOpcodes = map[string]opcodeDef{
	"nop": {argc: 0, encode: func([]int64) (uint32, []fieldOverflow) {
		return 0x00000000, nil
	}},
	"jmp": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		addr, o := field("addr24", a[0], 24)
		return 0x01000000 | addr, appendOverflow(nil, o)
	}},
	"jsr": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		addr, o := field("addr24", a[0], 24)
		return 0x02000000 | addr, appendOverflow(nil, o)
	}},
	"rts": {argc: 0, encode: func([]int64) (uint32, []fieldOverflow) {
		return 0x03000000, nil
	}},
	"wait": {argc: 1, encode: func(a []int64) (uint32, []fieldOverflow) {
		n, o := field("n16", a[0], 16)
		return 0x40000000 | n, appendOverflow(nil, o)
	}},
	"setreg": {argc: 2, encode: func(a []int64) (uint32, []fieldOverflow) {
		reg, o1 := field("reg6", a[0], 6)
		val, o2 := field("val24", a[1], 24)
		w := appendOverflow(nil, o1)
		w = appendOverflow(w, o2)
		return 0x80000000 | (reg << 24) | val, w
	}},
	"setpal": {argc: 2, encode: func(a []int64) (uint32, []fieldOverflow) {
		first, o1 := field("first8", a[0], 8)
		count, o2 := field("count8", a[1], 8)
		w := appendOverflow(nil, o1)
		w = appendOverflow(w, o2)
		return 0xC0000000 | (first << 8) | count, w
	}},
}

// opcodeTable returns the mnemonic table for the given dialect.
func (d Dialect) opcodeTable() map[string]opcodeDef {
	if d == DialectVCPLegacy {
		return vcpLegacyOpcodes
	}
	return vcpasOpcodes
}

// supportsAdd reports whether the dialect has a ".add" directive.
func (d Dialect) supportsAdd() bool { return d == DialectVCPLegacy }

// hasStartSymbol reports whether the assembly emitter should export
// vcp_program_start for this dialect.
func (d Dialect) hasStartSymbol() bool { return d == DialectVCPAS }
