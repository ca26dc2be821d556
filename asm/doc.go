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

// Package asm assembles MC1 Video Control Program (VCP) source into a
// stream of 32-bit instruction words, in either of the two historical VCP
// dialects (see Dialect).
//
// # Syntax
//
// A source line is an optional label, a command (a directive or a
// mnemonic), and a comma-separated operand list:
//
//	label:
//	    .org   0x100
//	    setreg 4, 0xff0000
//	loop:
//	    jmp    loop
//
// Everything from a ";" to the end of the line is a comment. Labels are
// case-sensitive identifiers ending in ":"; directives and mnemonics are
// not case-sensitive.
//
// # Directives
//
//	.org expr             set the program counter
//	.set name, expr       define or redefine a symbol (re-evaluated every pass)
//	.add name, expr       (DialectVCPLegacy only) add to a symbol's value
//	.word expr[, expr...] emit one word per operand
//	.lerp a, b, n         emit n words, linearly interpolating RGBA8888 channels
//	.rept n / .endr       repeat the enclosed statements n times; no nesting,
//	                      no labels inside the repeated block
//	.include "path"       inline another source file's statements
//	.incbin "path"        inline a binary file's contents as .word statements
//
// # Expressions
//
// DialectVCPAS operands are full arithmetic expressions: integer literals
// in decimal or with a 0x/0o/0b prefix, identifiers (labels or symbols),
// the operators + - * / & | ^ << >>, parentheses, unary minus, and the
// intrinsics sin(x)/cos(x). DialectVCPLegacy operands are a bare literal or
// a bare identifier only — no operators.
//
// # Two passes
//
// Labels are resolved in a first pass that does not evaluate opcode
// operands (forward references read as zero). A second pass evaluates
// every operand, with its own, freshly-reset symbol table, and emits the
// final word stream.
package asm
