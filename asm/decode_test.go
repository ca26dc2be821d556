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

package asm_test

// This file has no public decoding feature: it only mirrors the newer
// dialect's mnemonic table, in reverse, to check that what the assembler encodes is what its
// own opcode tables say it should have encoded. There is no CLI flag or
// exported API for disassembly.

import (
	"strings"
	"testing"

	"github.com/mrisc32/mc1/asm"
)

// decodeVCPAS splits a newer-dialect instruction word back into a mnemonic
// and its raw field values, the inverse of vcpasOpcodes' encode functions.
func decodeVCPAS(word uint32) (mnemonic string, fields []uint32) {
	switch word >> 28 {
	case 0x0:
		return "jmp", []uint32{word & 0xFFFFFF}
	case 0x1:
		return "jsr", []uint32{word & 0xFFFFFF}
	case 0x2:
		return "rts", nil
	case 0x3:
		return "nop", nil
	case 0x4:
		return "waitx", []uint32{word & 0xFFFF}
	case 0x5:
		return "waity", []uint32{word & 0xFFFF}
	case 0x6:
		return "setpal", []uint32{(word >> 8) & 0xFF, word & 0xFF}
	case 0x8:
		return "setreg", []uint32{(word >> 24) & 0xF, word & 0xFFFFFF}
	default:
		return "?", nil
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	data := []struct {
		code     string
		mnemonic string
		fields   []uint32
	}{
		{"jmp 0x123\n", "jmp", []uint32{0x123}},
		{"jsr 0x456\n", "jsr", []uint32{0x456}},
		{"rts\n", "rts", nil},
		{"nop\n", "nop", nil},
		{"waitx 7\n", "waitx", []uint32{7}},
		{"waity 9\n", "waity", []uint32{9}},
		{"setreg 2, 0xabc\n", "setreg", []uint32{2, 0xabc}},
	}

	for _, d := range data {
		res, err := asm.Assemble("decode", strings.NewReader(d.code), asm.DialectVCPAS)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", d.code, err)
		}
		if len(res.Words) != 1 {
			t.Fatalf("%q: expected one word, got %#v", d.code, res.Words)
		}
		mnemonic, fields := decodeVCPAS(res.Words[0])
		if mnemonic != d.mnemonic {
			t.Errorf("%q: expected mnemonic %s, got %s", d.code, d.mnemonic, mnemonic)
		}
		if len(fields) != len(d.fields) {
			t.Fatalf("%q: expected fields %#v, got %#v", d.code, d.fields, fields)
		}
		for i, f := range d.fields {
			if fields[i] != f {
				t.Errorf("%q: field %d: expected %#x, got %#x", d.code, i, f, fields[i])
			}
		}
	}
}

// setpal's count field is biased by -1 at encode time; decoding must
// account for that to recover the operand the source actually wrote.
func TestDecodeRoundTrip_setpalBias(t *testing.T) {
	res, err := asm.Assemble("decode_setpal", strings.NewReader("setpal 5, 8\n"), asm.DialectVCPAS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mnemonic, fields := decodeVCPAS(res.Words[0])
	if mnemonic != "setpal" {
		t.Fatalf("expected setpal, got %s", mnemonic)
	}
	if fields[0] != 5 {
		t.Errorf("expected first=5, got %d", fields[0])
	}
	if fields[1]+1 != 8 {
		t.Errorf("expected decoded count+1=8, got %d", fields[1]+1)
	}
}
