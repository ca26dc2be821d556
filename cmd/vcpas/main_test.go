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
	"os"
	"path/filepath"
	"testing"

	"github.com/mrisc32/mc1/asm"
)

// TestAssembleFile_binAndAsmRoundTrip exercises the library entry point the
// command line driver calls, assembling one fixture program to both
// supported output formats and checking each against what the two emitters
// are specified to produce.
func TestAssembleFile_binAndAsmRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "fixture.vcp")
	src := ".org 0x40\nnop\nrts\n"
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	binPath := filepath.Join(dir, "fixture.bin")
	if _, err := asm.AssembleFile(srcPath, binPath, "bin", asm.DialectVCPAS); err != nil {
		t.Fatalf("assemble to bin: %v", err)
	}
	bin, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatal(err)
	}
	wantBin := []byte{0x00, 0x00, 0x00, 0x30, 0x00, 0x00, 0x00, 0x20}
	if string(bin) != string(wantBin) {
		t.Errorf("bin output: expected %#v, got %#v", wantBin, bin)
	}

	asmPath := filepath.Join(dir, "fixture.s")
	if _, err := asm.AssembleFile(srcPath, asmPath, "auto", asm.DialectVCPAS); err != nil {
		t.Fatalf("assemble to asm: %v", err)
	}
	out, err := os.ReadFile(asmPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "; Source file: " + srcPath + "\n" +
		"; Assembled by vcpas\n\n" +
		"    .data\n\n" +
		"    .global vcp_program\n" +
		"    .global vcp_program_start\n" +
		"    .global vcp_program_words\n\n" +
		"vcp_program_start = 0x40\n" +
		"vcp_program_words = 2\n\n" +
		"vcp_program:\n" +
		"    .word   0x30000000\n" +
		"    .word   0x20000000\n"
	if string(out) != want {
		t.Errorf("asm output:\nexpected:\n%s\ngot:\n%s", want, out)
	}
}

func TestAssembleFile_legacyOmitsStartSymbol(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "fixture.vcp")
	if err := os.WriteFile(srcPath, []byte(".org 0x40\nnop\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	asmPath := filepath.Join(dir, "fixture.s")
	if _, err := asm.AssembleFile(srcPath, asmPath, "asm", asm.DialectVCPLegacy); err != nil {
		t.Fatalf("assemble to asm: %v", err)
	}
	out, err := os.ReadFile(asmPath)
	if err != nil {
		t.Fatal(err)
	}
	if contains(string(out), "vcp_program_start") {
		t.Errorf("expected no vcp_program_start in legacy-dialect output, got:\n%s", out)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
