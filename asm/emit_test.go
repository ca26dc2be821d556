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

import (
	"testing"

	"github.com/mrisc32/mc1/asm"
)

func TestFormatFromExt(t *testing.T) {
	data := []struct {
		ext  string
		want asm.Format
	}{
		{".s", asm.FormatAssembly},
		{".S", asm.FormatAssembly},
		{".inc", asm.FormatAssembly},
		{".INC", asm.FormatAssembly},
		{".iNC", asm.FormatAssembly},
		{".InC", asm.FormatAssembly},
		{".bin", asm.FormatBinary},
		{"", asm.FormatBinary},
		{".incx", asm.FormatBinary},
	}
	for _, d := range data {
		if got := asm.FormatFromExt(d.ext); got != d.want {
			t.Errorf("FormatFromExt(%q) = %v, want %v", d.ext, got, d.want)
		}
	}
}
