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

// Command vcpas assembles an MC1 Video Control Program (VCP) source file
// into either a raw binary word stream or a GNU-assembler ".data" section.
//
// Usage:
//
//	vcpas -o output_file [-f format] [--legacy] [-g] VCP_FILE
//
// -o, --output filename
//
//	the output file (required).
//
// -f, --format auto|asm|bin
//
//	the output format. "auto" (the default) selects "asm" when the output
//	file's extension is ".s" or ".inc", and "bin" otherwise.
//
// --legacy
//
//	assemble using the older "vcp-as" dialect (bare literal/identifier
//	operands, unbiased setpal count) instead of the default "vcpas"
//	dialect (full expression grammar, biased setpal count).
//
// -g, --debug
//
//	print errors together with any recorded stack trace instead of the
//	error message alone.
package main
