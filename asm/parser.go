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
	"fmt"
	"math"
	"strings"
)

// maxErrors bounds how many fatal diagnostics a single run accumulates
// before giving up, so one badly mangled file doesn't produce an unbounded
// error list.
const maxErrors = 20

// ErrAsm is the accumulated list of fatal, line-tagged diagnostics produced
// by a single assembly run. Parsing does not stop at the first error: it
// keeps going (up to maxErrors) so a caller sees as many independent
// mistakes as possible in one pass.
type ErrAsm []*asmError

type asmError struct {
	line int
	msg  string
}

func (e *asmError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("line %d: %s", e.line, e.msg)
	}
	return e.msg
}

func (e ErrAsm) Error() string {
	lines := make([]string, len(e))
	for i, er := range e {
		lines[i] = er.Error()
	}
	return strings.Join(lines, "\n")
}

// label tracks one label's defined-ness and address. A label table entry is
// created for every label name up front (pass 1 needs to know every name
// that exists before it can resolve forward references), and its address is
// filled in the first time pass 1 walks past the definition.
type label struct {
	defined bool
	address int
	defLine int
}

type assembler struct {
	dialect Dialect
	stmts   []Statement
	labels  map[string]*label
	errs    ErrAsm
	warn    []string
}

func newAssembler(dialect Dialect, stmts []Statement) *assembler {
	return &assembler{
		dialect: dialect,
		stmts:   stmts,
		labels:  map[string]*label{},
	}
}

func (a *assembler) errorf(line int, format string, args ...interface{}) {
	if len(a.errs) >= maxErrors {
		return
	}
	a.errs = append(a.errs, &asmError{line: line, msg: fmt.Sprintf(format, args...)})
}

func (a *assembler) aborted() bool { return len(a.errs) >= maxErrors }

func labelName(cmd string) (string, bool) {
	if strings.HasSuffix(cmd, ":") {
		return strings.TrimSuffix(cmd, ":"), true
	}
	return "", false
}

// Result is the outcome of a successful assembly run.
type Result struct {
	Words    []uint32
	Start    int
	HasStart bool
	Warnings []string
}

// run performs both passes and returns either a Result or the accumulated
// ErrAsm (never a mix of the two: a failed run returns no words).
func (a *assembler) run() (Result, error) {
	// Pre-seed the label table with every name that will ever be defined,
	// so pass 1 can resolve forward references to "not yet known" instead
	// of "unknown identifier".
	for _, st := range a.stmts {
		if name, ok := labelName(st.Cmd); ok {
			if _, exists := a.labels[name]; !exists {
				a.labels[name] = &label{}
			}
		}
	}

	var words []uint32
	start := 0
	hasStart := false

	// Statement indices rejected in pass 1 for depending on a forward
	// label in a position (.rept/.lerp count) that pass 1 cannot resolve.
	// Once rejected, pass 2 must not re-validate the statement: the label
	// is resolved by then, so the count that looked like "depends on a
	// forward label" in pass 1 is just some concrete, possibly-also-invalid
	// number in pass 2, and re-checking it would report a second, unrelated
	// diagnostic for what is really one defect.
	forwardRejected := map[int]bool{}

	for passNo := 1; passNo <= 2; passNo++ {
		firstPass := passNo == 1
		symbols := map[string]int64{}
		ctx := &evalContext{labels: a.labels, symbols: symbols}
		pc := 0
		reptStart := -1
		reptCount := 0
		inRept := false
		// Rejected nested .rept statements still waiting for their .endr,
		// so that .endr is not taken as the end of the enclosing block.
		nestedRejected := 0

		if !firstPass {
			words = nil
		}

		// Structural/semantic diagnostics are only reported once, on the
		// final pass: pass 1 exists solely to resolve label addresses, and
		// repeating every syntax check on both passes would otherwise
		// report the same source defect twice.
		report := func(line int, format string, args ...interface{}) {
			if !firstPass {
				a.errorf(line, format, args...)
			}
		}

		i := 0
		for i < len(a.stmts) {
			if a.aborted() {
				break
			}
			st := a.stmts[i]
			ctx.sawForwardLabel = false

			switch {
			case strings.HasSuffix(st.Cmd, ":"):
				name := strings.TrimSuffix(st.Cmd, ":")
				if inRept {
					report(st.Line, "label definitions are not allowed inside .rept")
					break
				}
				if firstPass {
					l := a.labels[name]
					if l.defined {
						a.errorf(st.Line, "duplicate label %q (previously defined on line %d)", name, l.defLine)
						break
					}
					l.defined = true
					l.address = pc
					l.defLine = st.Line
				}

			case st.Cmd == ".org":
				if len(st.Args) != 1 {
					report(st.Line, ".org requires exactly one operand")
					break
				}
				v, err := evalExpr(a.dialect, st.Args[0], ctx)
				if err != nil {
					report(st.Line, "%s", err)
					break
				}
				pc = int(v)
				if !hasStart {
					hasStart = true
					start = pc
				}

			case st.Cmd == ".set":
				if len(st.Args) != 2 {
					report(st.Line, ".set requires exactly two operands")
					break
				}
				v, err := evalExpr(a.dialect, st.Args[1], ctx)
				if err != nil {
					report(st.Line, "%s", err)
					break
				}
				symbols[st.Args[0]] = v

			case st.Cmd == ".add" && a.dialect.supportsAdd():
				if len(st.Args) != 2 {
					report(st.Line, ".add requires exactly two operands")
					break
				}
				v, err := evalExpr(a.dialect, st.Args[1], ctx)
				if err != nil {
					report(st.Line, "%s", err)
					break
				}
				symbols[st.Args[0]] += v

			case st.Cmd == ".word":
				for _, arg := range st.Args {
					if !firstPass {
						v, err := evalExpr(a.dialect, arg, ctx)
						if err != nil {
							report(st.Line, "%s", err)
							continue
						}
						words = append(words, uint32(v))
					}
					pc++
				}

			case st.Cmd == ".lerp":
				if forwardRejected[i] {
					break
				}
				if len(st.Args) != 3 {
					report(st.Line, ".lerp requires exactly three operands")
					break
				}
				first, err1 := evalExpr(a.dialect, st.Args[0], ctx)
				last, err2 := evalExpr(a.dialect, st.Args[1], ctx)
				count, err3 := evalExpr(a.dialect, st.Args[2], ctx)
				if err1 != nil {
					report(st.Line, "%s", err1)
					break
				}
				if err2 != nil {
					report(st.Line, "%s", err2)
					break
				}
				if err3 != nil {
					report(st.Line, "%s", err3)
					break
				}
				// Checked directly against a.errorf, not report: this must
				// reject in pass 1, before pass 1's pc falls out of step
				// with pass 2's (a forward label resolves between passes,
				// so .lerp's word count - and every later pc/label address -
				// would otherwise differ silently between the two passes).
				// Checked before the count<1 check below, since a
				// not-yet-resolved forward label evaluates to 0 and would
				// otherwise be misreported as an invalid literal count.
				if firstPass && ctx.sawForwardLabel {
					a.errorf(st.Line, ".lerp count must not depend on a forward-referenced label")
					forwardRejected[i] = true
					break
				}
				if count < 1 {
					report(st.Line, "invalid .lerp count: %d", count)
					break
				}
				out := lerp(uint32(first), uint32(last), int(count))
				if !firstPass {
					words = append(words, out...)
				}
				pc += len(out)

			case st.Cmd == ".rept":
				if inRept {
					report(st.Line, "nested .rept statements are not allowed")
					nestedRejected++
					break
				}
				if forwardRejected[i] {
					// Already fatally rejected in pass 1; still pair up
					// with .endr below so pass 2 doesn't also report it as
					// orphaned.
					reptStart = i
					reptCount = 1
					inRept = true
					break
				}
				if len(st.Args) != 1 {
					report(st.Line, ".rept requires exactly one operand")
					break
				}
				count, err := evalExpr(a.dialect, st.Args[0], ctx)
				if err != nil {
					report(st.Line, "%s", err)
					break
				}
				// Checked directly against a.errorf, not report: see the
				// matching comment on the .lerp case above.
				if firstPass && ctx.sawForwardLabel {
					a.errorf(st.Line, ".rept count must not depend on a forward-referenced label")
					forwardRejected[i] = true
					reptStart = i
					reptCount = 1
					inRept = true
					break
				}
				if count < 1 {
					report(st.Line, "invalid .rept count: %d", count)
					count = 1 // still pair up with .endr, so it isn't also reported as orphaned
				}
				reptStart = i
				reptCount = int(count)
				inRept = true

			case st.Cmd == ".endr":
				if nestedRejected > 0 {
					nestedRejected--
					break
				}
				if !inRept {
					report(st.Line, ".endr without a matching .rept")
					break
				}
				reptCount--
				if reptCount > 0 {
					i = reptStart
				} else {
					inRept = false
					reptStart = -1
				}

			case strings.HasPrefix(st.Cmd, "."):
				report(st.Line, "unrecognized directive %q", st.Cmd)

			default:
				def, ok := a.dialect.opcodeTable()[st.Cmd]
				if !ok {
					report(st.Line, "unrecognized command %q", st.Cmd)
					break
				}
				if len(st.Args) != def.argc {
					report(st.Line, "%s expects %d operand(s), got %d", st.Cmd, def.argc, len(st.Args))
					break
				}
				if !firstPass {
					ints := make([]int64, def.argc)
					failed := false
					for j, arg := range st.Args {
						v, err := evalExpr(a.dialect, arg, ctx)
						if err != nil {
							report(st.Line, "%s", err)
							failed = true
							continue
						}
						ints[j] = v
					}
					if !failed {
						word, overflows := def.encode(ints)
						words = append(words, word)
						for _, o := range overflows {
							a.warn = append(a.warn, fmt.Sprintf("line %d: %s operand %d does not fit in %d bits, masked to %#x", st.Line, o.field, o.value, o.bits, uint64(o.value)&(1<<o.bits-1)))
						}
					}
				}
				pc++
			}
			i++
		}
		if a.aborted() {
			break
		}
	}

	if len(a.errs) > 0 {
		return Result{}, a.errs
	}
	return Result{Words: words, Start: start, HasStart: hasStart && a.dialect.hasStartSymbol(), Warnings: a.warn}, nil
}

// lerp produces count RGBA8888 words, linearly interpolating each of the
// four 8-bit channels independently between first and last, rounding to
// nearest with halves rounded to even.
func lerp(first, last uint32, count int) []uint32 {
	if count == 1 {
		return []uint32{first}
	}
	out := make([]uint32, count)
	for k := 0; k < count; k++ {
		w := float64(k) / float64(count-1)
		var word uint32
		for _, shift := range []uint{24, 16, 8, 0} {
			a := float64((first >> shift) & 0xff)
			b := float64((last >> shift) & 0xff)
			channel := uint32(roundHalfToEven(a+(b-a)*w)) & 0xff
			word |= channel << shift
		}
		out[k] = word
	}
	return out
}

func roundHalfToEven(v float64) int64 {
	return int64(math.RoundToEven(v))
}
