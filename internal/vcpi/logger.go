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

package vcpi

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a minimal slog.Handler that formats each record as a single
// timestamped, level-tagged line. The assembler library itself never logs
// (it is a pure function with no process-global state); only the cmd/vcpas
// driver owns a logger built on this handler.
type Handler struct {
	out io.Writer
	h   slog.Handler
	mu  *sync.Mutex
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.Value.String())
		return true
	})
	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write([]byte(line))
	return err
}

// NewHandler returns a Handler writing to out at the given minimum level.
func NewHandler(out io.Writer, level slog.Level) *Handler {
	return &Handler{
		out: out,
		h:   slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}),
		mu:  &sync.Mutex{},
	}
}
