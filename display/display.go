/*
Copyright © 2024 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package display contains sinks that render expressions produced by the
// editor.
package display

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Console renders every text on its own line into the given writer
type Console struct {
	out io.Writer
}

// NewConsole constructs console display writing into out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render writes the text verbatim followed by new line. Failures are only
// logged, rendering is fire-and-forget.
func (c *Console) Render(text string) {
	_, err := fmt.Fprintln(c.out, text)
	if err != nil {
		log.Error().Err(err).Msg("Unable to render text")
	}
}

// Recorder remembers all rendered texts
type Recorder struct {
	rendered []string
}

// Render stores the text
func (r *Recorder) Render(text string) {
	r.rendered = append(r.rendered, text)
}

// Rendered returns all texts in order they were rendered
func (r *Recorder) Rendered() []string {
	return r.rendered
}

// Last returns the most recently rendered text or empty string when nothing
// has been rendered yet
func (r *Recorder) Last() string {
	if len(r.rendered) == 0 {
		return ""
	}
	return r.rendered[len(r.rendered)-1]
}

// Tee renders every text into all given displays
type Tee []interface{ Render(string) }

// Render passes the text to all displays
func (t Tee) Render(text string) {
	for _, display := range t {
		display.Render(text)
	}
}
