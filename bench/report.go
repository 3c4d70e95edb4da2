// Copyright 2025 go-highway Authors
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

package bench

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits in counts, e.g. "Results len: 1,048,576".
var printer = message.NewPrinter(language.English)

// WriteText prints the result count and elapsed time.
func (r Result) WriteText(w io.Writer) error {
	_, err := printer.Fprintf(w, "Results len: %d\nTime: %s\n", r.Count, r.Elapsed.String())
	return err
}

// WriteDetail prints WriteText's lines followed by the run parameters.
func (r Result) WriteDetail(w io.Writer) error {
	if err := r.WriteText(w); err != nil {
		return err
	}
	if r.Mode == ModeParallel {
		if _, err := printer.Fprintf(w, "Workers: %d (%s)\n", r.Parallelism, r.Strategy); err != nil {
			return err
		}
	}
	// Seed stays ungrouped so it can be pasted back into --seed.
	_, err := fmt.Fprintf(w, "Seed: %d\nChecksum: %g\n", r.Seed, r.Checksum)
	return err
}

// WriteJSON writes r as one indented JSON object.
func (r Result) WriteJSON(w io.Writer) error {
	return writeJSON(w, r)
}

// WriteText prints both runs and the verdict.
func (c Comparison) WriteText(w io.Writer) error {
	if _, err := printer.Fprintf(w, "== sequential\n"); err != nil {
		return err
	}
	if err := c.Sequential.WriteText(w); err != nil {
		return err
	}
	if _, err := printer.Fprintf(w, "== parallel (%d workers, %s)\n", c.Parallel.Parallelism, c.Parallel.Strategy); err != nil {
		return err
	}
	if err := c.Parallel.WriteText(w); err != nil {
		return err
	}
	verdict := "identical"
	if !c.Identical {
		verdict = "MISMATCH"
	}
	_, err := printer.Fprintf(w, "Products: %s\nSpeedup: %.2fx\n", verdict, c.Speedup)
	return err
}

// WriteJSON writes c as one indented JSON object.
func (c Comparison) WriteJSON(w io.Writer) error {
	return writeJSON(w, c)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
