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

// Package cpuinfo reports the host details that matter when reading
// benchmark timings: platform, core counts and floating-point features.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Info describes the machine a benchmark runs on.
type Info struct {
	GOOS       string   `json:"goos"`
	GOARCH     string   `json:"goarch"`
	NumCPU     int      `json:"num_cpu"`
	GOMAXPROCS int      `json:"gomaxprocs"`
	Features   []string `json:"features"`
}

type feature struct {
	name    string
	present bool
}

// Detect reads the current host.
func Detect() Info {
	return Info{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   present(features(runtime.GOARCH)),
	}
}

func features(arch string) []feature {
	switch arch {
	case "amd64":
		return []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		}
	case "arm64":
		return []feature{
			{"fp", cpu.ARM64.HasFP},
			{"asimd", cpu.ARM64.HasASIMD},
			{"asimdhp", cpu.ARM64.HasASIMDHP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	}
	return nil
}

func present(fs []feature) []string {
	names := []string{}
	for _, f := range fs {
		if f.present {
			names = append(names, f.name)
		}
	}
	return names
}

// String formats the info as a single header line.
func (i Info) String() string {
	feats := "none"
	if len(i.Features) > 0 {
		feats = strings.Join(i.Features, " ")
	}
	return fmt.Sprintf("%s/%s cpus=%d gomaxprocs=%d features=[%s]", i.GOOS, i.GOARCH, i.NumCPU, i.GOMAXPROCS, feats)
}

// WriteDetail prints one line per field, in the style of a diagnostic dump.
func (i Info) WriteDetail(w io.Writer) error {
	_, err := fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\nGOMAXPROCS: %d\nFeatures: %s\n",
		i.GOOS, i.GOARCH, i.NumCPU, i.GOMAXPROCS, strings.Join(i.Features, ", "))
	return err
}
