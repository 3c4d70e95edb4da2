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

package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/internal/cpuinfo"
)

// errMismatch is returned by compare when the two products differ. The
// report has already been printed, so main only sets the exit status.
var errMismatch = errors.New("sequential and parallel products differ")

type options struct {
	size     int
	threads  int
	seed     uint64
	strategy string
	json     bool
	quiet    bool
}

func (o *options) config() bench.Config {
	return bench.Config{
		N:           o.size,
		Parallelism: o.threads,
		Seed:        o.seed,
		Strategy:    bench.Strategy(o.strategy),
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "matbench",
		Short:         "Time sequential against parallel dense matrix multiplication",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the host header to stderr")

	root.AddCommand(
		newSequentialCmd(opts),
		newParallelCmd(opts),
		newCompareCmd(opts),
		newCPUInfoCmd(),
	)
	return root
}

func addSizeFlags(fs *pflag.FlagSet, opts *options) {
	fs.IntVarP(&opts.size, "size", "n", 512, "size N of the N x N input matrices")
	fs.Uint64Var(&opts.seed, "seed", 0, "input generator seed (0 draws one from process entropy)")
}

func addParallelFlags(fs *pflag.FlagSet, opts *options) {
	names := lo.Map(bench.Strategies(), func(s bench.Strategy, _ int) string { return string(s) })
	fs.IntVarP(&opts.threads, "threads", "p", runtime.GOMAXPROCS(0), "exact number of worker goroutines")
	fs.StringVar(&opts.strategy, "strategy", string(bench.StrategyPool), "fan-out strategy: "+strings.Join(names, ", "))
}

func printHeader(cmd *cobra.Command, opts *options) {
	if !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "host: %s\n", cpuinfo.Detect())
	}
}

func writeResult(w io.Writer, res bench.Result, asJSON bool) error {
	if asJSON {
		return res.WriteJSON(w)
	}
	return res.WriteDetail(w)
}

func newSequentialCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequential",
		Short: "Multiply on a single goroutine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printHeader(cmd, opts)
			res, err := bench.RunSequential(opts.config())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, opts.json)
		},
	}
	addSizeFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func newParallelCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parallel",
		Short: "Multiply one cell per work item across a fixed number of workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printHeader(cmd, opts)
			res, err := bench.RunParallel(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, opts.json)
		},
	}
	addSizeFlags(cmd.Flags(), opts)
	addParallelFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both drivers on the same inputs and check the products match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printHeader(cmd, opts)
			cmp, err := bench.Compare(cmd.Context(), opts.config())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				err = cmp.WriteJSON(out)
			} else {
				err = cmp.WriteText(out)
			}
			if err != nil {
				return err
			}
			if !cmp.Identical {
				return errMismatch
			}
			return nil
		},
	}
	addSizeFlags(cmd.Flags(), opts)
	addParallelFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the comparison as JSON")
	return cmd
}

func newCPUInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the host details reported with each benchmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cpuinfo.Detect().WriteDetail(cmd.OutOrStdout())
		},
	}
}
