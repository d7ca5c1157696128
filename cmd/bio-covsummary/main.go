// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/covsummary/coverage"
	"v.io/x/lib/cmdline"
)

func newCmdCovSummary() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bio-covsummary",
		Short:    "Summarize per-base coverage depth by region",
		ArgsName: "path",
		ArgsLong: "path is a bedtools per-base coverage file; its name must end in " + coverage.InputSuffix + ".",
		LookPath: false,
	}
	opts := coverage.DefaultOpts
	cmd.Flags.StringVar(&opts.DepthRanges, "covrange", opts.DepthRanges, "Comma separated list for coverage range")
	cmd.Flags.StringVar(&opts.DepthRanges, "c", opts.DepthRanges, "Shorthand for -covrange")
	cmd.Flags.StringVar(&opts.Format, "format", opts.Format, "Output format; 'tsv', 'tsv-gz' and 'tsv-bgz' supported")
	cmd.Flags.IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "Maximum number of goroutines compressing tsv-bgz output; 0 = runtime.NumCPU()")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("incorrect number of arguments: want one path, got %v", argv)
		}
		if _, err := coverage.OutputPath(argv[0], coverage.FormatTSV); err != nil {
			return env.UsageErrorf("%v", err)
		}
		if err := coverage.SummarizeFile(context.Background(), argv[0], &opts); err != nil {
			return err
		}
		log.Debug.Printf("exiting")
		return nil
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdCovSummary())
}
