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
package coverage

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

const (
	// InputSuffix is the required suffix of input paths.
	InputSuffix = "cov.out"
	// OutputSuffix replaces InputSuffix to form the output path.
	OutputSuffix = "cov_by_region.txt"
)

// ErrInputSuffix is returned for input paths not ending in InputSuffix.
var ErrInputSuffix = errors.New("file extension must be ." + InputSuffix)

// Format is an output file format.
type Format int

const (
	// FormatTSV is uncompressed tab-separated text.
	FormatTSV Format = iota
	// FormatTSVGzip is gzip-compressed tab-separated text.
	FormatTSVGzip
	// FormatTSVBgzip is bgzf-compressed tab-separated text.
	FormatTSVBgzip
)

var formatNames = map[string]Format{
	"tsv":     FormatTSV,
	"tsv-gz":  FormatTSVGzip,
	"tsv-bgz": FormatTSVBgzip,
}

// ParseFormat converts a -format flag value into a Format.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[s]; ok {
		return f, nil
	}
	return FormatTSV, fmt.Errorf("unknown output format %q; 'tsv', 'tsv-gz' and 'tsv-bgz' supported", s)
}

// Opts configures SummarizeFile.
type Opts struct {
	// DepthRanges is a comma-separated list of strictly increasing depth
	// boundaries.
	DepthRanges string
	// Format is one of "tsv", "tsv-gz" and "tsv-bgz".
	Format string
	// Parallelism bounds the number of goroutines compressing bgzf blocks.
	// 0 means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts holds the default values of Opts.
var DefaultOpts = Opts{
	DepthRanges: DefaultDepthRanges,
	Format:      "tsv",
}

// Stats counts what a Summarize call processed.
type Stats struct {
	Records int
	Groups  int
}

// OutputPath derives the output path from inPath by replacing its trailing
// InputSuffix with OutputSuffix. Compressed formats get an additional ".gz".
func OutputPath(inPath string, format Format) (string, error) {
	if !strings.HasSuffix(inPath, InputSuffix) {
		return "", errors.E(errors.Invalid, ErrInputSuffix, inPath)
	}
	outPath := strings.TrimSuffix(inPath, InputSuffix) + OutputSuffix
	if format != FormatTSV {
		outPath += ".gz"
	}
	return outPath, nil
}

// Summarize reads coverage records from r and writes the per-region table to
// w. Records are streamed; only the group in progress is held in memory.
func Summarize(r io.Reader, w io.Writer, ranges DepthRanges) (Stats, error) {
	rep := NewReporter(w, ranges)
	if err := rep.WriteHeader(); err != nil {
		return Stats{}, err
	}
	agg := NewAggregator(ranges, rep.WriteGroup)
	sc := NewScanner(r)
	for sc.Scan() {
		if err := agg.Add(sc.Record()); err != nil {
			return Stats{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return Stats{}, err
	}
	if err := agg.Flush(); err != nil {
		return Stats{}, err
	}
	if err := rep.WriteGrandTotals(agg.GrandTotals()); err != nil {
		return Stats{}, err
	}
	stats := Stats{Records: agg.NumRecords(), Groups: agg.NumGroups()}
	return stats, rep.Flush()
}

// SummarizeFile summarizes the coverage file at inPath and writes the result
// next to it, at OutputPath(inPath). The input may be gzip or bgzf
// compressed. Options and the input suffix are validated before any file is
// opened.
func SummarizeFile(ctx context.Context, inPath string, opts *Opts) (err error) {
	ranges, err := ParseDepthRanges(opts.DepthRanges)
	if err != nil {
		return err
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	outPath, err := OutputPath(inPath, format)
	if err != nil {
		return err
	}
	log.Printf("Coverage ranges: %v", ranges)

	in, err := file.Open(ctx, inPath)
	if err != nil {
		return errors.E(err, "unable to open input file", inPath)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader, _ := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return errors.E(err, "unable to open output file", outPath)
	}
	defer file.CloseAndReport(ctx, out, &err)

	var (
		w       io.Writer = out.Writer(ctx)
		closeFn           = func() error { return nil }
	)
	switch format {
	case FormatTSVGzip:
		gz := gzip.NewWriter(w)
		w, closeFn = gz, gz.Close
	case FormatTSVBgzip:
		parallelism := opts.Parallelism
		if parallelism <= 0 {
			parallelism = runtime.NumCPU()
		}
		bgz := bgzf.NewWriter(w, parallelism)
		w, closeFn = bgz, bgz.Close
	}
	log.Debug.Printf("summarizing %s -> %s (format %s)", inPath, outPath, opts.Format)
	stats, err := Summarize(reader, w, ranges)
	if e := closeFn(); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return errors.E(err, inPath)
	}
	log.Printf("%s: %d bases in %d regions written to %s", inPath, stats.Records, stats.Groups, outPath)
	return nil
}
