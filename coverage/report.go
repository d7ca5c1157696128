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
	"io"

	"github.com/grailbio/base/tsv"
)

const (
	// Decimal places used when rendering bucket proportions and mean depth.
	proportionPrec = 3
	meanDepthPrec  = 1
)

// Reporter renders Groups as a tab-separated table: a header row, one row per
// group, and a final grand-total row.
type Reporter struct {
	tsvw   *tsv.Writer
	ranges DepthRanges
}

// NewReporter creates a Reporter writing to w. Output is buffered until
// Flush.
func NewReporter(w io.Writer, ranges DepthRanges) *Reporter {
	return &Reporter{tsvw: tsv.NewWriter(w), ranges: ranges}
}

// WriteHeader writes the column header row.
func (r *Reporter) WriteHeader() error {
	labels := r.ranges.Labels()
	r.tsvw.WriteString("Chr")
	r.tsvw.WriteString("Loc Beg")
	r.tsvw.WriteString("Loc End")
	for _, l := range labels {
		r.tsvw.WriteString(l)
	}
	r.tsvw.WriteString("Total Bases")
	for _, l := range labels {
		r.tsvw.WriteString(l)
	}
	r.tsvw.WriteString("Ave Cov")
	return r.tsvw.EndLine()
}

// WriteGroup writes one finalized group: its coordinates, the raw bucket
// totals, and the averages with fixed precision.
func (r *Reporter) WriteGroup(g *Group) error {
	r.tsvw.WriteString(g.Chrom)
	r.tsvw.WriteInt64(int64(g.Start))
	r.tsvw.WriteInt64(int64(g.End))
	for _, v := range g.Totals {
		r.tsvw.WriteInt64(v)
	}
	totalIdx := r.ranges.TotalIndex()
	for i := 0; i < totalIdx; i++ {
		r.tsvw.WriteFloat64(g.Averages[i], 'f', proportionPrec)
	}
	r.tsvw.WriteFloat64(g.Averages[totalIdx], 'f', meanDepthPrec)
	return r.tsvw.EndLine()
}

// WriteGrandTotals writes the trailing "Total:" row.
func (r *Reporter) WriteGrandTotals(totals []int64) error {
	r.tsvw.WriteString("")
	r.tsvw.WriteString("")
	r.tsvw.WriteString("Total:")
	for _, v := range totals {
		r.tsvw.WriteInt64(v)
	}
	return r.tsvw.EndLine()
}

// Flush writes any buffered rows to the underlying writer.
func (r *Reporter) Flush() error {
	return r.tsvw.Flush()
}
