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

// Group summarizes a maximal run of consecutive records sharing the same
// chromosome and interval start.
type Group struct {
	Chrom string
	Start int
	// End is taken from the record that opened the group. Later records with
	// a different end do not change it.
	End int

	// Totals[i] for i <= MaxIndex is the number of bases in depth bucket i;
	// Totals[TotalIndex] is the number of bases in the group.
	Totals []int64
	// Averages[i] for i <= MaxIndex is Totals[i]/Totals[TotalIndex];
	// Averages[TotalIndex] is the mean depth of the group.
	Averages []float64
}

// Aggregator groups an ordered stream of Records by (Chrom, Start) and emits
// one finalized Group per run. The input must be sorted by chromosome and
// start; this is not checked, and a (Chrom, Start) pair that reappears after
// a different one starts a new Group.
//
// An Aggregator is not thread-safe.
type Aggregator struct {
	ranges DepthRanges
	emit   func(*Group) error

	cur      *Group
	sumDepth int64
	grand    []int64

	nGroups  int
	nRecords int
}

// NewAggregator creates an Aggregator that classifies depths using ranges and
// passes every finalized Group to emit. The Group must not be modified by
// emit. An error from emit aborts the aggregation.
func NewAggregator(ranges DepthRanges, emit func(*Group) error) *Aggregator {
	return &Aggregator{
		ranges: ranges,
		emit:   emit,
		grand:  make([]int64, ranges.NumCols()),
	}
}

// Add accumulates one record, first flushing the group in progress if r
// belongs to a different (Chrom, Start).
func (a *Aggregator) Add(r Record) error {
	if a.cur != nil && (r.Chrom != a.cur.Chrom || r.Start != a.cur.Start) {
		if err := a.Flush(); err != nil {
			return err
		}
	}
	if a.cur == nil {
		a.cur = &Group{
			Chrom:  r.Chrom,
			Start:  r.Start,
			End:    r.End,
			Totals: make([]int64, a.ranges.NumCols()),
		}
		a.sumDepth = 0
	}
	a.cur.Totals[a.ranges.Classify(r.Depth)]++
	a.cur.Totals[a.ranges.TotalIndex()]++
	a.sumDepth += int64(r.Depth)
	a.nRecords++
	return nil
}

// Flush finalizes and emits the group in progress, if any. It is called
// once more at the end of the stream.
func (a *Aggregator) Flush() error {
	g := a.cur
	if g == nil {
		return nil
	}
	a.cur = nil
	g.Averages = calcAverages(g.Totals, a.sumDepth)
	for i, v := range g.Totals {
		a.grand[i] += v
	}
	a.nGroups++
	return a.emit(g)
}

// GrandTotals returns the element-wise sum of the Totals of every group
// emitted so far.
func (a *Aggregator) GrandTotals() []int64 { return a.grand }

// NumGroups returns the number of groups emitted so far.
func (a *Aggregator) NumGroups() int { return a.nGroups }

// NumRecords returns the number of records added so far.
func (a *Aggregator) NumRecords() int { return a.nRecords }

// calcAverages computes the averages vector of a group: the fraction of bases
// in each bucket, followed by the mean depth.
func calcAverages(totals []int64, sumDepth int64) []float64 {
	averages := make([]float64, len(totals))
	totalIdx := len(totals) - 1
	n := totals[totalIdx]
	if n == 0 {
		return averages
	}
	for i := 0; i < totalIdx; i++ {
		averages[i] = float64(totals[i]) / float64(n)
	}
	averages[totalIdx] = float64(sumDepth) / float64(n)
	return averages
}
