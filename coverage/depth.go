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
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultDepthRanges is the depth-boundary list used when none is given on
// the command line.
const DefaultDepthRanges = "1,10,30,100"

// DepthRanges is a strictly increasing list of positive depth boundaries.
// K boundaries define K+1 buckets:
//
//   bucket 0:         depth < B[0]
//   bucket i, 0<i<K:  B[i-1] <= depth < B[i]
//   bucket K:         depth >= B[K-1]
//
// Totals and averages vectors indexed by bucket have two more slots than
// there are boundaries; see TotalIndex.
type DepthRanges []int

// ParseDepthRanges parses a comma-separated boundary list such as
// "1,10,30,100".
func ParseDepthRanges(s string) (DepthRanges, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Errorf("empty depth range list")
	}
	parts := strings.Split(s, ",")
	ranges := make(DepthRanges, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "depth range %q", s)
		}
		if v <= 0 {
			return nil, errors.Errorf("depth range %q: boundary %d is not positive", s, v)
		}
		if i > 0 && v <= ranges[i-1] {
			return nil, errors.Errorf("depth range %q: boundaries must be strictly increasing (%d follows %d)", s, v, ranges[i-1])
		}
		ranges[i] = v
	}
	return ranges, nil
}

// MaxIndex is the index of the overflow ("max+") bucket.
func (d DepthRanges) MaxIndex() int { return len(d) }

// TotalIndex is the index of the total-bases slot in a totals vector, and of
// the mean-depth slot in an averages vector.
func (d DepthRanges) TotalIndex() int { return len(d) + 1 }

// NumCols is the length of totals and averages vectors.
func (d DepthRanges) NumCols() int { return len(d) + 2 }

// Classify returns the bucket that depth falls into: the index of the first
// boundary strictly greater than depth, or MaxIndex if there is none.
func (d DepthRanges) Classify(depth int) int {
	for i, b := range d {
		if depth < b {
			return i
		}
	}
	return len(d)
}

// Labels returns the column label of each bucket, MaxIndex()+1 entries.
// A bucket bounded above by 1 holds only zero-depth bases and is labeled
// "0s".
func (d DepthRanges) Labels() []string {
	labels := make([]string, 0, len(d)+1)
	for _, b := range d {
		if b == 1 {
			labels = append(labels, "0s")
		} else {
			labels = append(labels, "< "+strconv.Itoa(b))
		}
	}
	if len(d) > 0 {
		labels = append(labels, strconv.Itoa(d[len(d)-1])+"+")
	}
	return labels
}

func (d DepthRanges) String() string {
	strs := make([]string, len(d))
	for i, b := range d {
		strs[i] = strconv.Itoa(b)
	}
	return strings.Join(strs, ",")
}
