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
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// Record is one row of a per-base coverage file, as written by
// "bedtools coverage -d".
type Record struct {
	Chrom  string // Chromosome
	Start  int    // Interval start
	End    int    // Interval end
	Offset string // Base position relative to Start; not interpreted
	Depth  int    // Read depth at this base
}

// Scanner reads Records from a headerless tab-separated stream. It stops at
// the first malformed row.
//
//   sc := NewScanner(r)
//   for sc.Scan() {
//     rec := sc.Record()
//     ...
//   }
//   if err := sc.Err(); err != nil {
//     ...
//   }
type Scanner struct {
	r     *tsv.Reader
	rec   Record
	nLine int
	err   error
	done  bool
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	tr := tsv.NewReader(r)
	tr.LazyQuotes = true
	tr.FieldsPerRecord = 5
	return &Scanner{r: tr}
}

// Scan reads the next record. It returns false at EOF or on error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	s.nLine++
	if err := s.r.Read(&s.rec); err != nil {
		s.done = true
		if err != io.EOF {
			s.err = errors.E(err, fmt.Sprintf("coverage record at line %d", s.nLine))
		}
		return false
	}
	return true
}

// Record returns the record read by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first parse error encountered, or nil at a clean EOF.
func (s *Scanner) Err() error { return s.err }
