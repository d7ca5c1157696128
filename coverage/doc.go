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

/*
Package coverage summarizes per-base coverage files, as produced by
"bedtools coverage -d", into per-region depth histograms.

Each input row holds a chromosome, an interval start and end, the base offset
within the interval, and the read depth at that base. Consecutive rows sharing
a chromosome and interval start form one region. For every region the
summary reports how many bases fall into each depth bucket, the total number
of bases, the fraction of bases in each bucket, and the mean depth. The
buckets are defined by DepthRanges; the default "1,10,30,100" yields the
buckets 0, 1-9, 10-29, 30-99 and 100+.

The input is processed in one streaming pass and must be sorted by
chromosome, then interval start.
*/
package coverage
