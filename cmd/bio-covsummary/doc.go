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
bio-covsummary reads the per-base output of "bedtools coverage -d" and
reports, for every region, the number and fraction of bases in each depth
range together with the mean depth. The last row holds the totals over all
regions.

The input file name must end in "cov.out". The report is written next to it,
with "cov.out" replaced by "cov_by_region.txt".

Sample usage:
bio-covsummary \
    -covrange 1,10,25,50,99 \
    sample1.cov.out
*/
package main
