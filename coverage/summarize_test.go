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
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	threeRecordInput = "chr1\t10\t20\t1\t5\n" +
		"chr1\t10\t20\t2\t15\n" +
		"chr1\t11\t21\t1\t2\n"

	threeRecordOutput = defaultHeader +
		"chr1\t10\t20\t0\t1\t1\t0\t0\t2\t0.000\t0.500\t0.500\t0.000\t0.000\t10.0\n" +
		"chr1\t11\t21\t0\t1\t0\t0\t0\t1\t0.000\t1.000\t0.000\t0.000\t0.000\t2.0\n" +
		"\t\tTotal:\t0\t2\t1\t0\t0\t3\n"
)

func TestSummarize(t *testing.T) {
	var out bytes.Buffer
	stats, err := Summarize(strings.NewReader(threeRecordInput), &out, defaultRanges)
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 3, Groups: 2}, stats)
	assert.Equal(t, threeRecordOutput, out.String())
}

func TestSummarizeSingleRecord(t *testing.T) {
	var out bytes.Buffer
	_, err := Summarize(strings.NewReader("chr2\t100\t200\t1\t42\n"), &out, defaultRanges)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chr2\t100\t200\t0\t0\t0\t1\t0\t1\t0.000\t0.000\t0.000\t1.000\t0.000\t42.0", lines[1])
	assert.Equal(t, "\t\tTotal:\t0\t0\t0\t1\t0\t1", lines[2])
}

func TestSummarizeEmpty(t *testing.T) {
	var out bytes.Buffer
	stats, err := Summarize(strings.NewReader(""), &out, defaultRanges)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Equal(t, defaultHeader+"\t\tTotal:\t0\t0\t0\t0\t0\t0\n", out.String())
}

func TestSummarizeParseError(t *testing.T) {
	for _, in := range []string{
		"chr1\t10\t20\t1\t5\nchr1\tten\t20\t2\t5\n",
		"chr1\t10\t20\t1\t5\nchr1\t10\t20\t2\tdeep\n",
		"chr1\t10\t20\t1\t5\nchr1\t10\t20\t2\n",
	} {
		var out bytes.Buffer
		_, err := Summarize(strings.NewReader(in), &out, defaultRanges)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "line 2", in)
	}
}

func TestOutputPath(t *testing.T) {
	p, err := OutputPath("/data/sample1.cov.out", FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, "/data/sample1.cov_by_region.txt", p)

	p, err = OutputPath("s3://bucket/cov.out.dir/sample1.cov.out", FormatTSVBgzip)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/cov.out.dir/sample1.cov_by_region.txt.gz", p)

	_, err = OutputPath("/data/sample1.cov.txt", FormatTSV)
	assert.Error(t, err)
	_, err = OutputPath("/data/sample1.cov.out.gz", FormatTSV)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"tsv": FormatTSV, "tsv-gz": FormatTSVGzip, "tsv-bgz": FormatTSVBgzip} {
		got, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func readGzip(t *testing.T, path string) string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() // nolint: errcheck
	r, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestSummarizeFile(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := context.Background()

	inPath := filepath.Join(tmpdir, "sample1.cov.out")
	require.NoError(t, ioutil.WriteFile(inPath, []byte(threeRecordInput), 0644))

	opts := DefaultOpts
	require.NoError(t, SummarizeFile(ctx, inPath, &opts))
	got, err := ioutil.ReadFile(filepath.Join(tmpdir, "sample1.cov_by_region.txt"))
	require.NoError(t, err)
	assert.Equal(t, threeRecordOutput, string(got))

	for _, format := range []string{"tsv-gz", "tsv-bgz"} {
		opts := DefaultOpts
		opts.Format = format
		opts.Parallelism = 2
		require.NoError(t, SummarizeFile(ctx, inPath, &opts))
		assert.Equal(t, threeRecordOutput, readGzip(t, filepath.Join(tmpdir, "sample1.cov_by_region.txt.gz")), format)
	}
}

func TestSummarizeFileCustomRanges(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	inPath := filepath.Join(tmpdir, "a.cov.out")
	require.NoError(t, ioutil.WriteFile(inPath, []byte(threeRecordInput), 0644))
	opts := Opts{DepthRanges: "1,10,25,50,99", Format: "tsv"}
	require.NoError(t, SummarizeFile(context.Background(), inPath, &opts))
	got, err := ioutil.ReadFile(filepath.Join(tmpdir, "a.cov_by_region.txt"))
	require.NoError(t, err)
	lines := strings.Split(string(got), "\n")
	assert.Equal(t, "Chr\tLoc Beg\tLoc End\t0s\t< 10\t< 25\t< 50\t< 99\t99+\tTotal Bases\t0s\t< 10\t< 25\t< 50\t< 99\t99+\tAve Cov", lines[0])
	assert.Equal(t, "chr1\t10\t20\t0\t1\t1\t0\t0\t0\t2\t0.000\t0.500\t0.500\t0.000\t0.000\t0.000\t10.0", lines[1])
}

func TestSummarizeFileCompressedInput(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(threeRecordInput))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	inPath := filepath.Join(tmpdir, "b.cov.out")
	require.NoError(t, ioutil.WriteFile(inPath, buf.Bytes(), 0644))

	opts := DefaultOpts
	require.NoError(t, SummarizeFile(context.Background(), inPath, &opts))
	got, err := ioutil.ReadFile(filepath.Join(tmpdir, "b.cov_by_region.txt"))
	require.NoError(t, err)
	assert.Equal(t, threeRecordOutput, string(got))
}

func TestSummarizeFileRejectsBeforeOpen(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := context.Background()

	// Wrong suffix.
	inPath := filepath.Join(tmpdir, "sample.cov.txt")
	require.NoError(t, ioutil.WriteFile(inPath, []byte(threeRecordInput), 0644))
	opts := DefaultOpts
	assert.Error(t, SummarizeFile(ctx, inPath, &opts))

	// Bad options.
	goodPath := filepath.Join(tmpdir, "sample.cov.out")
	require.NoError(t, ioutil.WriteFile(goodPath, []byte(threeRecordInput), 0644))
	opts.DepthRanges = "10,1"
	assert.Error(t, SummarizeFile(ctx, goodPath, &opts))
	opts = DefaultOpts
	opts.Format = "bam"
	assert.Error(t, SummarizeFile(ctx, goodPath, &opts))

	// Missing input.
	opts = DefaultOpts
	assert.Error(t, SummarizeFile(ctx, filepath.Join(tmpdir, "missing.cov.out"), &opts))

	entries, err := ioutil.ReadDir(tmpdir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"sample.cov.txt", "sample.cov.out"}, names)
}
