//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package testsuite

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return ioutil.WriteFile(path, []byte(content), 0o644)
}

func writeEpdFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, writeFile(path, content))
	return path
}

func TestParseTestLineBestMove(t *testing.T) {
	line := `6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm e1e8; id "back rank #1";`
	test := parseTestLine(line)
	require.NotNil(t, test)
	require.Equal(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - -", test.fen)
	require.Equal(t, BM, test.tType)
	require.Equal(t, "e1e8", test.targetMoves.StringUci())
	require.Equal(t, "back rank #1", test.id)
}

func TestParseTestLinePromotion(t *testing.T) {
	line := `6k1/P7/8/8/8/8/8/3K4 w - - bm a7a8q; id "promotion #1";`
	test := parseTestLine(line)
	require.NotNil(t, test)
	require.Equal(t, "a7a8q", test.targetMoves.StringUci())
}

func TestParseTestLineRejectsInvalidFen(t *testing.T) {
	line := `6k1/P7/8/9/8/8/8/3K4 w - - bm a7a8q; id "bad fen";`
	require.Nil(t, parseTestLine(line))
}

func TestParseTestLineRejectsUnknownOpcode(t *testing.T) {
	line := `6k1/P7/8/8/8/8/8/3K4 w - - xx a7a8q; id "bad opcode";`
	require.Nil(t, parseTestLine(line))
}

func TestParseTestLineIgnoresCommentsAndBlankLines(t *testing.T) {
	require.Nil(t, parseTestLine("   "))
	require.Nil(t, parseTestLine("# just a comment"))
}

func TestNewTestSuiteParsesAllLinesInFile(t *testing.T) {
	path := writeEpdFile(t, "back_rank.epd",
		`6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm e1e8; id "mate #1";`,
		`# a comment line, ignored`,
		`6k1/P7/8/8/8/8/8/3K4 w - - bm a7a8q; id "promo #1";`,
	)
	ts, err := NewTestSuite(path, 0, 3)
	require.NoError(t, err)
	require.Len(t, ts.Tests, 2)
}

func TestRunTestsOnBackRankMateSucceeds(t *testing.T) {
	path := writeEpdFile(t, "mate.epd", `6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm e1e8; id "mate #1";`)
	ts, err := NewTestSuite(path, 0, 3)
	require.NoError(t, err)
	ts.RunTests()
	require.Equal(t, 1, ts.LastResult.Counter)
	require.Equal(t, 1, ts.LastResult.SuccessCounter)
}

func TestRunTestsDirectMateOpcode(t *testing.T) {
	path := writeEpdFile(t, "dm.epd", `6k1/5ppp/8/8/8/8/8/4R1K1 w - - dm 1; id "dm #1";`)
	ts, err := NewTestSuite(path, 0, 3)
	require.NoError(t, err)
	ts.RunTests()
	require.Equal(t, 1, ts.LastResult.SuccessCounter)
}

func TestRunTestsAvoidMoveOpcode(t *testing.T) {
	// e1e8 is mate in one, so "avoid e1e8" must fail: the search will find it anyway.
	path := writeEpdFile(t, "am.epd", `6k1/5ppp/8/8/8/8/8/4R1K1 w - - am e1e8; id "am #1";`)
	ts, err := NewTestSuite(path, 0, 3)
	require.NoError(t, err)
	ts.RunTests()
	require.Equal(t, 1, ts.LastResult.FailedCounter)
}

func TestRunEpdFolderAggregatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(dir, "a.epd"), `6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm e1e8; id "a1";`+"\n"))
	require.NoError(t, writeFile(filepath.Join(dir, "b.epd"), `6k1/P7/8/8/8/8/8/3K4 w - - bm a7a8q; id "b1";`+"\n"))

	total, err := RunEpdFolder(dir, 0, 3)
	require.NoError(t, err)
	require.Equal(t, 2, total.Counter)
}

func TestResultTypeAndTestTypeStringers(t *testing.T) {
	require.Equal(t, "success", Success.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "not tested", NotTested.String())
	require.Equal(t, "bm", BM.String())
	require.Equal(t, "am", AM.String())
	require.Equal(t, "dm", DM.String())
}

func TestNewTestSuiteStoresSearchTime(t *testing.T) {
	path := writeEpdFile(t, "time.epd", `6k1/5ppp/8/8/8/8/8/4R1K1 w - - bm e1e8; id "t1";`)
	ts, err := NewTestSuite(path, 50*time.Millisecond, 0)
	require.NoError(t, err)
	require.Equal(t, 50*time.Millisecond, ts.Time)
}
