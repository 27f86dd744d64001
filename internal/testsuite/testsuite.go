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

// Package testsuite runs regression tests against the search: a text file of
// one test per line, each giving a FEN and an expected outcome - a best move
// to find (bm), a move to avoid (am), or a position that must be found to be
// a forced mate (dm). This is deliberately not full EPD: target moves are
// given in long algebraic notation (e.g. "e2e4", "e7e8q"), not SAN, since
// nothing in this engine parses SAN.
package testsuite

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	"github.com/kestrelchess/kestrel/internal/movegen"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/search"
	. "github.com/kestrelchess/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// testType is the EPD-style opcode a test line uses.
type testType uint8

const (
	None testType = iota
	DM   testType = iota
	BM   testType = iota
	AM   testType = iota
)

// resultType is the outcome of running one test.
type resultType uint8

const (
	NotTested resultType = iota
	Failed    resultType = iota
	Success   resultType = iota
)

// SuiteResult sums up the outcome of a whole TestSuite run.
type SuiteResult struct {
	Counter          int
	SuccessCounter   int
	FailedCounter    int
	NotTestedCounter int
}

// Test is one parsed test line plus its outcome once run.
type Test struct {
	id          string
	fen         string
	tType       testType
	targetMoves moveslice.MoveSlice
	actual      Move
	value       Value
	rType       resultType
	line        string
}

// TestSuite is a file of Tests plus the search budget to run them with.
type TestSuite struct {
	Tests      []*Test
	Time       time.Duration
	Depth      int
	FilePath   string
	LastResult *SuiteResult
}

// NewTestSuite reads filePath and parses a Test per non-comment, non-blank
// line that matches the "<fen> bm|am|dm <result>; id \"<id>\";" grammar.
// Lines that don't parse are skipped with a warning, not treated as fatal.
func NewTestSuite(filePath string, searchTime time.Duration, depth int) (*TestSuite, error) {
	if log == nil {
		log = myLogging.GetLog()
	}

	lines, err := readTestFile(filePath)
	if err != nil {
		return nil, err
	}

	ts := &TestSuite{
		Tests:    make([]*Test, 0, len(lines)),
		Time:     searchTime,
		Depth:    depth,
		FilePath: filePath,
	}
	for _, line := range lines {
		if t := parseTestLine(line); t != nil {
			ts.Tests = append(ts.Tests, t)
		}
	}
	return ts, nil
}

// RunTests runs every test in the suite sequentially against a fresh Search,
// and leaves the per-test outcome and suite totals in ts.LastResult.
func (ts *TestSuite) RunTests() {
	if len(ts.Tests) == 0 {
		out.Println("No tests to run")
		return
	}

	start := time.Now()

	s := search.NewSearch()
	sl := search.NewSearchLimits()
	sl.MoveTime = ts.Time
	sl.Depth = ts.Depth
	if sl.MoveTime > 0 {
		sl.TimeControl = true
	}

	out.Printf("Running Test Suite: %s (%d tests, %s per move, depth %d)\n",
		ts.FilePath, len(ts.Tests), ts.Time, ts.Depth)

	for i, t := range ts.Tests {
		runSingleTest(s, sl, t)
		out.Printf("%3d/%d %-8s %-10s actual=%-8s expected=%-8s %s\n",
			i+1, len(ts.Tests), t.rType.String(), t.tType.String(), t.actual.StringUci(), t.targetMoves.StringUci(), t.id)
	}

	tr := &SuiteResult{}
	for _, t := range ts.Tests {
		tr.Counter++
		switch t.rType {
		case NotTested:
			tr.NotTestedCounter++
		case Failed:
			tr.FailedCounter++
		case Success:
			tr.SuccessCounter++
		}
	}
	ts.LastResult = tr

	out.Printf("Finished %s in %s: %d/%d successful\n", ts.FilePath, time.Since(start), tr.SuccessCounter, tr.Counter)
}

// RunEpdFolder runs every ".epd" file found directly under folder and
// returns the totals summed across all of them.
func RunEpdFolder(folder string, searchTime time.Duration, depth int) (*SuiteResult, error) {
	entries, err := ioutil.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	total := &SuiteResult{}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".epd" {
			continue
		}
		ts, err := NewTestSuite(filepath.Join(folder, e.Name()), searchTime, depth)
		if err != nil {
			log.Warningf("skipping %s: %s", e.Name(), err)
			continue
		}
		ts.RunTests()
		if ts.LastResult == nil {
			continue
		}
		total.Counter += ts.LastResult.Counter
		total.SuccessCounter += ts.LastResult.SuccessCounter
		total.FailedCounter += ts.LastResult.FailedCounter
		total.NotTestedCounter += ts.LastResult.NotTestedCounter
	}
	return total, nil
}

func runSingleTest(s *search.Search, sl *search.Limits, t *Test) {
	s.NewGame()
	p, err := position.NewPositionFromFEN(t.fen)
	if err != nil {
		t.rType = NotTested
		return
	}
	stopCh := make(chan string)
	result := s.Run(p, sl, stopCh)
	t.actual = result.BestMove
	t.value = result.BestValue

	switch t.tType {
	case DM:
		if result.BestValue.IsCheckmateValue() {
			t.rType = Success
		} else {
			t.rType = Failed
		}
	case BM:
		if containsMove(t.targetMoves, t.actual) {
			t.rType = Success
		} else {
			t.rType = Failed
		}
	case AM:
		if containsMove(t.targetMoves, t.actual) {
			t.rType = Failed
		} else {
			t.rType = Success
		}
	default:
		t.rType = NotTested
	}
}

func containsMove(haystack moveslice.MoveSlice, m Move) bool {
	for i := 0; i < haystack.Len(); i++ {
		if haystack.At(i) == m {
			return true
		}
	}
	return false
}

var leadingComments = regexp.MustCompile(`^\s*#.*$`)
var trailingComments = regexp.MustCompile(`^(.*)#([^;]*)$`)
var epdLine = regexp.MustCompile(`^\s*(.*?) (bm|dm|am) (.*?);(.* id "(.*?)";)?.*$`)

// parseTestLine turns one EPD-ish line into a Test, or nil if the line is
// blank, a comment, or malformed.
func parseTestLine(line string) *Test {
	line = strings.TrimSpace(line)
	line = leadingComments.ReplaceAllString(line, "")
	line = trailingComments.ReplaceAllString(line, "")
	if len(line) == 0 {
		return nil
	}

	if !epdLine.MatchString(line) {
		log.Warningf("no test found in line: %s", line)
		return nil
	}
	parts := epdLine.FindStringSubmatch(line)

	fen := strings.TrimSpace(parts[1])
	p, err := position.NewPositionFromFEN(fen)
	if err != nil {
		log.Warningf("fen part of test is invalid: %s", fen)
		return nil
	}

	var tt testType
	switch parts[2] {
	case "dm":
		tt = DM
	case "bm":
		tt = BM
	case "am":
		tt = AM
	default:
		log.Warningf("unknown opcode: %s", parts[2])
		return nil
	}

	targets := moveslice.NewMoveSlice(4)
	if tt == BM || tt == AM {
		for _, token := range strings.Fields(parts[3]) {
			token = strings.Trim(token, "!?")
			if m := moveFromUci(p, token); m != NoMove {
				targets.PushBack(m)
			}
		}
		if targets.Len() == 0 {
			log.Warningf("no valid target moves in line: %s", line)
			return nil
		}
	}

	return &Test{
		id:          parts[5],
		fen:         fen,
		tType:       tt,
		targetMoves: *targets,
		line:        line,
	}
}

// moveFromUci matches a long-algebraic-notation token against p's
// pseudo-legal moves, same approach the uci package's own move parser uses.
func moveFromUci(p *position.Position, s string) Move {
	ml := movegen.GeneratePseudoLegal(p, false)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.StringUci() == s && movegen.IsLegalMove(p, m) {
			return m
		}
	}
	return NoMove
}

func readTestFile(filePath string) ([]string, error) {
	if !filepath.IsAbs(filePath) {
		wd, _ := os.Getwd()
		filePath = filepath.Join(wd, filePath)
	}
	filePath = filepath.Clean(filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening test file %q: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading test file %q: %w", filePath, err)
	}
	return lines, nil
}

func (rt resultType) String() string {
	switch rt {
	case NotTested:
		return "not tested"
	case Failed:
		return "failed"
	case Success:
		return "success"
	default:
		return "n/a"
	}
}

func (tt testType) String() string {
	switch tt {
	case BM:
		return "bm"
	case AM:
		return "am"
	case DM:
		return "dm"
	default:
		return "n/a"
	}
}
