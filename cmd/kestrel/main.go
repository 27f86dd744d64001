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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrelchess/kestrel/internal/config"
	"github.com/kestrelchess/kestrel/internal/logging"
	"github.com/kestrelchess/kestrel/internal/movegen"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/testsuite"
	"github.com/kestrelchess/kestrel/internal/uci"
)

var out = message.NewPrinter(language.German)

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	testSuite := flag.String("testsuite", "", "path to an EPD test file or a folder of EPD files")
	testMoveTime := flag.Int("testtime", 2000, "search time for each test position in milliseconds")
	testSearchDepth := flag.Int("testdepth", 0, "search depth limit for each test position")
	perft := flag.Int("perft", 0, "runs perft on the start position up to the given depth\nuse -fen to provide a different position")
	fen := flag.String("fen", position.StartFen, "fen for -perft")
	enableProfile := flag.Bool("profile", false, "write a CPU profile (cpu.pprof) for the lifetime of the process")
	flag.Parse()

	if *enableProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}

	// configure the standard logger now that the level is final - GetLog
	// sets the backend level only on its first call, so it must come after
	// the level flags are applied.
	logging.GetLog()

	if *perft != 0 {
		runPerft(*fen, *perft)
		return
	}

	if *testSuite != "" {
		runTestSuite(*testSuite, time.Duration(*testMoveTime)*time.Millisecond, *testSearchDepth)
		return
	}

	u := uci.NewUciHandler()
	if err := u.Loop(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runPerft(fen string, maxDepth int) {
	p, err := position.NewPositionFromFEN(fen)
	if err != nil {
		out.Printf("invalid fen %q: %s\n", fen, err)
		return
	}
	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()
		nodes := movegen.Perft(p, depth)
		elapsed := time.Since(start)
		out.Printf("perft(%d) = %d nodes in %s\n", depth, nodes, elapsed)
	}
}

func runTestSuite(path string, searchTime time.Duration, searchDepth int) {
	fi, err := os.Stat(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	if fi.IsDir() {
		out.Println(testsuite.FeatureTests(path, searchTime, searchDepth))
		return
	}
	ts, err := testsuite.NewTestSuite(path, searchTime, searchDepth)
	if err != nil {
		fmt.Println(err)
		return
	}
	ts.RunTests()
}
