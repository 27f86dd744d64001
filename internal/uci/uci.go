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

// Package uci implements the text-line protocol adapter: a stdin reader
// goroutine and a single engine worker goroutine communicating over one
// channel of whole command strings, exactly as section 5 of the engine's
// concurrency model describes. The worker owns the position and the
// Search; it blocks on the channel when idle and never blocks while a
// search is running.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrelchess/kestrel/internal/config"
	myLogging "github.com/kestrelchess/kestrel/internal/logging"
	"github.com/kestrelchess/kestrel/internal/movegen"
	"github.com/kestrelchess/kestrel/internal/moveslice"
	"github.com/kestrelchess/kestrel/internal/position"
	"github.com/kestrelchess/kestrel/internal/search"
	. "github.com/kestrelchess/kestrel/internal/types"
	"github.com/kestrelchess/kestrel/internal/uciinterface"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

const engineName = "Kestrel"
const engineAuthor = "the kestrelchess project"

// UciHandler reads UCI commands, drives a Search over a position, and
// writes UCI responses. Replace InIo/OutIo to redirect for testing.
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	mySearch   *search.Search
	myPosition *position.Position
	uciLog     *logging.Logger
}

// NewUciHandler creates a handler wired to stdin/stdout.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		uciLog:     getUciLog(),
	}
	var driver uciinterface.UciDriver = u
	u.mySearch.SetUciHandler(driver)
	return u
}

// Loop starts the reader goroutine and runs the engine worker until "quit"
// or stdin closes. An errgroup supervises the reader so a read failure
// (as opposed to a clean EOF) surfaces to the caller instead of being
// silently swallowed.
func (u *UciHandler) Loop() error {
	cmdCh := make(chan string, 16)
	var g errgroup.Group
	g.Go(func() error {
		return u.readCommands(cmdCh)
	})
	for cmd := range cmdCh {
		if u.dispatch(cmd, cmdCh) {
			// "quit" was received; stdin may still be blocked on a read with
			// nothing more coming, so don't wait on the reader goroutine.
			return nil
		}
	}
	return g.Wait()
}

// Command runs a single command line synchronously and returns whatever
// was written to the UCI output, for debugging and unit tests. "go" is
// run with a channel nothing ever sends on, i.e. it runs to completion.
func (u *UciHandler) Command(cmd string) string {
	saved := u.OutIo
	buf := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buf)
	u.dispatch(cmd, make(chan string))
	_ = u.OutIo.Flush()
	u.OutIo = saved
	return buf.String()
}

// SendReadyOk replies to "isready".
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends a free-form "info string" line.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo reports one completed iterative-deepening iteration.
func (u *UciHandler) SendIterationEndInfo(depth int, value Value, nodes uint64, nps uint64, elapsed time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d score %s nodes %d nps %d time %d pv %s",
		depth, value.String(), nodes, nps, elapsed.Milliseconds(), pv.StringUci()))
}

// SendResult reports the final best move (and, if any, ponder move).
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var b strings.Builder
	b.WriteString("bestmove ")
	b.WriteString(bestMove.StringUci())
	if ponderMove != NoMove {
		b.WriteString(" ponder ")
		b.WriteString(ponderMove.StringUci())
	}
	u.send(b.String())
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) readCommands(cmdCh chan<- string) error {
	for u.InIo.Scan() {
		cmdCh <- u.InIo.Text()
	}
	close(cmdCh)
	return u.InIo.Err()
}

// dispatch handles a single command. It returns true when the engine
// should shut down. stopCh is the same channel commands arrive on - "go"
// hands it to Search.Run so a "stop" or "quit" sent while a search is
// running is observed by the halt-check instead of queueing behind it.
func (u *UciHandler) dispatch(cmd string, stopCh chan string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	u.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "isready":
		u.mySearch.IsReady()
	case "setoption":
		u.setOptionCommand(tokens)
	case "ucinewgame":
		u.myPosition = position.NewPosition()
		u.mySearch.NewGame()
	case "position":
		u.positionCommand(tokens)
	case "go":
		return u.goCommand(tokens, stopCh)
	case "stop":
		// Nothing is searching right now; stop-with-no-search-running is a
		// protocol no-op.
	case "d", "display":
		u.displayCommand()
	case "ponderhit", "register":
		u.SendInfoString("command '" + tokens[0] + "' not implemented")
	default:
		u.SendInfoString("unknown command: " + cmd)
		log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send(out.Sprintf("id name %s", engineName))
	u.send(out.Sprintf("id author %s", engineAuthor))
	for _, o := range *uciOptions.GetOptions() {
		u.send(o)
	}
	u.send("uciok")
}

func (u *UciHandler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.SendInfoString("setoption malformed: " + strings.Join(tokens, " "))
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		if name.Len() > 0 {
			name.WriteByte(' ')
		}
		name.WriteString(tokens[i])
		i++
	}
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	o, found := uciOptions[name.String()]
	if !found {
		u.SendInfoString("setoption: no such option '" + name.String() + "'")
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

// goCommand parses search limits and runs the search to completion,
// returning true only if "quit" was received while the search was running.
func (u *UciHandler) goCommand(tokens []string, stopCh chan string) bool {
	sl, malformed := u.readSearchLimits(tokens)
	if malformed {
		return false
	}
	u.mySearch.Run(u.myPosition, sl, stopCh)
	if pending := u.mySearch.PendingCommand(); pending != "" {
		return u.dispatch(pending, stopCh)
	}
	return false
}

func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.SendInfoString("position malformed: " + strings.Join(tokens, " "))
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			if fenb.Len() > 0 {
				fenb.WriteByte(' ')
			}
			fenb.WriteString(tokens[i])
			i++
		}
		fen = fenb.String()
	default:
		u.SendInfoString("position malformed: " + strings.Join(tokens, " "))
		return
	}

	p, err := position.NewPositionFromFEN(fen)
	if err != nil {
		u.SendInfoString(out.Sprintf("position malformed fen '%s': %s", fen, err))
		return
	}
	u.myPosition = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m := moveFromUci(u.myPosition, tokens[i])
			if !m.IsValid() {
				u.SendInfoString("position: invalid move '" + tokens[i] + "'")
				return
			}
			u.myPosition.DoMove(m)
		}
	}
}

func (u *UciHandler) displayCommand() {
	p := u.myPosition
	var b strings.Builder
	b.WriteString("\n")
	for r := int(Rank8); r >= int(Rank1); r-- {
		b.WriteString(fmt.Sprintf("%d | ", r+1))
		for f := FileA; f <= FileH; f++ {
			pc := p.PieceOn(SquareOf(f, Rank(r)))
			ch := "."
			if pc != PieceNone {
				ch = pc.String()
			}
			b.WriteString(ch)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("    a b c d e f g h\n")
	b.WriteString(out.Sprintf("fen: %s\n", p.ToFEN()))
	b.WriteString(out.Sprintf("zobrist: %d\n", p.ZobristKey()))
	u.SendInfoString(b.String())
}

// moveFromUci matches a long-algebraic-notation token (e.g. "e2e4",
// "e7e8q") against the position's pseudo-legal moves. Returns NoMove if
// nothing matches or the match is not actually legal.
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

func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	sl := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "infinite":
			sl.Infinite = true
			i++
		case "depth":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			sl.Depth, err = strconv.Atoi(tokens[i])
			i++
		case "movetime":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			var ms int64
			ms, err = strconv.ParseInt(tokens[i], 10, 64)
			sl.MoveTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "wtime":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			var ms int64
			ms, err = strconv.ParseInt(tokens[i], 10, 64)
			sl.WhiteTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "btime":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			var ms int64
			ms, err = strconv.ParseInt(tokens[i], 10, 64)
			sl.BlackTime = time.Duration(ms) * time.Millisecond
			sl.TimeControl = true
			i++
		case "winc":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			var ms int64
			ms, err = strconv.ParseInt(tokens[i], 10, 64)
			sl.WhiteInc = time.Duration(ms) * time.Millisecond
			i++
		case "binc":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			var ms int64
			ms, err = strconv.ParseInt(tokens[i], 10, 64)
			sl.BlackInc = time.Duration(ms) * time.Millisecond
			i++
		case "movestogo":
			i++
			if i >= len(tokens) {
				return nil, true
			}
			sl.MovesToGo, err = strconv.Atoi(tokens[i])
			i++
		case "ponder":
			// Pondering is out of scope; accepted and ignored.
			i++
		default:
			u.SendInfoString("go: invalid subcommand: " + tokens[i])
			return nil, true
		}
		if err != nil {
			u.SendInfoString(out.Sprintf("go malformed near '%s': %s", tokens[i-1], err))
			return nil, true
		}
	}
	return sl, false
}

// getUciLog returns a logger preconfigured for tracing raw UCI protocol
// traffic to stderr, format "time UCI <<>> <command>".
func getUciLog() *logging.Logger {
	uciLog := logging.MustGetLogger("kestrel.uci")
	format := logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(config.LogLevel), "")
	uciLog.SetBackend(leveled)
	return uciLog
}

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
