/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package uci

import (
	"strconv"
	"strings"

	. "github.com/kestrelchess/kestrel/internal/config"
)

// init defines the available uci options and stores them into uciOptions.
// The search this engine runs has exactly one tunable a GUI needs to see at
// handshake time: the transposition table size. Everything else (use-TT,
// use-SEE, use-PVS, aspiration window, ...) is a build-time decision, not a
// per-game UCI option.
func init() {
	uciOptions = map[string]*uciOption{
		"Hash":       {NameID: "Hash", HandlerFunc: setHashSize, OptionType: Spin, DefaultValue: strconv.Itoa(Settings.Search.TTSize), CurrentValue: strconv.Itoa(Settings.Search.TTSize), MinValue: "1", MaxValue: "131072"},
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearHash, OptionType: Button},
	}
	sortOrderUciOptions = []string{
		"Hash",
		"Clear Hash",
	}
}

// GetOptions returns all available uci options as strings ready to be sent
// to the UCI user interface during the "uci" handshake.
func (o *optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range sortOrderUciOptions {
		options = append(options, uciOptions[opt].String())
	}
	return &options
}

// String renders a uci option the way the "uci" handshake requires.
func (o *uciOption) String() string {
	var os strings.Builder
	os.WriteString("option name ")
	os.WriteString(o.NameID)
	os.WriteString(" type ")
	switch o.OptionType {
	case Check:
		os.WriteString("check default ")
		os.WriteString(o.DefaultValue)
	case Spin:
		os.WriteString("spin default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" min ")
		os.WriteString(o.MinValue)
		os.WriteString(" max ")
		os.WriteString(o.MaxValue)
	case Combo:
		os.WriteString("combo default ")
		os.WriteString(o.DefaultValue)
		os.WriteString(" var ")
		os.WriteString(o.VarValue)
	case Button:
		os.WriteString("button")
	case String:
		os.WriteString("string default ")
		os.WriteString(o.DefaultValue)
	}
	return os.String()
}

// uciOptionType enumerates the UCI option kinds the protocol defines.
type uciOptionType int

const (
	Check uciOptionType = iota
	Spin
	Combo
	Button
	String
)

// optionHandler is invoked when "setoption" changes an option's value.
type optionHandler func(*UciHandler, *uciOption)

// uciOption describes one UCI option and the handler that applies it.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

type optionMap map[string]*uciOption

// uciOptions stores all available uci options.
var uciOptions optionMap

// sortOrderUciOptions controls the order options are sent in during "uci".
var sortOrderUciOptions []string

func setHashSize(u *UciHandler, o *uciOption) {
	v, err := strconv.Atoi(o.CurrentValue)
	if err != nil {
		u.SendInfoString("setoption Hash: not a number: " + o.CurrentValue)
		return
	}
	min, _ := strconv.Atoi(o.MinValue)
	max, _ := strconv.Atoi(o.MaxValue)
	if v < min || v > max {
		u.SendInfoString("setoption Hash: out of range [" + o.MinValue + "," + o.MaxValue + "]: " + o.CurrentValue)
		return
	}
	Settings.Search.TTSize = v
	u.mySearch.ResizeCache(v)
}

func clearHash(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
}
