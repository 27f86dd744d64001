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

// Package logging wires the engine's go-logging loggers: the shared engine
// logger uses go-logging's default backend, and the search logger carries
// its own backend and level. UCI output must stay on stdout as plain
// protocol lines, so every log backend writes to stderr instead.
package logging

import (
	"os"
	"sync"

	. "github.com/op/go-logging"

	"github.com/kestrelchess/kestrel/internal/config"
)

var (
	once    sync.Once
	rootLog *Logger
)

// GetLog returns the engine's shared logger, configuring the backend (once)
// from config.Settings.Log / config.LogLevel on first use.
func GetLog() *Logger {
	once.Do(func() {
		rootLog = MustGetLogger("kestrel")
		backend := NewLogBackend(os.Stderr, "", 0)
		format := MustStringFormatter(
			`%{time:15:04:05.000} %{shortfile} %{level:7s}: %{message}`,
		)
		formatted := NewBackendFormatter(backend, format)
		leveled := AddModuleLevel(formatted)
		leveled.SetLevel(Level(config.LogLevel), "")
		SetBackend(leveled)
	})
	return rootLog
}

// GetSearchLog returns a logger using the search-specific level, for the
// high-volume per-node tracing the main log would drown in.
func GetSearchLog() *Logger {
	log := MustGetLogger("kestrel.search")
	backend := NewLogBackend(os.Stderr, "", 0)
	format := MustStringFormatter(
		`%{time:15:04:05.000} %{shortfunc} %{level:7s}: %{message}`,
	)
	formatted := NewBackendFormatter(backend, format)
	leveled := AddModuleLevel(formatted)
	leveled.SetLevel(Level(config.SearchLogLevel), "")
	log.SetBackend(leveled)
	return log
}
