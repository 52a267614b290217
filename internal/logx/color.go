package logx

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiGreen  = "\x1b[1;32m"
	ansiYellow = "\x1b[1;33m"
	ansiRed    = "\x1b[1;31m"
	ansiReset  = "\x1b[0m"
)

// ColorEnabled reports whether stdout is a terminal, which gates ANSI
// colors in access log lines written to stdout.
func ColorEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorizeStatusWith renders an HTTP status code, wrapped in an ANSI
// color by class when color is on: 2xx green, 4xx yellow, 5xx red.
func ColorizeStatusWith(status int, color bool) string {
	s := fmt.Sprintf("%d", status)
	if !color {
		return s
	}
	switch {
	case status >= 200 && status < 300:
		return ansiGreen + s + ansiReset
	case status >= 400 && status < 500:
		return ansiYellow + s + ansiReset
	case status >= 500:
		return ansiRed + s + ansiReset
	default:
		return s
	}
}
