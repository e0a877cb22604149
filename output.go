package main

import (
	"fmt"
	"io"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// msgKind selects the prefix and color of a CLI message
type msgKind int

const (
	msgSuccess msgKind = iota
	msgError
	msgWarning
	msgStep
)

var msgStyles = [...]struct {
	color  string
	prefix string
}{
	msgSuccess: {colorGreen, "✓"},
	msgError:   {colorRed, "✗"},
	msgWarning: {colorYellow, "⚠"},
	msgStep:    {colorCyan, "→"},
}

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

// printMsg writes one prefixed line, colored unless --no-color is set
func printMsg(w io.Writer, kind msgKind, format string, args ...any) {
	st := msgStyles[kind]
	fmt.Fprintln(w, colorize(st.color, st.prefix+" "+fmt.Sprintf(format, args...)))
}

// printResult writes a calculator result as "label: value"
func printResult(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", colorize(colorBold, label+":"), value)
}
