package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the compact banner to w, colored for the terminal
// profile of w.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	lines := []struct{ text, color string }{
		{`   ___ ___  _ __ ___  _ __   __ _  ___| |_ `, "#38bdf8"},
		{`  / __/ _ \| '_ ' _ \| '_ \ / _' |/ __| __|`, "#818cf8"},
		{` | (_| (_) | | | | | | |_) | (_| | (__| |_ `, "#a78bfa"},
		{`  \___\___/|_| |_| |_| .__/ \__,_|\___|\__|`, "#c084fc"},
		{`                     |_|                   `, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
