package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hpgl2svg banner to w using the terminal color profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` _                 _ ____                 `, "#38bdf8"},
		{`| |__  _ __   __ _| |___ \ _____   ____ _ `, "#22d3ee"},
		{`| '_ \| '_ \ / _' | | __) / __\ \ / / _' |`, "#2dd4bf"},
		{`| | | | |_) | (_| | |/ __/\__ \ V / (_| |`, "#34d399"},
		{`|_| |_| .__/ \__, |_|_____|___/ \_/ \__, |`, "#4ade80"},
		{`      |_|    |___/                  |___/ `, "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
