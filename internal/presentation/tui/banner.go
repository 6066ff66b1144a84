package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the bisim ASCII banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _     _     _           ", "#818cf8"},
		{"| |__ (_)___(_)_ __ ___  ", "#a78bfa"},
		{"| '_ \\| / __| | '_ ` _ \\ ", "#c084fc"},
		{"| |_) | \\__ \\ | | | | | |", "#e879f9"},
		{"|_.__/|_|___/_|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
