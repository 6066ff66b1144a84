package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/muesli/termenv"
)

var palette = []string{"#818cf8", "#34d399", "#fbbf24", "#f472b6", "#60a5fa", "#f87171"}

// PrintClasses writes one colored line per equivalence class.
// Colors cycle through a fixed palette; profile controls the color depth.
func PrintClasses(w io.Writer, profile termenv.Profile, classes [][]domain.State) {
	for i, class := range classes {
		names := make([]string, len(class))
		for j, s := range class {
			names[j] = string(s)
		}
		color := profile.Color(palette[i%len(palette)])
		marker := profile.String("●").Foreground(color)
		body := profile.String(strings.Join(names, "  ")).Foreground(color).Bold()
		fmt.Fprintf(w, "%s %s\n", marker, body)
	}
}
