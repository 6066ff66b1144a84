package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/bisim/internal/config"
	"github.com/aretw0/bisim/internal/presentation/graph"
	"github.com/aretw0/bisim/internal/presentation/report"
	"github.com/aretw0/bisim/internal/presentation/tui"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/muesli/termenv"
)

// RenderOptions controls how a result reaches the terminal.
type RenderOptions struct {
	Format string
	// Rich enables glamour and colors; set it only when stdout is a terminal.
	Rich    bool
	Profile termenv.Profile
}

// Render writes result in the requested format.
// ts is only needed for the mermaid format.
func Render(w io.Writer, ts *domain.TransitionSystem, result *domain.Result, opts RenderOptions) error {
	switch opts.Format {
	case "", config.FormatText:
		if opts.Rich {
			tui.PrintClasses(w, opts.Profile, result.Classes())
			fmt.Fprintf(w, "\n%d classes, %d rounds, %d splits\n", len(result.Classes()), result.Rounds, result.Splits)
			return nil
		}
		_, err := io.WriteString(w, report.Text(result))
		return err

	case config.FormatJSON:
		out, err := report.JSON(result)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err

	case config.FormatMarkdown:
		md := report.Markdown(result)
		if opts.Rich {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(w, md)
		return err

	case config.FormatMermaid:
		if ts == nil {
			return fmt.Errorf("mermaid output needs the transition system")
		}
		_, err := io.WriteString(w, graph.GenerateMermaid(ts, result.Partition, nil))
		return err
	}
	return fmt.Errorf("unknown format: %s (must be 'text', 'json', 'markdown' or 'mermaid')", opts.Format)
}
