package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrintClasses_ASCII(t *testing.T) {
	var buf bytes.Buffer
	PrintClasses(&buf, termenv.Ascii, [][]domain.State{{"a", "b"}, {"c"}})

	assert.Equal(t, "● a  b\n● c\n", buf.String())
}

func TestPrintClasses_Colored(t *testing.T) {
	var buf bytes.Buffer
	PrintClasses(&buf, termenv.TrueColor, [][]domain.State{{"a"}})

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "a")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()

	out, err := render("# Title")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title")
}
