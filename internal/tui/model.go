package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/hisahi/lrg/internal/engine"
)

// model is the Bubbletea model for the interactive range viewer: a text
// input for the range specification on top of a viewport showing the
// extracted lines.
type model struct {
	fileName string
	opts     engine.Options

	input textinput.Model
	view  viewport.Model

	rendered string   // last successful extraction, unstyled
	warnings []string // EOF warnings from the last extraction
	status   string   // one-line status or error text

	width    int
	height   int
	ready    bool // first WindowSizeMsg received
	quitting bool
}

// InitialModel creates the viewer model for one file.
func InitialModel(fileName string, opts engine.Options) model {
	ti := textinput.New()
	ti.Placeholder = "3-5,40~2,100-"
	ti.Prompt = "range> "
	ti.Focus()

	return model{
		fileName: fileName,
		opts:     opts,
		input:    ti,
		status:   "type a range and press enter",
	}
}
