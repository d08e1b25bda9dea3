package tui

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hisahi/lrg/internal/engine"
	"github.com/hisahi/lrg/internal/linerange"
	"github.com/hisahi/lrg/internal/output"
	"github.com/hisahi/lrg/internal/reader"
)

// chromeHeight is the number of rows taken by the title, input and status
// lines around the viewport.
const chromeHeight = 4

// Update advances the model for one message. It is a plain function (not a
// method) so tests can drive it directly with synthetic messages.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vh := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.view = newViewport(msg.Width, vh)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = vh
		}
		m.view.SetContent(fitLines(m.rendered, m.view.Width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return applySpec(m), nil
		case "ctrl+n":
			m.opts.ShowLineNumbers = !m.opts.ShowLineNumbers
			if m.rendered != "" || strings.TrimSpace(m.input.Value()) != "" {
				return applySpec(m), nil
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.view, cmd = m.view.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// applySpec parses the entered range specification, runs the extraction
// engine over the file and loads the result into the viewport.
func applySpec(m model) model {
	spec := strings.TrimSpace(m.input.Value())
	if spec == "" {
		m.status = "enter a range, e.g. 3-5,40~2"
		return m
	}

	text, warnings, err := extract(m.fileName, spec, m.opts)
	if err != nil {
		m.status = err.Error()
		return m
	}

	m.rendered = text
	m.warnings = warnings
	if m.ready {
		m.view.SetContent(fitLines(text, m.view.Width))
		m.view.GotoTop()
	}
	switch {
	case len(warnings) > 0:
		m.status = warnings[len(warnings)-1]
	case text == "":
		m.status = "no lines matched"
	default:
		m.status = fmt.Sprintf("%d line(s)", strings.Count(text, "\n"))
	}
	return m
}

// extract runs the scan engine for one spec over the file and returns the
// rendered output plus any premature-EOF warnings.
func extract(fileName, spec string, opts engine.Options) (string, []string, error) {
	tab, err := linerange.Parse(spec)
	if err != nil {
		return "", nil, err
	}

	f, err := os.Open(fileName)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	opts.WarnEOF = true
	var buf bytes.Buffer
	var warnings []string
	e := engine.New(tab, opts, output.NewWriter(&buf, 0, false), nil, func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	if _, err := e.Process(reader.NewSource(f), fileName); err != nil {
		return "", warnings, err
	}
	return buf.String(), warnings, nil
}
