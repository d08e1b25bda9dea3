package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hisahi/lrg/internal/engine"
)

func writeFixture(t *testing.T, lines int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		sb.WriteString("line ")
		sb.WriteString(strings.Repeat("x", i%5))
		sb.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), "fixture.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func typeString(m model, s string) model {
	for _, r := range s {
		m, _ = Update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestUpdateQuitKeys(t *testing.T) {
	for _, key := range []string{"ctrl+c", "esc"} {
		m := InitialModel("whatever.txt", engine.Options{})
		var msg tea.KeyMsg
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		}
		m2, cmd := Update(m, msg)
		if !m2.quitting {
			t.Errorf("%s: quitting = false, want true", key)
		}
		if cmd == nil {
			t.Errorf("%s: expected a quit command", key)
		}
	}
}

func TestUpdateAppliesSpecOnEnter(t *testing.T) {
	path := writeFixture(t, 10)
	m := InitialModel(path, engine.Options{})
	m, _ = Update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeString(m, "2-3")
	m, _ = Update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := strings.Count(m.rendered, "\n"); got != 2 {
		t.Errorf("rendered %d lines, want 2 (%q)", got, m.rendered)
	}
	if m.status != "2 line(s)" {
		t.Errorf("status = %q, want %q", m.status, "2 line(s)")
	}
}

func TestUpdateReportsParseError(t *testing.T) {
	path := writeFixture(t, 3)
	m := InitialModel(path, engine.Options{})
	m, _ = Update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeString(m, "bogus")
	m, _ = Update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(m.status, "invalid range") {
		t.Errorf("status = %q, want an invalid range message", m.status)
	}
	if m.rendered != "" {
		t.Errorf("rendered = %q, want empty after a parse error", m.rendered)
	}
}

func TestUpdateShowsEOFWarning(t *testing.T) {
	path := writeFixture(t, 3)
	m := InitialModel(path, engine.Options{})
	m, _ = Update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeString(m, "1-10")
	m, _ = Update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := strings.Count(m.rendered, "\n"); got != 3 {
		t.Errorf("rendered %d lines, want 3", got)
	}
	if !strings.Contains(m.status, "EOF before line 10") {
		t.Errorf("status = %q, want an EOF warning", m.status)
	}
}

func TestUpdateTogglesLineNumbers(t *testing.T) {
	path := writeFixture(t, 5)
	m := InitialModel(path, engine.Options{})
	m, _ = Update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = typeString(m, "2")
	m, _ = Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if strings.Contains(m.rendered, "      2   ") {
		t.Fatalf("rendered = %q, numbers should be off initially", m.rendered)
	}

	m, _ = Update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if !m.opts.ShowLineNumbers {
		t.Fatal("ShowLineNumbers = false after toggle, want true")
	}
	if !strings.Contains(m.rendered, "      2   ") {
		t.Errorf("rendered = %q, want a line-number prefix after toggle", m.rendered)
	}
}

func TestFitLinesTruncatesWideLines(t *testing.T) {
	in := "short\n" + strings.Repeat("a", 50)
	out := fitLines(in, 10)
	lines := strings.Split(out, "\n")
	if lines[0] != "short" {
		t.Errorf("first line = %q, want unchanged", lines[0])
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("second line = %q, want truncation marker", lines[1])
	}
}
