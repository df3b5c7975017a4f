package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

func testLayoutModel(t *testing.T) LayoutModel {
	t.Helper()
	p, err := styles.Lookup(styles.Spectrum)
	if err != nil {
		t.Fatal(err)
	}
	l := wio.Layout{
		Width: 400, Height: 225,
		Words: []wio.Word{
			{Text: "alpha", Count: 9, Bucket: 20, FontSize: 72, X: 100, Y: 80, Width: 216, Height: 86.4},
			{Text: "beta", Count: 4, Bucket: 8, FontSize: 39, X: 20, Y: 10, Width: 94, Height: 47},
			{Text: "gamma", Count: 1, Bucket: 1, FontSize: 18, X: 300, Y: 30, Width: 54, Height: 21.6},
		},
		Unplaced: []wio.Unplaced{{Text: "delta", Count: 1, FontSize: 18}},
	}
	return NewLayoutModel(l, p)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m LayoutModel, keys ...string) LayoutModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(LayoutModel)
	}
	return m
}

func TestLayoutModelNavigation(t *testing.T) {
	tests := []struct {
		keys   []string
		cursor int
	}{
		{nil, 0},
		{[]string{"down"}, 1},
		{[]string{"j", "j", "j", "j"}, 2},
		{[]string{"up"}, 0},
		{[]string{"G"}, 2},
		{[]string{"G", "k", "g"}, 0},
	}
	for _, tt := range tests {
		m := update(testLayoutModel(t), tt.keys...)
		if m.Cursor != tt.cursor {
			t.Errorf("keys %v: cursor = %d, want %d", tt.keys, m.Cursor, tt.cursor)
		}
	}
}

func TestLayoutModelScroll(t *testing.T) {
	m := testLayoutModel(t)
	m.Height = 1

	m = update(m, "down", "down")
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "gamma") || strings.Contains(view, "alpha") {
		t.Errorf("view should show only the cursor row:\n%s", view)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if m = next.(LayoutModel); m.Height != 5 {
		t.Errorf("height = %d, want the minimum 5", m.Height)
	}
}

func TestLayoutModelUnplaced(t *testing.T) {
	m := update(testLayoutModel(t), "down", "tab")
	if !m.Unplaced || m.Cursor != 0 {
		t.Fatalf("tab: unplaced = %v cursor = %d", m.Unplaced, m.Cursor)
	}
	view := m.View()
	if !strings.Contains(view, "delta") || strings.Contains(view, "alpha") {
		t.Errorf("unplaced view:\n%s", view)
	}

	m = update(m, "tab")
	if view := m.View(); !strings.Contains(view, "alpha") || !strings.Contains(view, "9 occurrences") {
		t.Errorf("placed view:\n%s", view)
	}
}

func TestLayoutModelEmpty(t *testing.T) {
	m := NewLayoutModel(wio.Layout{}, styles.Palette{})
	m = update(m, "down", "G")
	if !strings.Contains(m.View(), "No words were placed.") {
		t.Errorf("empty view:\n%s", m.View())
	}
	m = update(m, "tab")
	if !strings.Contains(m.View(), "Every word fits") {
		t.Errorf("empty unplaced view:\n%s", m.View())
	}
}

func TestLayoutModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		_, cmd := testLayoutModel(t).Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command does not quit", k)
		}
	}
}
