package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	listWarnStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// LayoutModel - Interactive layout viewer
// =============================================================================

// LayoutModel is the bubbletea model of 'wordgraph inspect'. It lists the
// placed words of a layout, colored by bucket, and toggles to the words
// that did not fit.
type LayoutModel struct {
	Layout   wio.Layout
	Palette  styles.Palette
	Cursor   int
	Offset   int
	Height   int
	Unplaced bool // showing the unplaced list
}

// NewLayoutModel creates a viewer for l.
func NewLayoutModel(l wio.Layout, p styles.Palette) LayoutModel {
	return LayoutModel{Layout: l, Palette: p, Height: 15}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) rows() int {
	if m.Unplaced {
		return len(m.Layout.Unplaced)
	}
	return len(m.Layout.Words)
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-m.rows())
		case "end", "G":
			m.move(m.rows())
		case "tab":
			m.Unplaced = !m.Unplaced
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta rows and scrolls it into view.
func (m *LayoutModel) move(delta int) {
	n := m.rows()
	if n == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m LayoutModel) View() string {
	var b strings.Builder
	l := m.Layout

	b.WriteString(StyleTitle.Render("Tag Cloud"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %.0f×%.0f  %s  %d unplaced",
		l.Width, l.Height, plural(len(l.Words), "word"), len(l.Unplaced))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab placed/unplaced  q quit"))
	b.WriteString("\n\n")

	if m.rows() == 0 {
		if m.Unplaced {
			b.WriteString(StyleSuccess.Render("Every word fits on the canvas."))
		} else {
			b.WriteString(listWarnStyle.Render("No words were placed."))
		}
		b.WriteString("\n")
		return b.String()
	}

	if m.Unplaced {
		b.WriteString(m.unplacedTable())
	} else {
		b.WriteString(m.wordTable())
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rows())))
	if !m.Unplaced {
		w := l.Words[m.Cursor]
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s  box %.1f×%.1f",
			styles.Occurrences(w.Count), w.Width, w.Height)))
	}
	return b.String()
}

func (m LayoutModel) window() (int, int) {
	return m.Offset, min(m.Offset+m.Height, m.rows())
}

func (m LayoutModel) wordTable() string {
	start, end := m.window()
	maxBucket := m.Layout.MaxBucket()

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		w := m.Layout.Words[i]
		rows = append(rows, []string{
			cursorMark(i == m.Cursor), w.Text, strconv.Itoa(w.Count), strconv.Itoa(w.Bucket),
			strconv.Itoa(w.FontSize), fmt.Sprintf("%.1f", w.X), fmt.Sprintf("%.1f", w.Y),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Word", "Count", "Bucket", "Size", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := start + row
			if idx >= end {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 1 {
				w := m.Layout.Words[idx]
				base = base.Foreground(lipgloss.Color(m.Palette.Hex(w.Bucket, maxBucket)))
			} else if col > 1 {
				base = base.Foreground(colorGray).Align(lipgloss.Right)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		}).
		Render()
}

func (m LayoutModel) unplacedTable() string {
	start, end := m.window()

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		u := m.Layout.Unplaced[i]
		rows = append(rows, []string{cursorMark(i == m.Cursor), u.Text, strconv.Itoa(u.Count), strconv.Itoa(u.FontSize)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Unplaced", "Count", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case start+row == m.Cursor:
				return listWarnStyle.Bold(true)
			case col == 1:
				return listWarnStyle
			}
			return listDimStyle
		}).
		Render()
}

func cursorMark(current bool) string {
	if current {
		return "▸"
	}
	return " "
}
