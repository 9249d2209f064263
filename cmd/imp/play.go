package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/implang/imp"
	"github.com/implang/imp/ast"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Bold(true)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type playModel struct {
	tabs    []string
	content [][]string
	active  int
	offset  int
	width   int
	height  int
}

// buildContent runs the phases in order and renders one pane per phase. A
// failed phase blocks the later panes, mirroring the sequential pipeline.
func buildContent(src string) [][]string {
	panes := make([][]string, 4)
	blocked := func(from int) {
		for i := from; i < len(panes); i++ {
			panes[i] = []string{statusStyle.Render("blocked by an earlier phase")}
		}
	}

	toks, err := imp.Tokenize(src)
	if err != nil {
		panes[0] = []string{errStyle.Render(err.Error())}
		blocked(1)
		return panes
	}
	for _, t := range toks {
		panes[0] = append(panes[0], t.String())
	}

	program, err := imp.Parse(src)
	if err != nil {
		panes[1] = []string{errStyle.Render(err.Error())}
		blocked(2)
		return panes
	}
	panes[1] = strings.Split(strings.TrimRight(ast.Dump(program), "\n"), "\n")

	if err := imp.Check(src); err != nil {
		panes[2] = []string{errStyle.Render(err.Error())}
	} else {
		panes[2] = []string{okStyle.Render("ok")}
	}

	// The check is advisory: execution runs regardless of its outcome.
	in, err := imp.Interpret(src)
	if err != nil {
		panes[3] = []string{errStyle.Render(err.Error())}
		return panes
	}
	for _, name := range in.Vars() {
		v, _ := in.Lookup(name)
		panes[3] = append(panes[3], fmt.Sprintf("%s = %d", name, v))
	}
	if len(panes[3]) == 0 {
		panes[3] = []string{statusStyle.Render("no variables")}
	}
	return panes
}

func newPlayModel(src string) playModel {
	return playModel{
		tabs:    []string{"Tokens", "AST", "Check", "Run"},
		content: buildContent(src),
		width:   80,
		height:  24,
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % len(m.tabs)
			m.offset = 0
		case "shift+tab", "left", "h":
			m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
			m.offset = 0
		case "1", "2", "3", "4":
			m.active = int(msg.String()[0] - '1')
			m.offset = 0
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		case "pgup":
			m.offset -= m.pageSize()
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown":
			m.offset += m.pageSize()
			if max := m.maxOffset(); m.offset > max {
				m.offset = max
			}
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m playModel) pageSize() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m playModel) maxOffset() int {
	max := len(m.content[m.active]) - m.pageSize()
	if max < 0 {
		max = 0
	}
	return max
}

func (m playModel) View() string {
	var b strings.Builder
	for i, name := range m.tabs {
		if i == m.active {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteByte('\n')

	lines := m.content[m.active]
	end := m.offset + m.pageSize()
	if end > len(lines) {
		end = len(lines)
	}
	for _, ln := range lines[m.offset:end] {
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	for i := end - m.offset; i < m.pageSize(); i++ {
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"%d-%d/%d  tab/arrows switch, j/k scroll, q quits",
		m.offset+1, end, len(lines))))
	return b.String()
}

func cmdPlay(args []string) int {
	src, err := loadSource(args)
	if err != nil {
		return fail(err)
	}
	p := tea.NewProgram(newPlayModel(src), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		return 1
	}
	return 0
}
