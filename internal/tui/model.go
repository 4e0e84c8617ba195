// Package tui is a terminal browser for the vacancies and blog pages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/honeycarbs/silver-talent/internal/blog"
	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
	"github.com/honeycarbs/silver-talent/internal/visibility"
	"github.com/honeycarbs/silver-talent/pkg/logging"
)

// chrome is the number of lines drawn above and below the list
const chrome = 8

type (
	stateChangedMsg struct{}
	mountedMsg      struct {
		pane int
		err  error
	}
)

// Model is the bubbletea model of the browser
type Model struct {
	ctx    context.Context
	logger *logging.Logger

	panes   []pane
	active  int
	focus   []int // 0 is the search box, i>0 is select i-1
	text    []string
	scroll  []int
	tracker []*visibility.Tracker
	shown   [][]row // rows observed per pane
	visible []row   // rows of the active pane inside the terminal

	updates chan struct{}
	width   int
	height  int
	status  string
}

var _ tea.Model = (*Model)(nil)

// New builds the browser over two unmounted pages
func New(ctx context.Context, jobs *vacancies.Page, posts *blog.Page, logger *logging.Logger) *Model {
	m := &Model{
		ctx:     ctx,
		logger:  logging.OrNop(logger).Component("tui"),
		panes:   []pane{vacanciesPane(jobs, time.Now), blogPane(posts)},
		updates: make(chan struct{}, 1),
		height:  24,
		width:   80,
	}
	n := len(m.panes)
	m.focus = make([]int, n)
	m.text = make([]string, n)
	m.scroll = make([]int, n)
	m.shown = make([][]row, n)
	for range m.panes {
		m.tracker = append(m.tracker, visibility.NewTracker())
	}

	jobs.Jobs.Subscribe(func(listing.FetchState[domain.Job]) { m.signal() })
	posts.Posts.Subscribe(func(listing.FetchState[domain.BlogPost]) { m.signal() })
	return m
}

// signal wakes the program without blocking the orchestrator goroutine
func (m *Model) signal() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.updates:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m *Model) mount(i int) tea.Cmd {
	return func() tea.Msg {
		return mountedMsg{pane: i, err: m.panes[i].mount(m.ctx)}
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForUpdate()}
	for i := range m.panes {
		cmds = append(cmds, m.mount(i))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, nil

	case stateChangedMsg:
		m.relayout()
		return m, m.waitForUpdate()

	case mountedMsg:
		if msg.err != nil {
			m.logger.Warn("mount incomplete", "pane", m.panes[msg.pane].title, "err", msg.err)
		}
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[m.active]

	switch msg.String() {
	case "ctrl+c", "esc":
		for _, pn := range m.panes {
			pn.close()
		}
		return m, tea.Quit

	case "shift+tab":
		m.active = (m.active + 1) % len(m.panes)
		m.status = ""
		m.relayout()
		return m, nil

	case "tab":
		m.focus[m.active] = (m.focus[m.active] + 1) % (len(p.selects()) + 1)
		return m, nil

	case "left", "right":
		m.cycleSelect(msg.String() == "right")
		return m, nil

	case "up":
		if m.scroll[m.active] > 0 {
			m.scroll[m.active]--
			m.relayout()
		}
		return m, nil

	case "down":
		if m.scroll[m.active] < len(p.body().rows)-1 {
			m.scroll[m.active]++
			m.relayout()
		}
		return m, nil

	case "enter":
		p.searchNow()
		return m, nil

	case "ctrl+r":
		p.retry()
		return m, nil

	case "ctrl+x":
		m.text[m.active] = ""
		m.scroll[m.active] = 0
		p.clear()
		return m, nil

	case "backspace":
		if m.focus[m.active] == 0 {
			r := []rune(m.text[m.active])
			if len(r) > 0 {
				m.text[m.active] = string(r[:len(r)-1])
				p.setText(m.text[m.active])
			}
		}
		return m, nil
	}

	if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && m.focus[m.active] == 0 {
		m.text[m.active] += string(msg.Runes)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			m.text[m.active] += " "
		}
		m.scroll[m.active] = 0
		p.setText(m.text[m.active])
	}
	return m, nil
}

func (m *Model) cycleSelect(forward bool) {
	focus := m.focus[m.active]
	if focus == 0 {
		return
	}
	p := m.panes[m.active]
	sels := p.selects()
	if focus-1 >= len(sels) {
		return
	}
	sel := sels[focus-1]
	if sel.Disabled || len(sel.Options) == 0 {
		m.status = "Filters unavailable; search by text instead."
		return
	}

	current := p.query().Filters[sel.Key]
	idx := 0
	for i, o := range sel.Options {
		if o == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(sel.Options)
	} else {
		idx = (idx - 1 + len(sel.Options)) % len(sel.Options)
	}
	m.scroll[m.active] = 0
	p.setFilter(sel.Key, sel.Options[idx])
}

// relayout recomputes which rows of the active list sit inside the terminal
func (m *Model) relayout() {
	i := m.active
	tr := m.tracker[i]
	rows := m.panes[i].body().rows

	current := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		current[r.id] = struct{}{}
	}
	for _, r := range m.shown[i] {
		if _, ok := current[r.id]; !ok {
			tr.Unobserve(r.id)
		}
	}
	for n, r := range rows {
		tr.Observe(r.id, visibility.Rect{X: 0, Y: float64(n), W: 1, H: 1})
	}

	listHeight := max(1, m.height-chrome)
	tr.Update(visibility.Rect{X: 0, Y: float64(m.scroll[i]), W: 1, H: float64(listHeight)})

	visible := make([]row, 0, listHeight)
	for _, r := range rows {
		if tr.Visible(r.id) {
			visible = append(visible, r)
		}
	}
	m.shown[i] = rows
	m.visible = visible
}

func (m *Model) View() string {
	p := m.panes[m.active]
	var b strings.Builder

	for i, pn := range m.panes {
		if i == m.active {
			fmt.Fprintf(&b, "[%s] ", pn.title)
		} else {
			fmt.Fprintf(&b, " %s  ", pn.title)
		}
	}
	b.WriteString("\n")
	b.WriteString(p.header())
	b.WriteString("\n\n")

	cursor := " "
	if m.focus[m.active] == 0 {
		cursor = ">"
	}
	fmt.Fprintf(&b, "%s Search: %s_\n", cursor, m.text[m.active])

	q := p.query()
	for n, sel := range p.selects() {
		marker := " "
		if m.focus[m.active] == n+1 {
			marker = ">"
		}
		value := q.Filters[sel.Key]
		if sel.Disabled {
			value += " (unavailable)"
		}
		fmt.Fprintf(&b, "%s %s: < %s >  ", marker, sel.Key, value)
	}
	b.WriteString("\n\n")

	bd := p.body()
	switch bd.kind {
	case listing.ViewSkeleton:
		for n := 0; n < bd.skel; n++ {
			b.WriteString(strings.Repeat("░", min(40, max(10, m.width/2))))
			b.WriteString("\n")
		}
	case listing.ViewError:
		b.WriteString(bd.message)
		b.WriteString("\nPress ctrl+r to retry.\n")
	case listing.ViewEmpty:
		b.WriteString(bd.message)
		b.WriteString("\n")
	case listing.ViewList:
		for _, r := range m.visible {
			b.WriteString(r.text)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	b.WriteString("\ntab: next field  ←/→: change filter  enter: search  ctrl+r: retry  ctrl+x: clear  shift+tab: switch page  esc: quit\n")
	return b.String()
}
