// Command indexreader loads a file of newline-delimited integer keys into
// both index structures and browses their dumps interactively.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"keydex/pkg/btree"
	"keydex/pkg/debug/ui"
	"keydex/pkg/exhash"
	"keydex/pkg/loader"
)

type readerKeyMap struct {
	Switch key.Binding
	Quit   key.Binding
}

var readerKeys = readerKeyMap{
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch structure"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type readerModel struct {
	inputFile string
	viewing   string // "btree" or "hash"
	treeDump  string
	tableDump string
	treeInfo  string
	tableInfo string
	viewport  viewport.Model
	ready     bool
	err       error
}

type loadedMsg struct {
	treeDump, tableDump string
	treeInfo, tableInfo string
	err                 error
}

func initialModel(inputFile string) readerModel {
	return readerModel{
		inputFile: inputFile,
		viewing:   "btree",
	}
}

func (m readerModel) Init() tea.Cmd {
	return loadStructures(m.inputFile)
}

func loadStructures(inputFile string) tea.Cmd {
	return func() tea.Msg {
		tree := btree.New[int64, int64](btree.DefaultOrder)
		table := exhash.New(exhash.DefaultBucketCapacity, exhash.DefaultGlobalDepth, nil)

		if _, err := loader.LoadFile(inputFile, tree); err != nil {
			return loadedMsg{err: err}
		}
		if _, err := loader.LoadFile(inputFile, table); err != nil {
			return loadedMsg{err: err}
		}

		return loadedMsg{
			treeDump:  tree.Dump(),
			tableDump: table.Dump(),
			treeInfo: fmt.Sprintf(" B+ tree | %d keys | %d leaves | order %d ",
				tree.Len(), tree.LeafCount(), tree.Order()),
			tableInfo: fmt.Sprintf(" Extendible hash | %d keys | %d buckets | depth %d | directory %d ",
				table.Len(), table.BucketCount(), table.GlobalDepth(), table.DirectorySize()),
		}
	}
}

func (m readerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.treeDump = msg.treeDump
		m.tableDump = msg.tableDump
		m.treeInfo = msg.treeInfo
		m.tableInfo = msg.tableInfo
		m.ready = true
		m.viewport.SetContent(m.currentDump())
		return m, nil

	case tea.WindowSizeMsg:
		m.viewport = viewport.New(msg.Width-4, msg.Height-8)
		if m.ready {
			m.viewport.SetContent(m.currentDump())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, readerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, readerKeys.Switch):
			if m.viewing == "btree" {
				m.viewing = "hash"
			} else {
				m.viewing = "btree"
			}
			m.viewport.SetContent(m.currentDump())
			m.viewport.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m readerModel) currentDump() string {
	if m.viewing == "btree" {
		return ui.BodyStyle.Render(m.treeDump)
	}
	return ui.BodyStyle.Render(m.tableDump)
}

func (m readerModel) View() string {
	if m.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Index Reader") + "\n")

	if !m.ready {
		b.WriteString("Loading " + m.inputFile + "...\n")
		return b.String()
	}

	b.WriteString(m.viewport.View() + "\n")

	status := m.treeInfo
	if m.viewing == "hash" {
		status = m.tableInfo
	}
	b.WriteString(ui.StatusBarStyle.Render(status))
	b.WriteString("\n" + ui.HelpStyle.Render("tab: switch structure | ↑/↓: scroll | q: quit"))

	return b.String()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: indexreader <key-file>")
		os.Exit(1)
	}

	p := tea.NewProgram(
		initialModel(os.Args[1]),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
