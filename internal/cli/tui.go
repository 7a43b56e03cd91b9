package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeshift/pkg/core/trigger"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

// heightStep is how much +/- change the expansion height.
const heightStep = 20.0

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the interactive browser command.
func (c *CLI) tuiCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "tui [graph.json]",
		Short: "Browse a graph and toggle node expansions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}
			m := newExpandModel(ws)
			defer m.close()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// settledMsg reports that every scheduled expansion has run.
type settledMsg struct{}

// ExpandModel is the bubbletea model for the interactive browser.
// Expansions run on a deferred watcher, so rapid toggling only applies the
// last request.
type ExpandModel struct {
	ws      *workspace
	queue   *trigger.Queue
	watcher *trigger.DeferredWatcher

	order  []string           // node IDs by original position
	origin map[string]float64 // original Y per node

	Cursor   int
	Offset   int
	Height   int
	Expanded string
	Amount   float64
	Settled  bool
}

func newExpandModel(ws *workspace) ExpandModel {
	nodes := ws.store.Nodes()
	slices.SortStableFunc(nodes, func(a, b *graph.Node) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	order := make([]string, len(nodes))
	origin := make(map[string]float64, len(nodes))
	for i, n := range nodes {
		order[i] = n.ID
		origin[n.ID] = n.Y
	}

	q := trigger.NewQueue()
	run := trigger.Expander(ws.rules.IsTransformational, ws.opts...)
	return ExpandModel{
		ws:      ws,
		queue:   q,
		watcher: trigger.NewDeferredWatcher(q, run),
		order:   order,
		origin:  origin,
		Height:  15,
		Amount:  ws.height,
		Settled: true,
	}
}

// close collapses the active expansion and stops the queue.
func (m ExpandModel) close() {
	m.watcher.Close()
	m.queue.Close()
}

// schedule reports the current selection to the watcher and returns a
// command that waits for the queue to settle.
func (m ExpandModel) schedule() tea.Cmd {
	if m.Expanded == "" {
		m.watcher.Close()
	} else {
		v := m.ws.store.Versions()
		m.watcher.Observe(trigger.Key{
			Inputs: trigger.Inputs{
				ID:           m.Expanded,
				ExpandHeight: m.Amount,
				RootType:     m.ws.root,
				Source:       m.ws.store,
			},
			NodesVersion: v.Nodes,
			EdgesVersion: v.Edges,
		})
	}
	q := m.queue
	return func() tea.Msg {
		q.Flush()
		return settledMsg{}
	}
}

func (m ExpandModel) Init() tea.Cmd {
	return nil
}

func (m ExpandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		m.Settled = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.order)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.order) == 0 {
				return m, nil
			}
			id := m.order[m.Cursor]
			if m.Expanded == id {
				m.Expanded = ""
			} else {
				m.Expanded = id
			}
			m.Settled = false
			return m, m.schedule()
		case "+", "=":
			m.Amount += heightStep
			if m.Expanded != "" {
				m.Settled = false
				return m, m.schedule()
			}
		case "-":
			m.Amount = max(0, m.Amount-heightStep)
			if m.Expanded != "" {
				m.Settled = false
				return m, m.schedule()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m ExpandModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("nodeshift"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  +/- height  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.order))
	rows := make([][]string, 0, end-m.Offset)
	shifted := make(map[int]bool)
	for i := m.Offset; i < end; i++ {
		id := m.order[i]
		n, ok := m.ws.store.Node(id)
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := ""
		switch {
		case id == m.Expanded:
			marker = "expanded"
		case m.ws.rules.IsTransformational(n, m.ws.root):
			marker = "fixed"
		}
		delta := ""
		if d := n.Y - m.origin[id]; d != 0 {
			delta = "+" + fmtNum(d)
			shifted[len(rows)] = true
		}
		rows = append(rows, []string{cursor, id, n.Kind, fmtNum(n.X), fmtNum(n.Y), delta, marker})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "X", "Y", "Δ", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case m.Offset+row == m.Cursor:
				return listSelectedStyle
			case shifted[row]:
				return StyleShifted
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d/%d]  height %s", m.Cursor+1, len(m.order), fmtNum(m.Amount))
	if m.Expanded != "" {
		status += "  expanded " + m.Expanded
	}
	if !m.Settled {
		status += "  …"
	}
	b.WriteString(listDimStyle.Render(status))
	return b.String()
}
