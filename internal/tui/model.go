package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"waypoint/internal/engine"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	session *engine.Session
	quests  []engine.Quest

	expanded map[string]bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	session *engine.Session
	quests  []engine.Quest
	err     error
}

type completedMsg struct {
	res engine.CompleteResult
	ok  bool
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		expanded: map[string]bool{},
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		sess, ok := m.svc.Active()
		if !ok {
			return loadedMsg{err: fmt.Errorf("no active session; run `wp new` first")}
		}
		return loadedMsg{session: sess, quests: m.svc.DailyQuests()}
	}
}

func (m boardModel) completeCmd(nodeID, subNodeID string, idx int) tea.Cmd {
	return func() tea.Msg {
		res, ok := m.svc.CompleteTask(m.ctx, nodeID, subNodeID, idx)
		return completedMsg{res: res, ok: ok}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.session = msg.session
		m.quests = msg.quests
		// Default-expand the active node so the next task is visible.
		if m.session.Roadmap != nil {
			for _, n := range m.session.Roadmap.Nodes {
				if n.Status == engine.NodeActive {
					m.expanded[n.ID] = true
					for _, sn := range n.SubNodes {
						m.expanded[sn.ID] = true
					}
				}
			}
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if !msg.ok {
			m.lastLog = "Task not found."
			return m, nil
		}
		if msg.res.AlreadyDone {
			m.lastLog = "Already completed."
			return m, m.loadCmd()
		}
		note := fmt.Sprintf("Completed. Streak: %d day(s).", msg.res.Streak)
		if len(msg.res.Unlocked) > 0 {
			note += fmt.Sprintf(" Unlocked %d milestone(s)!", len(msg.res.Unlocked))
		}
		m.lastLog = note
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			lines := m.mapLines()
			if m.selected < len(lines)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			lines := m.mapLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			line := lines[m.selected]
			if line.hasChildren {
				m.expanded[line.id] = !m.expanded[line.id]
			}
			return m, nil
		case "c", " ":
			lines := m.mapLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			line := lines[m.selected]
			if line.kind != lineTask {
				m.lastLog = "Select a task to complete."
				return m, nil
			}
			if line.locked {
				m.lastLog = "That milestone is still locked."
				return m, nil
			}
			if line.done {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = "Completing…"
			return m, m.completeCmd(line.nodeID, line.subNodeID, line.taskIdx)
		}
	}
	return m, nil
}

type lineKind int

const (
	lineNode lineKind = iota
	lineSubNode
	lineTask
)

type mapLine struct {
	kind        lineKind
	id          string
	nodeID      string
	subNodeID   string
	taskIdx     int
	depth       int
	title       string
	status      engine.NodeStatus
	done        bool
	locked      bool
	hasChildren bool
	expanded    bool
}

func (m boardModel) mapLines() []mapLine {
	if m.session == nil || m.session.Roadmap == nil {
		return nil
	}
	var out []mapLine
	for _, n := range m.session.Roadmap.Nodes {
		locked := n.Status == engine.NodeLocked
		out = append(out, mapLine{
			kind:        lineNode,
			id:          n.ID,
			nodeID:      n.ID,
			depth:       0,
			title:       n.Title,
			status:      n.Status,
			locked:      locked,
			hasChildren: len(n.SubNodes) > 0,
			expanded:    m.expanded[n.ID],
		})
		if !m.expanded[n.ID] {
			continue
		}
		for _, sn := range n.SubNodes {
			out = append(out, mapLine{
				kind:        lineSubNode,
				id:          sn.ID,
				nodeID:      n.ID,
				subNodeID:   sn.ID,
				depth:       1,
				title:       sn.Title,
				locked:      locked,
				hasChildren: len(sn.Tasks) > 0,
				expanded:    m.expanded[sn.ID],
			})
			if !m.expanded[sn.ID] {
				continue
			}
			for k, t := range sn.Tasks {
				out = append(out, mapLine{
					kind:      lineTask,
					id:        fmt.Sprintf("%s/%s/%d", n.ID, sn.ID, k),
					nodeID:    n.ID,
					subNodeID: sn.ID,
					taskIdx:   k,
					depth:     2,
					title:     t.Title,
					done:      t.Completed,
					locked:    locked,
				})
			}
		}
	}
	if m.selected >= len(out) {
		m.selected = len(out) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.session == nil {
		return "Waypoint — loading…"
	}
	done, total := m.session.Progress()
	bar := progressBar(done, total, 30)
	return fmt.Sprintf("Waypoint | %s | %s | %d/%d tasks %s",
		m.session.Role, phaseLabel(m.session.Phase), done, total, bar)
}

func phaseLabel(p engine.Phase) string {
	switch p {
	case engine.PhaseAssessment:
		return "assessment"
	case engine.PhaseRoadmap:
		return "roadmap"
	default:
		return string(p)
	}
}

func (m boardModel) renderSidebar() string {
	if m.session == nil {
		return "Today\n\nLoading…"
	}
	lines := []string{"Today"}
	if m.session.Streak > 0 {
		lines = append(lines, fmt.Sprintf("- streak: %d day(s)", m.session.Streak))
	} else {
		lines = append(lines, "- no streak yet")
	}
	if len(m.quests) == 0 {
		lines = append(lines, "- no quests (finish assessment?)")
	} else {
		lines = append(lines, "")
		lines = append(lines, "Daily quests")
		for _, q := range m.quests {
			lines = append(lines, "- "+truncate(q.Title, 26))
		}
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: expand/collapse")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	if m.session.Phase != engine.PhaseRoadmap || m.session.Roadmap == nil {
		return "Roadmap not generated yet.\nAnswer the assessment with `wp answer` first."
	}

	var out []string
	out = append(out, "Roadmap")

	lines := m.mapLines()
	if len(lines) == 0 {
		out = append(out, "(generating…)")
		return strings.Join(out, "\n")
	}
	for i, ln := range lines {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		indent := strings.Repeat("  ", ln.depth)
		fold := "  "
		if ln.hasChildren {
			if ln.expanded {
				fold = "▾ "
			} else {
				fold = "▸ "
			}
		}
		switch ln.kind {
		case lineNode:
			out = append(out, fmt.Sprintf("%s%s%s%s (%s)", cursor, indent, fold, ln.title, ln.status))
		case lineSubNode:
			out = append(out, fmt.Sprintf("%s%s%s%s", cursor, indent, fold, ln.title))
		case lineTask:
			mark := "[ ]"
			if ln.done {
				mark = "[x]"
			}
			out = append(out, fmt.Sprintf("%s%s%s %s", cursor, indent, mark, ln.title))
		}
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
