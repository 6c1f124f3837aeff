package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	header := styleHeader.Render("Momentum")
	var body, help string
	switch m.view {
	case viewGoals:
		body = m.viewGoals()
		help = "space/enter: toggle  tab/esc: board  q: quit"
	default:
		body = m.viewBoard()
		if m.editing() {
			help = "enter: save  esc: cancel"
		} else {
			help = "space: toggle  a: add  e: edit  x: delete  N: new list  X: delete list  tab: goals  q: quit"
		}
	}

	footer := faintIfDark(styleMuted).Render(help)
	if m.flash != "" {
		footer = styleWarn.Render(m.flash)
	}
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m appModel) viewBoard() string {
	cols := m.lists.Collections()
	if len(cols) == 0 {
		return styleMuted.Render("no lists")
	}

	colW := 30
	if m.width > 0 {
		if w := m.width/len(cols) - 4; w < colW {
			colW = w
		}
	}
	if colW < 16 {
		colW = 16
	}

	rendered := make([]string, 0, len(cols))
	for ci, c := range cols {
		var b strings.Builder

		title := c.Title
		if c.Locked {
			title += " ⊝"
		}
		b.WriteString(truncate(styleColumnTitle.Render(title), colW))
		b.WriteString("\n")

		if len(c.Items) == 0 {
			b.WriteString(styleMuted.Render("empty"))
		}
		for ri, it := range c.Items {
			line := m.itemLine(c.ID, it.ID, it.Text, it.Completed, colW)
			if ci == m.col && ri == m.row && !m.editing() {
				line = styleSelected.Render(line)
			}
			b.WriteString(line)
			if ri < len(c.Items)-1 {
				b.WriteString("\n")
			}
		}

		style := styleColumn
		if ci == m.col {
			style = styleColumnHot
		}
		rendered = append(rendered, style.Width(colW+2).Render(b.String()))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.newList {
		out += "\n\n" + styleHeader.Render("New list: ") + m.input.View()
	}
	return out
}

func (m appModel) itemLine(colID, itemID, text string, completed bool, width int) string {
	if m.editItem == itemID && m.editCol == colID {
		return truncate("» "+m.input.View(), width)
	}
	box := "[ ] "
	body := text
	if completed {
		box = "[x] "
		body = styleDone.Render(text)
	}
	return truncate(box+body, width)
}

func (m appModel) viewGoals() string {
	rows := m.goalRows()
	if len(rows) == 0 {
		return styleMuted.Render("no goals")
	}

	var b strings.Builder
	for i, r := range rows {
		box := "[ ]"
		if r.completed {
			box = "[x]"
		}
		line := box + " " + r.text
		if r.subgoalID != "" {
			line = "    " + line
		} else if r.deadline != "" {
			line += styleMuted.Render(fmt.Sprintf("  (due %s)", r.deadline))
		}
		if i == m.goalRow {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, width int) string {
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Cut(s, 0, width)
}
