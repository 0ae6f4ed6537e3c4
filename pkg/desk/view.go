package desk

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const keyHints = "l/a/d login  L roles  s signup  n add  x delete  y copy  o logout  / filter  ? help  q quit"

func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	header := m.headerView(width)
	footer := m.footerView(width)
	bodyHeight := max(1, height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := m.panel.view(width, bodyHeight)

	// Pad so the footer sits on the last line
	if gap := bodyHeight - lipgloss.Height(body); gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	background := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return m.modals.View(background, width, height)
}

func (m Model) headerView(width int) string {
	left := headerStyle.Render("clinic desk") + " " + routeStyle.Render(m.route)

	right := routeStyle.Render("not logged in")
	if m.session != nil {
		who := m.session.User
		if who == "" {
			who = "signed in"
		}
		right = userStyle.Render(who) + routeStyle.Render(" ("+string(m.session.Role)+")")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left+" "+right, width, "…") + "\n"
	}
	return left + strings.Repeat(" ", gap) + right + "\n"
}

func (m Model) footerView(width int) string {
	var lines []string
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		lines = append(lines, ansi.Truncate(style.Render(m.status), width, "…"))
	}
	lines = append(lines, ansi.Truncate(hintStyle.Render(keyHints), width, "…"))
	return strings.Join(lines, "\n")
}
