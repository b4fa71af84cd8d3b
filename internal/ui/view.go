package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/hogwarts/internal/hogwarts"
)

type notification struct {
	text  string
	time  time.Time
	style lipgloss.Style
}

func (m AppModel) ViewContent() string {
	var b strings.Builder

	// Logo
	b.WriteString(m.styles.Title.Render(renderLogo(m.contentWidth())))
	b.WriteString("\n\n")

	// Header
	header := fmt.Sprintf("Hogwarts #%d │ %s │ %s", m.module.ID(), m.module.Stage(), formatDuration(m.now.Sub(m.startedAt)))
	if m.runID != "" {
		header += " │ run " + shortID(m.runID)
	}
	if n := m.signals.Strikes(); n > 0 {
		header += fmt.Sprintf(" │ strikes %d", n)
	}
	b.WriteString(m.styles.Header.Render("  " + header))
	b.WriteString("\n\n")

	switch m.module.Stage() {
	case hogwarts.StageSelection:
		b.WriteString(m.viewSelection())
	case hogwarts.StageResolutionPending:
		b.WriteString(m.viewResolution())
	case hogwarts.StageResolved:
		b.WriteString(m.styles.Success.Render("  The house cup has been awarded. Module solved."))
		b.WriteString("\n")
	}

	// Prompt
	if m.prompting {
		b.WriteString("\n  ")
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}

	// Notifications (newest first)
	if len(m.notifications) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── Notifications ──"))
		b.WriteString("\n")
		for i := len(m.notifications) - 1; i >= 0; i-- {
			n := m.notifications[i]
			ts := n.time.Format("15:04")
			line := fmt.Sprintf("  %s %s", ts, n.text)
			b.WriteString(n.style.Render(truncate(line, m.contentWidth())))
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  " + m.helpLine()))

	return b.String()
}

func (m AppModel) viewSelection() string {
	d, ok := m.module.Display()
	if !ok {
		return ""
	}
	banner := m.styles.Banner(d.House).Render(strings.ToUpper(d.House.String()))
	parchment := m.styles.Parchment.Render(d.Text)
	card := lipgloss.JoinVertical(lipgloss.Center, banner, parchment)

	var b strings.Builder
	for _, line := range strings.Split(card, "\n") {
		b.WriteString("  " + line + "\n")
	}
	pos := fmt.Sprintf("  %d / %d", m.module.Cursor()+1, m.module.Len())
	b.WriteString(m.styles.HelpActive.Render(pos))
	b.WriteString("\n")

	if m.walk != nil {
		b.WriteString(m.styles.Notification.Render(fmt.Sprintf("  walking, %d steps left (esc to cancel)", m.walk.Remaining())))
		b.WriteString("\n")
	}
	return b.String()
}

func (m AppModel) viewResolution() string {
	var b strings.Builder
	b.WriteString(m.styles.HelpActive.Render("  Every task is done. Which house won the house cup?"))
	b.WriteString("\n\n")
	b.WriteString(m.houses.View())
	b.WriteString("\n")
	return b.String()
}

func (m AppModel) helpLine() string {
	if m.prompting {
		return "enter: run │ esc: close"
	}
	switch m.module.Stage() {
	case hogwarts.StageSelection:
		return "←/→: browse │ home/end: first/last │ :: command │ esc: stop walk │ q: quit"
	case hogwarts.StageResolutionPending:
		return "↑/↓ enter or 1-4: choose house │ :: command │ q: quit"
	default:
		return "q: quit"
	}
}

func (m AppModel) contentWidth() int {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	return maxWidth - 6
}

func (m AppModel) View() string {
	content := m.ViewContent()

	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}

	return m.styles.Border.Width(maxWidth).Render(content)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// shortID returns the first block of a uuid.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
