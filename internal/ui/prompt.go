package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/hogwarts/internal/house"
)

func newPrompt(s Styles) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.PromptStyle = s.Prompt
	ti.Placeholder = "find <text>, cycle <n>, g/r/s/h, help"
	ti.CharLimit = 64
	return ti
}

type houseItem struct {
	house house.House
}

func (h houseItem) Title() string {
	return fmt.Sprintf("%d  %s", int(h.house)+1, h.house)
}
func (h houseItem) Description() string { return "" }
func (h houseItem) FilterValue() string { return h.house.String() }

// newHousePicker builds the stage 2 list of the four houses.
func newHousePicker(s Styles) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(s.Prompt.GetForeground()).
		Foreground(s.Prompt.GetForeground()).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().Padding(0, 0, 0, 2)

	items := make([]list.Item, 0, house.Count)
	for _, h := range house.All() {
		items = append(items, houseItem{house: h})
	}

	l := list.New(items, delegate, 40, house.Count)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}
