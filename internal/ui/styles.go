package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/hogwarts/internal/config"
	"github.com/simonbystrom/hogwarts/internal/house"
)

// Styles holds every lipgloss style the UI renders with.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Parchment    lipgloss.Style
	Notification lipgloss.Style
	Help         lipgloss.Style
	HelpActive   lipgloss.Style
	Border       lipgloss.Style
	Prompt       lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style

	banners [house.Count]lipgloss.Style
}

const bannerWidth = 25

func NewStyles(c config.Colors) Styles {
	s := Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Parchment: lipgloss.NewStyle().
			Background(lipgloss.Color(c.Parchment)).
			Foreground(lipgloss.Color(c.Ink)).
			Width(bannerWidth).
			Height(2).
			Align(lipgloss.Center).
			Padding(1, 0),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Notification)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		HelpActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.HelpActive)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(1, 2),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Prompt)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Success)).
			Bold(true),
	}

	houseColors := [house.Count]string{c.Gryffindor, c.Ravenclaw, c.Slytherin, c.Hufflepuff}
	for i, color := range houseColors {
		s.banners[i] = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color(c.BannerFG)).
			Width(bannerWidth).
			Align(lipgloss.Center)
	}
	return s
}

// Banner returns the banner style for h.
func (s Styles) Banner(h house.House) lipgloss.Style {
	if !h.Valid() {
		return s.Header
	}
	return s.banners[h]
}

// HouseText returns a foreground-only style in h's color.
func (s Styles) HouseText(h house.House) lipgloss.Style {
	if !h.Valid() {
		return s.Header
	}
	return lipgloss.NewStyle().Bold(true).Foreground(s.banners[h].GetBackground())
}
