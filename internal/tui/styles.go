package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles derives every debug viewer style from one catppuccin flavor, so
// the terminal UI matches the in-world theme the engine renders with.
type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	return &Styles{flavor: flavorFromName(themeName)}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

// TitleStyle is the app name in the header.
func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Mauve().Hex))
}

// SubtitleStyle is the bridge URL line under the title.
func (s *Styles) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Subtext0().Hex))
}

// HelpStyle covers the status bar and other dim chrome.
func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

// InfoStyle is plain body text: log lines, empty states.
func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

// ItemStyle is an unselected session row.
func (s *Styles) ItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

// ItemDescStyle is the detail line of an unselected session row.
func (s *Styles) ItemDescStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Subtext0().Hex))
}

// SelectedStyle highlights the focused session row.
func (s *Styles) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Mauve().Hex))
}

// SelectedDescStyle is the detail line of the focused session row.
func (s *Styles) SelectedDescStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

// LiveStyle marks a session as alive.
func (s *Styles) LiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Green().Hex))
}
