package render

import catppuccin "github.com/catppuccin/go"

// Theme maps widget states to a catppuccin flavor's palette.
type Theme struct {
	flavor catppuccin.Flavor
}

// NewTheme resolves a flavor by name, defaulting to mocha.
func NewTheme(name string) *Theme {
	return &Theme{flavor: flavorFromName(name)}
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

// Panel is the backdrop color for pages and containers.
func (t *Theme) Panel() string {
	return t.flavor.Surface0().Hex
}

// Widget is the idle color for interactive elements.
func (t *Theme) Widget() string {
	return t.flavor.Blue().Hex
}

// WidgetHovered is the color for the element currently under the viewer's
// look ray.
func (t *Theme) WidgetHovered() string {
	return t.flavor.Teal().Hex
}

// Handle is the color for move/resize drag grabbers.
func (t *Theme) Handle() string {
	return t.flavor.Peach().Hex
}

// HandleArmed is the color for a grabber currently driving a drag.
func (t *Theme) HandleArmed() string {
	return t.flavor.Red().Hex
}

// Text is the foreground color for labels.
func (t *Theme) Text() string {
	return t.flavor.Text().Hex
}
