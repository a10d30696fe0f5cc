package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DesignerTheme provides a custom theme for the application.
type DesignerTheme struct{}

var _ fyne.Theme = (*DesignerTheme)(nil)

func (t *DesignerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x45, G: 0x5A, B: 0x64, A: 0xFF} // keycap slate
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0x33, B: 0x33, A: 0x80} // matches the canvas highlight
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *DesignerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DesignerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *DesignerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
