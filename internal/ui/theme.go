package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/ytdl-desktop/internal/model"
)

// ShellTheme is the compact theme of the shell window
type ShellTheme struct{}

// NewShellTheme creates the shell theme
func NewShellTheme() fyne.Theme {
	return &ShellTheme{}
}

// Color returns theme colors
func (t *ShellTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

func (t *ShellTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ShellTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with reduced padding and text
func (t *ShellTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 10
	}

	return theme.DefaultTheme().Size(name)
}

// StatusColorName maps an invocation status to the theme color it is drawn in
func StatusColorName(status model.InvocationStatus) fyne.ThemeColorName {
	switch status {
	case model.StatusCompleted:
		return theme.ColorNameSuccess
	case model.StatusError:
		return theme.ColorNameError
	case model.StatusRunning:
		return theme.ColorNamePrimary
	default:
		return theme.ColorNameForeground
	}
}
