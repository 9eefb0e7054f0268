package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdl-desktop/internal/model"
)

// InvocationRow renders one bridge invocation: status, command and target,
// elapsed time, and the error message when the call failed
type InvocationRow struct {
	widget.BaseWidget

	invocation model.Invocation

	statusText   *canvas.Text
	titleLabel   *widget.Label
	elapsedLabel *widget.Label
	errorLabel   *widget.Label
}

// NewInvocationRow creates a row showing inv
func NewInvocationRow(inv model.Invocation) *InvocationRow {
	row := &InvocationRow{}
	row.ExtendBaseWidget(row)

	row.statusText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	row.statusText.TextStyle = fyne.TextStyle{Bold: true}
	row.titleLabel = widget.NewLabel("")
	row.titleLabel.Truncation = fyne.TextTruncateEllipsis
	row.elapsedLabel = widget.NewLabel(DashPlaceholder)
	row.errorLabel = widget.NewLabel("")
	row.errorLabel.Importance = widget.DangerImportance
	row.errorLabel.Truncation = fyne.TextTruncateEllipsis
	row.errorLabel.Hide()

	row.SetInvocation(inv)
	return row
}

// SetInvocation updates the row with a new snapshot
func (row *InvocationRow) SetInvocation(inv model.Invocation) {
	row.invocation = inv

	row.statusText.Text = inv.Status.String()
	row.statusText.Color = theme.Color(StatusColorName(inv.Status))
	row.titleLabel.SetText(inv.GetDisplayTitle())
	row.elapsedLabel.SetText(inv.GetElapsedString())

	if inv.LastError != "" {
		row.errorLabel.SetText(IconError + " " + inv.LastError)
		row.errorLabel.Show()
	} else {
		row.errorLabel.SetText("")
		row.errorLabel.Hide()
	}

	row.statusText.Refresh()
}

// Invocation returns the snapshot currently shown
func (row *InvocationRow) Invocation() model.Invocation {
	return row.invocation
}

// CreateRenderer lays the row out as status | title | elapsed with the error below
func (row *InvocationRow) CreateRenderer() fyne.WidgetRenderer {
	status := container.NewGridWrap(fyne.NewSize(StatusLabelWidth, row.statusText.MinSize().Height), row.statusText)
	elapsed := container.NewGridWrap(fyne.NewSize(ElapsedLabelWidth, row.elapsedLabel.MinSize().Height), row.elapsedLabel)

	line := container.NewBorder(nil, nil, status, elapsed, row.titleLabel)
	return widget.NewSimpleRenderer(container.NewVBox(line, row.errorLabel))
}
