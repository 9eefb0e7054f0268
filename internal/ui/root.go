package ui

import (
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdl-desktop/internal/bridge"
	"github.com/ytget/ytdl-desktop/internal/config"
	"github.com/ytget/ytdl-desktop/internal/logging"
	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/platform"
)

// Toast notification constants
const (
	RootToastAutoHide = 3 * time.Second
)

// RootUI represents the main shell window: bridge address, recent
// invocations and quick access to the download directory
type RootUI struct {
	window       fyne.Window
	registry     *bridge.Registry
	settings     *config.Settings
	localization *Localization
	bridgeURL    string

	addressLabel     *widget.Label
	copyBtn          *widget.Button
	openDownloadsBtn *widget.Button
	recentHeader     *widget.Label
	emptyLabel       *widget.Label
	invocationList   *widget.List

	invocationsMu sync.RWMutex
	invocations   []model.Invocation

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI. bridgeURL is the address the
// bridge listens on, empty when it is not running.
func NewRootUI(window fyne.Window, settings *config.Settings, registry *bridge.Registry, bridgeURL string) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		registry:     registry,
		settings:     settings,
		localization: localization,
		bridgeURL:    bridgeURL,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	registry.SetUpdateCallback(ui.onInvocationUpdate)

	ui.setupUI()
	ui.refreshInvocations()
	return ui
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.addressLabel = widget.NewLabel("")
	ui.addressLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ui.addressLabel.Truncation = fyne.TextTruncateEllipsis

	ui.copyBtn = widget.NewButton(IconCopy, ui.onCopyAddress)
	ui.copyBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.openDownloadsBtn = widget.NewButton("", ui.onOpenDownloads)

	topPanel := container.NewBorder(nil, nil, settingsBtn, container.NewHBox(ui.copyBtn, ui.openDownloadsBtn), ui.addressLabel)

	ui.recentHeader = widget.NewLabel("")
	ui.recentHeader.TextStyle = fyne.TextStyle{Bold: true}
	ui.emptyLabel = widget.NewLabel("")

	ui.invocationList = widget.NewList(
		func() int {
			ui.invocationsMu.RLock()
			defer ui.invocationsMu.RUnlock()
			return len(ui.invocations)
		},
		func() fyne.CanvasObject { return NewInvocationRow(model.Invocation{}) },
		ui.updateInvocationItem,
	)

	header := container.NewVBox(topPanel, widget.NewSeparator(), ui.recentHeader, ui.emptyLabel)
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, ui.invocationList))

	ui.refreshUITexts()
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText
	ui.window.SetTitle(text(KeyAppTitle))

	if ui.bridgeURL != "" {
		ui.addressLabel.SetText(text(KeyBridgeListening) + " " + ui.bridgeURL)
		ui.copyBtn.Enable()
	} else {
		ui.addressLabel.SetText(text(KeyBridgeStopped))
		ui.copyBtn.Disable()
	}

	ui.openDownloadsBtn.SetText(IconFolder + " " + text(KeyOpenDownloads))
	ui.recentHeader.SetText(text(KeyRecentCommands))
	ui.emptyLabel.SetText(text(KeyNoCommandsYet))
}

func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window)
	sd.OnSaved = ui.applySettings
	sd.Show()
}

// applySettings pushes saved settings into the running shell
func (ui *RootUI) applySettings() {
	ui.registry.SetHistorySize(ui.settings.GetHistorySize())
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
	ui.refreshInvocations()
}

func (ui *RootUI) onCopyAddress() {
	if ui.bridgeURL == "" {
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(ui.bridgeURL)
	ui.showToast(ui.localization.GetText(KeyAddressCopied))
}

func (ui *RootUI) onOpenDownloads() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		logging.Warn("Failed to create download directory", logging.Fields{
			logging.FieldPath:  dir,
			logging.FieldError: err,
		})
	}

	if err := platform.OpenFileWithDefaultApp(dir); err != nil {
		logging.Warn("Failed to open download directory", logging.Fields{
			logging.FieldPath:  dir,
			logging.FieldError: err,
		})
		ui.showToast(ui.localization.GetText(KeyErrorOpeningDir) + ": " + err.Error())
	}
}

func (ui *RootUI) showToast(message string) {
	popUp := widget.NewPopUp(widget.NewLabel(message), ui.window.Canvas())
	popUp.Show()
	time.AfterFunc(RootToastAutoHide, func() {
		fyne.Do(popUp.Hide)
	})
}

func (ui *RootUI) updateInvocationItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.invocationsMu.RLock()
	if id < 0 || id >= len(ui.invocations) {
		ui.invocationsMu.RUnlock()
		return
	}
	inv := ui.invocations[id]
	ui.invocationsMu.RUnlock()

	if row, ok := item.(*InvocationRow); ok {
		row.SetInvocation(inv)
	}
}

// refreshInvocations reloads the registry history and redraws the list.
// Must run on the UI goroutine.
func (ui *RootUI) refreshInvocations() {
	recent := ui.registry.Recent()

	ui.invocationsMu.Lock()
	ui.invocations = recent
	ui.invocationsMu.Unlock()

	if len(recent) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.invocationList.Refresh()
}

// shouldRefresh limits redraws while invocations are in flight; finished
// invocations always redraw so the final state is never skipped
func (ui *RootUI) shouldRefresh(inv model.Invocation) bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if !inv.Status.IsFinished() && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}

	ui.lastUIUpdate = now
	return true
}

// onInvocationUpdate is called by the registry from bridge goroutines
func (ui *RootUI) onInvocationUpdate(inv model.Invocation) {
	if !ui.shouldRefresh(inv) {
		return
	}
	fyne.Do(ui.refreshInvocations)
}
