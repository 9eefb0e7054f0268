package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytdl-desktop/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir = "download_directory"
	KeyLanguage    = "app_language"
	KeyHistorySize = "invocation_history_size"
)

// Default values
const (
	DefaultLanguage    = "system"
	DefaultHistorySize = 50
	MaxHistorySize     = 500
)

// Settings manages shell preferences persisted by Fyne
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the directory the shell opens for the user
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetHistorySize returns how many invocations the shell keeps on screen
func (s *Settings) GetHistorySize() int {
	value := s.app.Preferences().Int(KeyHistorySize)
	if value <= 0 {
		s.SetHistorySize(DefaultHistorySize)
		return DefaultHistorySize
	}
	return value
}

// SetHistorySize sets the invocation history size, clamped to [1, MaxHistorySize]
func (s *Settings) SetHistorySize(size int) {
	if size < 1 {
		size = 1
	}
	if size > MaxHistorySize {
		size = MaxHistorySize
	}
	s.app.Preferences().SetInt(KeyHistorySize, size)
}
