package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyHistorySize       = "history_size"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyBridgeListening   = "bridge_listening"
	KeyBridgeStopped     = "bridge_stopped"
	KeyCopyAddress       = "copy_address"
	KeyAddressCopied     = "address_copied"
	KeyOpenDownloads     = "open_downloads"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeyRecentCommands    = "recent_commands"
	KeyNoCommandsYet     = "no_commands_yet"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" and unknown codes fall back to English.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YTDL Desktop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyHistorySize:       "Commands Kept in History",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyBridgeListening:   "Bridge listening on",
		KeyBridgeStopped:     "Bridge is not running",
		KeyCopyAddress:       "Copy address",
		KeyAddressCopied:     "Address copied",
		KeyOpenDownloads:     "Open downloads",
		KeyErrorOpeningDir:   "Error opening directory",
		KeyRecentCommands:    "Recent commands",
		KeyNoCommandsYet:     "No commands received yet",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YTDL Desktop",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyHistorySize:       "Команд в истории",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyBridgeListening:   "Мост слушает",
		KeyBridgeStopped:     "Мост не запущен",
		KeyCopyAddress:       "Копировать адрес",
		KeyAddressCopied:     "Адрес скопирован",
		KeyOpenDownloads:     "Открыть загрузки",
		KeyErrorOpeningDir:   "Ошибка открытия папки",
		KeyRecentCommands:    "Последние команды",
		KeyNoCommandsYet:     "Команд пока не было",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YTDL Desktop",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyHistorySize:       "Comandos no Histórico",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyBridgeListening:   "Ponte escutando em",
		KeyBridgeStopped:     "A ponte não está em execução",
		KeyCopyAddress:       "Copiar endereço",
		KeyAddressCopied:     "Endereço copiado",
		KeyOpenDownloads:     "Abrir downloads",
		KeyErrorOpeningDir:   "Erro ao abrir diretório",
		KeyRecentCommands:    "Comandos recentes",
		KeyNoCommandsYet:     "Nenhum comando recebido ainda",
	}
}
