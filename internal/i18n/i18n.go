// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Shortcuts",
		"app_tooltip": "Shortcuts - глобальные сочетания клавиш",

		// Alerts
		"alert_title":            "Сочетание клавиш недоступно",
		"alert_menu_conflict":    "%s уже используется пунктом меню «%s».",
		"alert_name_conflict":    "%s уже назначено действию «%s».",
		"alert_disallowed":       "%s нельзя использовать: это сочетание нужно для ввода текста. Добавьте Ctrl или Cmd.",
		"alert_reserved":         "%s используется системой (%s). Назначение может не сработать.",
		"alert_reserved_unknown": "%s используется системой. Назначение может не сработать.",
		"alert_ok":               "OK",
		"alert_use_anyway":       "Всё равно использовать",

		// Tray menu
		"tray_pause":              "Приостановить сочетания",
		"tray_pause_hint":         "Временно отключить глобальные сочетания клавиш",
		"tray_paused":             "Сочетания приостановлены",
		"tray_not_set":            "не задано",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",
		"tray_settings":           "Настройки...",
		"tray_settings_hint":      "Изменить сочетания клавиш",

		// Settings window
		"settings_title":     "Сочетания клавиш",
		"settings_language":  "Язык интерфейса",
		"settings_shortcuts": "Действия",
		"settings_record":    "Нажмите, чтобы записать",
		"settings_recording": "Нажмите сочетание...",
		"settings_clear":     "Удалить",
		"settings_reset":     "По умолчанию",
		"settings_close":     "Закрыть",
		"settings_empty":     "Нет объявленных действий",

		// Notifications
		"notify_recorded": "Сочетание сохранено",
		"notify_cleared":  "Сочетание удалено",
		"notify_error":    "Ошибка",
		"notify_fired":    "Сработало «%s»",

		// Terminal recorder
		"tui_prompt":    "Нажмите сочетание для «%s»",
		"tui_current":   "Сейчас: %s",
		"tui_none":      "не задано",
		"tui_hint":      "Esc - отмена, Backspace - удалить, Tab - выйти",
		"tui_alert":     "Нажмите Enter, чтобы продолжить",
		"tui_reserved":  "Enter - OK, u - всё равно использовать",
		"tui_committed": "Сохранено: %s",
		"tui_cleared":   "Сочетание удалено",
		"tui_cancelled": "Запись отменена",
		"tui_failed":    "Не удалось сохранить: %v",

		// CLI
		"cli_ok":         "%s свободно",
		"cli_set":        "%s: %s",
		"cli_forced":     "%s назначено несмотря на системное использование",
		"cli_not_set":    "не задано",
		"cli_undeclared": "неизвестное имя «%s»",
	},

	EN: {
		// App
		"app_name":    "Shortcuts",
		"app_tooltip": "Shortcuts - global keyboard shortcuts",

		// Alerts
		"alert_title":            "Shortcut unavailable",
		"alert_menu_conflict":    "%s is already used by the menu item “%s”.",
		"alert_name_conflict":    "%s is already assigned to “%s”.",
		"alert_disallowed":       "%s can't be used because it is needed for typing. Add Ctrl or Cmd.",
		"alert_reserved":         "%s is used by the system (%s). It may not work here.",
		"alert_reserved_unknown": "%s is used by the system. It may not work here.",
		"alert_ok":               "OK",
		"alert_use_anyway":       "Use Anyway",

		// Tray menu
		"tray_pause":              "Pause shortcuts",
		"tray_pause_hint":         "Temporarily disable global shortcuts",
		"tray_paused":             "Shortcuts paused",
		"tray_not_set":            "not set",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close the application",
		"tray_settings":           "Settings...",
		"tray_settings_hint":      "Change keyboard shortcuts",

		// Settings window
		"settings_title":     "Keyboard Shortcuts",
		"settings_language":  "Interface language",
		"settings_shortcuts": "Actions",
		"settings_record":    "Click to record",
		"settings_recording": "Type shortcut...",
		"settings_clear":     "Clear",
		"settings_reset":     "Default",
		"settings_close":     "Close",
		"settings_empty":     "No actions declared",

		// Notifications
		"notify_recorded": "Shortcut saved",
		"notify_cleared":  "Shortcut cleared",
		"notify_error":    "Error",
		"notify_fired":    "“%s” triggered",

		// Terminal recorder
		"tui_prompt":    "Press a shortcut for “%s”",
		"tui_current":   "Current: %s",
		"tui_none":      "not set",
		"tui_hint":      "Esc cancels, Backspace clears, Tab leaves",
		"tui_alert":     "Press Enter to continue",
		"tui_reserved":  "Enter for OK, u to use anyway",
		"tui_committed": "Saved: %s",
		"tui_cleared":   "Shortcut cleared",
		"tui_cancelled": "Recording cancelled",
		"tui_failed":    "Could not save: %v",

		// CLI
		"cli_ok":         "%s is available",
		"cli_set":        "%s: %s",
		"cli_forced":     "%s assigned despite system use",
		"cli_not_set":    "not set",
		"cli_undeclared": "unknown name “%s”",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// Tf formats the translation for key with args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// ParseLanguage maps a config value onto a supported language.
func ParseLanguage(s string) (Language, bool) {
	for _, l := range AvailableLanguages() {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
