// Package i18n holds the UI translation tables. A Catalog is built once at
// startup and passed into the presentation layer; there is no process-wide
// mutable table.
package i18n

type Language string

const (
	LangEN Language = "en"
	LangES Language = "es"
)

type Key string

const (
	KeyAppTitle      Key = "app_title"
	KeyMenuHint      Key = "menu_hint"
	KeyStateIdle     Key = "state_idle"
	KeyStateStarting Key = "state_starting"
	KeyStateRunning  Key = "state_running"
	KeyStateDone     Key = "state_done"
	KeyStateFailed   Key = "state_failed"
	KeyStatsDeleted  Key = "stats_deleted"
	KeyStatsFailed   Key = "stats_failed"
	KeyStatsFreed    Key = "stats_freed"
	KeyHintCancel    Key = "hint_cancel"
	KeyHintBack      Key = "hint_back"
	KeyHintQuit      Key = "hint_quit"
	KeyHintLaunch    Key = "hint_launch"
	KeyHintInfo      Key = "hint_info"
	KeyBusyNotice    Key = "busy_notice"
	KeyInfoTitle     Key = "info_title"
)

var english = map[Key]string{
	KeyAppTitle:      "tuneup — system maintenance",
	KeyMenuHint:      "↑/↓ select · enter run · i info · q quit",
	KeyStateIdle:     "idle",
	KeyStateStarting: "starting...",
	KeyStateRunning:  "running",
	KeyStateDone:     "completed",
	KeyStateFailed:   "failed",
	KeyStatsDeleted:  "deleted",
	KeyStatsFailed:   "failed",
	KeyStatsFreed:    "freed",
	KeyHintCancel:    "c cancel",
	KeyHintBack:      "esc back",
	KeyHintQuit:      "q quit",
	KeyHintLaunch:    "enter run",
	KeyHintInfo:      "i info",
	KeyBusyNotice:    "an operation is already running",
	KeyInfoTitle:     "system information",
}

var spanish = map[Key]string{
	KeyAppTitle:      "tuneup — mantenimiento del sistema",
	KeyMenuHint:      "↑/↓ elegir · enter ejecutar · i info · q salir",
	KeyStateIdle:     "inactivo",
	KeyStateStarting: "iniciando...",
	KeyStateRunning:  "ejecutando",
	KeyStateDone:     "completado",
	KeyStateFailed:   "fallido",
	KeyStatsDeleted:  "eliminados",
	KeyStatsFailed:   "fallidos",
	KeyStatsFreed:    "liberado",
	KeyHintCancel:    "c cancelar",
	KeyHintBack:      "esc volver",
	KeyHintQuit:      "q salir",
	KeyHintLaunch:    "enter ejecutar",
	KeyHintInfo:      "i info",
	KeyBusyNotice:    "ya hay una operación en ejecución",
	KeyInfoTitle:     "información del sistema",
}

// Catalog is an immutable view over one language's table with an English
// fallback for missing keys.
type Catalog struct {
	lang  Language
	table map[Key]string
}

func New(lang Language) Catalog {
	switch lang {
	case LangES:
		return Catalog{lang: LangES, table: spanish}
	default:
		return Catalog{lang: LangEN, table: english}
	}
}

func (c Catalog) Language() Language {
	return c.lang
}

func (c Catalog) T(key Key) string {
	if text, ok := c.table[key]; ok {
		return text
	}
	if text, ok := english[key]; ok {
		return text
	}
	return string(key)
}
