package ui

// Action represents an operation triggered by a keybinding.
type Action string

const (
	ActionNone          Action = ""
	ActionQuit          Action = "quit"
	ActionUp            Action = "up"
	ActionDown          Action = "down"
	ActionTop           Action = "top"
	ActionBottom        Action = "bottom"
	ActionPageUp        Action = "page_up"
	ActionPageDown      Action = "page_down"
	ActionBackspace     Action = "backspace"
	ActionClearInput    Action = "clear_input"
	ActionSpreadSort    Action = "spread_sort"
	ActionEnterDetail   Action = "enter_detail"
	ActionEscape        Action = "escape"
	ActionBack          Action = "back"
	ActionTogglePercent Action = "toggle_percent"
	ActionToggleSMA     Action = "toggle_sma"
	ActionToggleMidline Action = "toggle_midline"
	ActionManualRefresh Action = "manual_refresh"
)

// pageSize is how many rows PageUp/PageDown move the selection.
const pageSize = 20

// SearchKeyBindings maps keys to actions in the search view. Keys not in
// this map fall through to text input in Insert mode.
var SearchKeyBindings = map[string]Action{
	"ctrl+c":    ActionQuit,
	"esc":       ActionEscape,
	"up":        ActionUp,
	"down":      ActionDown,
	"ctrl+up":   ActionTop,
	"ctrl+down": ActionBottom,
	"pgup":      ActionPageUp,
	"pgdown":    ActionPageDown,
	"home":      ActionTop,
	"end":       ActionBottom,
	"backspace": ActionBackspace,
	"delete":    ActionClearInput,
	"ctrl+s":    ActionSpreadSort,
	"enter":     ActionEnterDetail,
}

// DetailKeyBindings maps keys to actions in the detail view.
var DetailKeyBindings = map[string]Action{
	"ctrl+c": ActionQuit,
	"esc":    ActionBack,
	"b":      ActionBack,
	"p":      ActionTogglePercent,
	"m":      ActionToggleSMA,
	"g":      ActionToggleMidline,
	"r":      ActionManualRefresh,
}
