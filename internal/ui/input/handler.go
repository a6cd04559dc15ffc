package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"picturereel/internal/ui/input/types"
)

// Handler turns key presses into actions
type Handler struct {
	keys KeyMap
}

// New creates a handler with the default key map
func New() *Handler {
	return &Handler{keys: DefaultKeyMap()}
}

// Keys returns the key map, for rendering help
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey maps msg to actions. Unbound keys produce none.
func (h *Handler) HandleKey(msg tea.KeyMsg) []types.Action {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{}}
	case key.Matches(msg, h.keys.Previous):
		return []types.Action{types.PaginateAction{Delta: -1}}
	case key.Matches(msg, h.keys.Next):
		return []types.Action{types.PaginateAction{Delta: 1}}
	case key.Matches(msg, h.keys.Rescan):
		return []types.Action{types.RescanAction{}}
	case key.Matches(msg, h.keys.HelpPager):
		return []types.Action{types.OpenHelpPagerAction{}}
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}
	}
	return nil
}
