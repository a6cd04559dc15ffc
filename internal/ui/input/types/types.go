package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// PaginateAction steps the carousel; Delta is -1 or +1
type PaginateAction struct {
	Delta int
}

func (a PaginateAction) Type() string { return "paginate" }

// ToggleHelpAction expands or collapses the help bar
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// OpenHelpPagerAction shows the full help in the pager
type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

// RescanAction rescans the picture directory
type RescanAction struct{}

func (a RescanAction) Type() string { return "rescan" }

// QuitAction exits the program
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
