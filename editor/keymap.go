package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding
	DocStart, DocEnd      key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding
	Indent, Outdent   key.Binding

	ToggleCollapse     key.Binding
	MoveUp, MoveDown   key.Binding
	ToggleChecked      key.Binding
	CyclePriority      key.Binding
	Duplicate          key.Binding

	SelectBlock, SelectAll key.Binding
	ExtendUp, ExtendDown   key.Binding
	Escape                 key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		// Portable document jumps: terminals vary between ctrl+home and alt+home.
		DocStart: key.NewBinding(key.WithKeys("ctrl+home", "alt+home"), key.WithHelp("ctrl+home", "document start")),
		DocEnd:   key.NewBinding(key.WithKeys("ctrl+end", "alt+end"), key.WithHelp("ctrl+end", "document end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new block")),

		Indent:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Outdent: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent")),

		ToggleCollapse: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "fold/unfold")),
		MoveUp:         key.NewBinding(key.WithKeys("alt+up", "ctrl+up"), key.WithHelp("alt/ctrl+↑", "move block up")),
		MoveDown:       key.NewBinding(key.WithKeys("alt+down", "ctrl+down"), key.WithHelp("alt/ctrl+↓", "move block down")),
		ToggleChecked:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "toggle done")),
		CyclePriority:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "cycle priority")),
		Duplicate:      key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "duplicate block")),

		SelectBlock: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "select block")),
		SelectAll:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "select all")),
		ExtendUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend selection up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend selection down")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}
