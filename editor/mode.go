package editor

import "github.com/rs/zerolog"

// Mode is the single active interaction state. Exactly one mode is current at
// any time; it serializes otherwise-racing input handlers onto one
// authoritative state.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeTyping
	ModeSelecting
	ModeBlockSelect
	ModeDragging
	ModeNavigating
	ModeCommand
	ModeComposing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeTyping:
		return "typing"
	case ModeSelecting:
		return "selecting"
	case ModeBlockSelect:
		return "block-select"
	case ModeDragging:
		return "dragging"
	case ModeNavigating:
		return "navigating"
	case ModeCommand:
		return "command"
	case ModeComposing:
		return "composing"
	default:
		return "unknown"
	}
}

// ModeManager owns the current interaction mode. Transitions are explicit
// calls; temporary modes nest through Push/Pop.
type ModeManager struct {
	current Mode
	stack   []Mode
	subs    []func(next, prev Mode)
	log     zerolog.Logger
}

func NewModeManager(log zerolog.Logger) *ModeManager {
	return &ModeManager{current: ModeIdle, log: log}
}

func (m *ModeManager) Current() Mode { return m.current }

// Subscribe registers a transition callback, invoked after every effective
// mode change.
func (m *ModeManager) Subscribe(fn func(next, prev Mode)) {
	if fn != nil {
		m.subs = append(m.subs, fn)
	}
}

// Set transitions to next. Illegal transitions are refused.
func (m *ModeManager) Set(next Mode) bool {
	if next == m.current {
		return true
	}
	if !m.CanTransitionTo(next) {
		m.log.Warn().Stringer("from", m.current).Stringer("to", next).Msg("mode transition refused")
		return false
	}
	prev := m.current
	m.current = next
	m.notify(next, prev)
	return true
}

// Push enters a temporary mode, remembering the current one.
func (m *ModeManager) Push(next Mode) bool {
	prev := m.current
	if !m.Set(next) {
		return false
	}
	m.stack = append(m.stack, prev)
	return true
}

// Pop returns to the mode active before the matching Push. Without one it
// falls back to idle.
func (m *ModeManager) Pop() Mode {
	next := ModeIdle
	if n := len(m.stack); n > 0 {
		next = m.stack[n-1]
		m.stack = m.stack[:n-1]
	}
	m.Set(next)
	return m.current
}

// CanTransitionTo guards the small set of illegal direct transitions: IME
// composition and dragging never hand off to each other directly, and a drag
// can only start from idle or block selection.
func (m *ModeManager) CanTransitionTo(next Mode) bool {
	from := m.current
	switch {
	case from == ModeComposing && next == ModeDragging:
		return false
	case from == ModeDragging && next == ModeComposing:
		return false
	case next == ModeDragging && from != ModeIdle && from != ModeBlockSelect:
		return false
	}
	return true
}

// IsIntentAllowed gates intents per mode. Disallowed intents are rejected by
// the resolver before any mutation.
func (m *ModeManager) IsIntentAllowed(k IntentKind) bool {
	switch m.current {
	case ModeIdle:
		return true
	case ModeTyping:
		return isTextIntent(k) || isHistoryIntent(k) || isNavIntent(k) ||
			isClipboardIntent(k) || isStructureIntent(k) || isSelectionIntent(k)
	case ModeSelecting:
		return isSelectionIntent(k) || isNavIntent(k) || isClipboardIntent(k) ||
			k == IntentDeleteSelection || k == IntentInsertText
	case ModeBlockSelect:
		return isSelectionIntent(k) || isNavIntent(k) || isClipboardIntent(k) ||
			isStructureIntent(k) || isHistoryIntent(k) ||
			k == IntentDeleteSelection || k == IntentInsertSiblingAfter ||
			k == IntentDuplicateBlock || k == IntentToggleChecked
	case ModeDragging:
		return k == IntentMoveBlockUp || k == IntentMoveBlockDown || k == IntentClearSelection
	case ModeNavigating:
		return isNavIntent(k) || isSelectionIntent(k)
	case ModeCommand:
		return isNavIntent(k) || k == IntentClearSelection
	case ModeComposing:
		return k == IntentInsertText
	default:
		return false
	}
}

func (m *ModeManager) notify(next, prev Mode) {
	m.log.Debug().Stringer("from", prev).Stringer("to", next).Msg("mode changed")
	for _, fn := range m.subs {
		fn(next, prev)
	}
}

func isTextIntent(k IntentKind) bool {
	switch k {
	case IntentInsertText, IntentDeleteBackward, IntentDeleteForward,
		IntentSplitBlock, IntentMergeBackward, IntentMergeForward,
		IntentConvertBlock, IntentConvertToParagraph, IntentExitWrapper:
		return true
	}
	return false
}

func isStructureIntent(k IntentKind) bool {
	switch k {
	case IntentIndent, IntentOutdent, IntentCollapse, IntentExpand,
		IntentToggleCollapse, IntentMoveBlockUp, IntentMoveBlockDown,
		IntentInsertSiblingAfter, IntentInsertSiblingBefore, IntentInsertChild,
		IntentInsertAfterSubtree, IntentDeleteBlock, IntentDuplicateBlock,
		IntentToggleChecked, IntentCyclePriority:
		return true
	}
	return false
}

func isSelectionIntent(k IntentKind) bool {
	switch k {
	case IntentSelectBlock, IntentSelectAll, IntentExtendSelectionUp,
		IntentExtendSelectionDown, IntentClearSelection, IntentDeleteSelection:
		return true
	}
	return false
}

func isNavIntent(k IntentKind) bool {
	switch k {
	case IntentCaretUp, IntentCaretDown, IntentCaretLeft, IntentCaretRight,
		IntentCaretLineStart, IntentCaretLineEnd, IntentCaretDocStart, IntentCaretDocEnd:
		return true
	}
	return false
}

func isClipboardIntent(k IntentKind) bool {
	switch k {
	case IntentCopy, IntentCut, IntentPaste, IntentPastePlainText:
		return true
	}
	return false
}

func isHistoryIntent(k IntentKind) bool {
	return k == IntentUndo || k == IntentRedo
}
