package editor

import "github.com/iw2rmb/lattice/block"

// IntentKind identifies the semantic action requested by input handling,
// decoupled from the mutation that fulfills it.
type IntentKind uint8

const (
	IntentNone IntentKind = iota

	// Text editing.
	IntentInsertText
	IntentDeleteBackward
	IntentDeleteForward

	// Block creation.
	IntentInsertSiblingAfter
	IntentInsertSiblingBefore
	IntentInsertChild
	IntentInsertAfterSubtree
	IntentSplitBlock
	IntentDuplicateBlock

	// Block removal and merging.
	IntentDeleteBlock
	IntentDeleteSelection
	IntentMergeBackward
	IntentMergeForward

	// Conversion.
	IntentConvertBlock
	IntentConvertToParagraph
	IntentExitWrapper

	// Structure.
	IntentIndent
	IntentOutdent
	IntentCollapse
	IntentExpand
	IntentToggleCollapse
	IntentMoveBlockUp
	IntentMoveBlockDown

	// Task attributes.
	IntentToggleChecked
	IntentCyclePriority

	// Selection.
	IntentSelectBlock
	IntentSelectAll
	IntentExtendSelectionUp
	IntentExtendSelectionDown
	IntentClearSelection

	// Navigation.
	IntentCaretUp
	IntentCaretDown
	IntentCaretLeft
	IntentCaretRight
	IntentCaretLineStart
	IntentCaretLineEnd
	IntentCaretDocStart
	IntentCaretDocEnd

	// Clipboard.
	IntentCopy
	IntentCut
	IntentPaste
	IntentPastePlainText

	// History.
	IntentUndo
	IntentRedo
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentInsertText:
		return "insert-text"
	case IntentDeleteBackward:
		return "delete-backward"
	case IntentDeleteForward:
		return "delete-forward"
	case IntentInsertSiblingAfter:
		return "insert-sibling-after"
	case IntentInsertSiblingBefore:
		return "insert-sibling-before"
	case IntentInsertChild:
		return "insert-child"
	case IntentInsertAfterSubtree:
		return "insert-after-subtree"
	case IntentSplitBlock:
		return "split-block"
	case IntentDuplicateBlock:
		return "duplicate-block"
	case IntentDeleteBlock:
		return "delete-block"
	case IntentDeleteSelection:
		return "delete-selection"
	case IntentMergeBackward:
		return "merge-backward"
	case IntentMergeForward:
		return "merge-forward"
	case IntentConvertBlock:
		return "convert-block"
	case IntentConvertToParagraph:
		return "convert-to-paragraph"
	case IntentExitWrapper:
		return "exit-wrapper"
	case IntentIndent:
		return "indent"
	case IntentOutdent:
		return "outdent"
	case IntentCollapse:
		return "collapse"
	case IntentExpand:
		return "expand"
	case IntentToggleCollapse:
		return "toggle-collapse"
	case IntentMoveBlockUp:
		return "move-block-up"
	case IntentMoveBlockDown:
		return "move-block-down"
	case IntentToggleChecked:
		return "toggle-checked"
	case IntentCyclePriority:
		return "cycle-priority"
	case IntentSelectBlock:
		return "select-block"
	case IntentSelectAll:
		return "select-all"
	case IntentExtendSelectionUp:
		return "extend-selection-up"
	case IntentExtendSelectionDown:
		return "extend-selection-down"
	case IntentClearSelection:
		return "clear-selection"
	case IntentCaretUp:
		return "caret-up"
	case IntentCaretDown:
		return "caret-down"
	case IntentCaretLeft:
		return "caret-left"
	case IntentCaretRight:
		return "caret-right"
	case IntentCaretLineStart:
		return "caret-line-start"
	case IntentCaretLineEnd:
		return "caret-line-end"
	case IntentCaretDocStart:
		return "caret-doc-start"
	case IntentCaretDocEnd:
		return "caret-doc-end"
	case IntentCopy:
		return "copy"
	case IntentCut:
		return "cut"
	case IntentPaste:
		return "paste"
	case IntentPastePlainText:
		return "paste-plain-text"
	case IntentUndo:
		return "undo"
	case IntentRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Intent is a typed semantic action emitted from key processing.
type Intent struct {
	Kind    IntentKind
	Payload any
}

// InsertTextPayload describes a text insertion.
type InsertTextPayload struct {
	Text string
}

// ConvertPayload describes an in-place block conversion.
type ConvertPayload struct {
	Kind  block.Kind
	Attrs block.Attrs
}

// PastePlainTextPayload carries external plain text for paste.
type PastePlainTextPayload struct {
	Text string
}

func insertText(s string) Intent {
	return Intent{Kind: IntentInsertText, Payload: InsertTextPayload{Text: s}}
}

func intent(k IntentKind) Intent { return Intent{Kind: k} }
