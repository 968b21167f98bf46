package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/lattice/block"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Bracketed paste always goes through the external-text paste path and
	// never triggers shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.resolver.Resolve(Intent{
				Kind:    IntentPastePlainText,
				Payload: PastePlainTextPayload{Text: string(msg.Runes)},
			})
		}
		return m
	}

	km := m.cfg.KeyMap
	ro := m.cfg.ReadOnly

	switch {
	case key.Matches(msg, km.Left):
		m.resolver.Resolve(intent(IntentCaretLeft))
	case key.Matches(msg, km.Right):
		m.resolver.Resolve(intent(IntentCaretRight))
	case key.Matches(msg, km.Up):
		m.resolver.Resolve(intent(IntentCaretUp))
	case key.Matches(msg, km.Down):
		m.resolver.Resolve(intent(IntentCaretDown))
	case key.Matches(msg, km.Home):
		m.resolver.Resolve(intent(IntentCaretLineStart))
	case key.Matches(msg, km.End):
		m.resolver.Resolve(intent(IntentCaretLineEnd))
	case key.Matches(msg, km.DocStart):
		m.resolver.Resolve(intent(IntentCaretDocStart))
	case key.Matches(msg, km.DocEnd):
		m.resolver.Resolve(intent(IntentCaretDocEnd))

	case key.Matches(msg, km.Enter):
		if !ro {
			m.dispatch(m.enterRules)
			m.modes.Set(ModeTyping)
		}
	case key.Matches(msg, km.Backspace):
		if !ro {
			m.dispatch(m.backspaceRules)
			m.modes.Set(ModeTyping)
		}
	case key.Matches(msg, km.Delete):
		if !ro {
			m.dispatch(m.deleteRules)
			m.modes.Set(ModeTyping)
		}

	case key.Matches(msg, km.Indent):
		if !ro {
			m.resolver.Resolve(intent(IntentIndent))
		}
	case key.Matches(msg, km.Outdent):
		if !ro {
			m.resolver.Resolve(intent(IntentOutdent))
		}

	case key.Matches(msg, km.ToggleCollapse):
		if !ro {
			m.resolver.Resolve(intent(IntentToggleCollapse))
		}
	case key.Matches(msg, km.MoveUp):
		if !ro {
			m.resolver.Resolve(intent(IntentMoveBlockUp))
		}
	case key.Matches(msg, km.MoveDown):
		if !ro {
			m.resolver.Resolve(intent(IntentMoveBlockDown))
		}
	case key.Matches(msg, km.ToggleChecked):
		if !ro {
			m.resolver.Resolve(intent(IntentToggleChecked))
		}
	case key.Matches(msg, km.CyclePriority):
		if !ro {
			m.resolver.Resolve(intent(IntentCyclePriority))
		}
	case key.Matches(msg, km.Duplicate):
		if !ro {
			m.resolver.Resolve(intent(IntentDuplicateBlock))
		}

	case key.Matches(msg, km.SelectBlock):
		if m.resolver.Resolve(intent(IntentSelectBlock)) {
			m.modes.Set(ModeBlockSelect)
		}
	case key.Matches(msg, km.SelectAll):
		if m.resolver.Resolve(intent(IntentSelectAll)) {
			m.modes.Set(ModeBlockSelect)
		}
	case key.Matches(msg, km.ExtendUp):
		if m.resolver.Resolve(intent(IntentExtendSelectionUp)) {
			m.modes.Set(ModeBlockSelect)
		}
	case key.Matches(msg, km.ExtendDown):
		if m.resolver.Resolve(intent(IntentExtendSelectionDown)) {
			m.modes.Set(ModeBlockSelect)
		}
	case key.Matches(msg, km.Escape):
		m.resolver.Resolve(intent(IntentClearSelection))
		m.modes.Set(ModeIdle)

	case key.Matches(msg, km.Undo):
		if !ro {
			m.resolver.Resolve(intent(IntentUndo))
		}
	case key.Matches(msg, km.Redo):
		if !ro {
			m.resolver.Resolve(intent(IntentRedo))
		}

	case key.Matches(msg, km.Copy):
		m.resolver.Resolve(intent(IntentCopy))
	case key.Matches(msg, km.Cut):
		if !ro {
			m.resolver.Resolve(intent(IntentCut))
		}
	case key.Matches(msg, km.Paste):
		if !ro {
			m.resolver.Resolve(intent(IntentPaste))
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if !ro {
				m.insertRunes(string(msg.Runes))
			}
		}
	}

	return m
}

// dispatch runs one rule engine against the current cursor context.
func (m *Model) dispatch(e *Engine) bool {
	ctx, ok := newKeyContext(m.doc)
	if !ok {
		m.log.Warn().Msg("no cursor context for key")
		return false
	}
	return e.Handle(ctx, m.resolver.Resolve)
}

// insertRunes types text. A structural selection is replaced whole by a
// paragraph holding the typed text, matching text-selection replacement.
func (m *Model) insertRunes(s string) {
	m.modes.Set(ModeTyping)
	if bs, ok := m.doc.BlockSelection(); ok {
		b, _ := m.doc.BlockAt(bs.From)
		m.doc.ReplaceBlockRange(bs.From, bs.To, []block.Block{
			{Kind: block.KindParagraph, Indent: b.Indent, Text: s},
		})
		return
	}
	m.resolver.Resolve(insertText(s))
}
