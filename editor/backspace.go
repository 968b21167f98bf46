package editor

import (
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
)

// newBackspaceEngine builds the Backspace rule set. Only offset-0 cases are
// intercepted; mid-content Backspace is plain character deletion.
func newBackspaceEngine(log zerolog.Logger) *Engine {
	e := NewEngine(log)

	e.Register(Rule{
		ID:       "backspace/structural-selection",
		Priority: 100,
		When:     func(c KeyContext) bool { return c.BlockSelection },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentDeleteSelection)) },
	})

	// Empty non-paragraphs normalize to paragraph before anything
	// type-specific happens.
	e.Register(Rule{
		ID:       "backspace/normalize",
		Priority: 90,
		When: func(c KeyContext) bool {
			return c.AtStart() && c.Empty() && c.Block.Kind != block.KindParagraph
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentConvertToParagraph)) },
	})

	e.Register(Rule{
		ID:       "backspace/outdent-empty",
		Priority: 80,
		When: func(c KeyContext) bool {
			return c.AtStart() && c.Empty() &&
				c.Block.Kind == block.KindParagraph && c.Block.Indent > 0
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentOutdent)) },
	})

	// An empty paragraph after a structural block cannot merge into it;
	// delete the paragraph and land at the end of the structural block.
	e.Register(Rule{
		ID:       "backspace/remove-after-structural",
		Priority: 70,
		When: func(c KeyContext) bool {
			return c.AtStart() && c.Empty() &&
				c.Block.Kind == block.KindParagraph && c.Block.Indent == 0 &&
				c.Index > 0 && c.Blocks[c.Index-1].Kind.IsStructural()
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentDeleteBlock)) },
	})

	e.Register(Rule{
		ID:       "backspace/fallback",
		Priority: 10,
		Execute: func(c KeyContext) RuleResult {
			if !c.AtStart() || c.Doc.HasTextSelection() {
				return Emit(intent(IntentDeleteBackward))
			}
			if c.Index > 0 {
				return Emit(intent(IntentMergeBackward))
			}
			return Pass()
		},
	})

	return e
}

// newDeleteEngine mirrors Backspace for forward deletion at block end.
func newDeleteEngine(log zerolog.Logger) *Engine {
	e := NewEngine(log)

	e.Register(Rule{
		ID:       "delete/structural-selection",
		Priority: 100,
		When:     func(c KeyContext) bool { return c.BlockSelection },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentDeleteSelection)) },
	})

	// An empty block at end is removed whole rather than merged, mirroring
	// the Backspace handling of empty blocks.
	e.Register(Rule{
		ID:       "delete/remove-empty",
		Priority: 80,
		When: func(c KeyContext) bool {
			return c.AtEnd() && c.Empty() && c.Index < len(c.Blocks)-1
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentDeleteBlock)) },
	})

	e.Register(Rule{
		ID:       "delete/merge-forward",
		Priority: 70,
		When: func(c KeyContext) bool {
			return c.AtEnd() && c.Index < len(c.Blocks)-1
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentMergeForward)) },
	})

	e.Register(Rule{
		ID:       "delete/fallback",
		Priority: 10,
		Execute: func(c KeyContext) RuleResult {
			if !c.AtEnd() || c.Doc.HasTextSelection() {
				return Emit(intent(IntentDeleteForward))
			}
			return Pass()
		},
	})

	return e
}
