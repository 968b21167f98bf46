package editor

import (
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
)

// newEnterEngine builds the Enter key rule set. The precedence is strict:
// structural selection outranks content-aware rules, empty-block rules
// outrank split, container rules outrank the generic fallback. The lowest
// rule always claims the key, so Enter is never left to default handling.
func newEnterEngine(log zerolog.Logger) *Engine {
	e := NewEngine(log)

	// A whole-block selection gets a fresh paragraph sibling after it.
	// Split logic must never run against a non-text selection.
	e.Register(Rule{
		ID:       "enter/structural-selection",
		Priority: 110,
		When:     func(c KeyContext) bool { return c.BlockSelection },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentInsertSiblingAfter)) },
	})

	// Non-empty containers grow their own subtree on Enter.
	e.Register(Rule{
		ID:       "enter/container-child",
		Priority: 100,
		When:     func(c KeyContext) bool { return c.IsContainer() && !c.Empty() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentInsertChild)) },
	})

	e.Register(Rule{
		ID:       "enter/collapse-empty-container",
		Priority: 90,
		When:     func(c KeyContext) bool { return c.Empty() && c.IsExpandedContainer() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentCollapse)) },
	})

	e.Register(Rule{
		ID:       "enter/outdent-empty",
		Priority: 80,
		When:     func(c KeyContext) bool { return c.Empty() && c.Block.Indent > 0 },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentOutdent)) },
	})

	e.Register(Rule{
		ID:       "enter/convert-empty",
		Priority: 70,
		When: func(c KeyContext) bool {
			return c.Empty() && c.Block.Indent == 0 && c.Block.Kind != block.KindParagraph
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentConvertToParagraph)) },
	})

	// A zero-indent block has no parent in the flat model, so this cannot
	// fire today; it holds the precedence slot for wrapper containment.
	e.Register(Rule{
		ID:       "enter/exit-wrapper",
		Priority: 60,
		When: func(c KeyContext) bool {
			return c.Empty() && c.Block.Indent == 0 &&
				c.Block.Kind == block.KindParagraph && c.InsideWrapper()
		},
		Execute: func(c KeyContext) RuleResult { return Emit(intent(IntentExitWrapper)) },
	})

	// At the start of content the new block goes before; the cursor stays in
	// the original block, now pushed down.
	e.Register(Rule{
		ID:       "enter/insert-before",
		Priority: 50,
		When:     func(c KeyContext) bool { return !c.Empty() && c.AtStart() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentInsertSiblingBefore)) },
	})

	// At the end of a block that already has children, Enter prepends a new
	// child rather than appending a sibling after the whole subtree.
	e.Register(Rule{
		ID:       "enter/child-before-existing",
		Priority: 40,
		When:     func(c KeyContext) bool { return !c.Empty() && c.AtEnd() && c.HasChildren() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentInsertChild)) },
	})

	e.Register(Rule{
		ID:       "enter/sibling-after-subtree",
		Priority: 30,
		When:     func(c KeyContext) bool { return !c.Empty() && c.AtEnd() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentInsertAfterSubtree)) },
	})

	e.Register(Rule{
		ID:       "enter/split",
		Priority: 20,
		When:     func(c KeyContext) bool { return !c.Empty() && !c.AtStart() && !c.AtEnd() },
		Execute:  func(c KeyContext) RuleResult { return Emit(intent(IntentSplitBlock)) },
	})

	// Safety net: Enter must always be claimed.
	e.Register(Rule{
		ID:       "enter/fallback",
		Priority: 10,
		Execute: func(c KeyContext) RuleResult {
			switch {
			case c.Empty() && c.Block.Indent > 0:
				return Emit(intent(IntentOutdent))
			case c.Empty() && c.Block.Kind != block.KindParagraph:
				return Emit(intent(IntentConvertToParagraph))
			default:
				return Emit(intent(IntentSplitBlock))
			}
		},
	})

	return e
}
