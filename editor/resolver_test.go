package editor

import (
	"testing"

	"github.com/iw2rmb/lattice/block"
)

func TestResolve_IndentRespectsCap(t *testing.T) {
	h := newHarness(para("a", 0, "a"), para("b", 0, "b"))
	h.doc.SetCaret(block.Caret{Index: 1})

	for i := 0; i < 10; i++ {
		h.res.Resolve(intent(IntentIndent))
	}
	b, _ := h.doc.BlockAt(1)
	if b.Indent > h.doc.MaxIndent() {
		t.Fatalf("indent %d exceeds cap %d", b.Indent, h.doc.MaxIndent())
	}
	if b.Indent != 1 {
		t.Fatalf("without deeper candidates indent stops at 1, got %d", b.Indent)
	}
}

func TestResolve_OutdentBelowZeroIsNoop(t *testing.T) {
	h := newHarness(bullet("a", 2, "x"))
	h.doc.SetCaret(block.Caret{Index: 0})

	if !h.res.Resolve(intent(IntentOutdent)) || !h.res.Resolve(intent(IntentOutdent)) {
		t.Fatalf("outdent failed")
	}
	if h.res.Resolve(intent(IntentOutdent)) {
		t.Fatalf("outdent below zero must be a no-op")
	}
	b, _ := h.doc.BlockAt(0)
	if b.Indent != 0 {
		t.Fatalf("indent: got %d, want 0", b.Indent)
	}
}

func TestResolve_IndentSelectionMovesTopsOnly(t *testing.T) {
	h := newHarness(
		para("p", 0, "parent"),
		para("a", 0, "one"),
		para("b", 1, "child"),
		para("c", 0, "two"),
	)
	h.doc.SelectBlocks(1, 3)

	if !h.res.Resolve(intent(IntentIndent)) {
		t.Fatalf("indent failed")
	}
	blocks := h.doc.Blocks()
	if blocks[1].Indent != 1 || blocks[2].Indent != 2 {
		t.Fatalf("first subtree: %d/%d", blocks[1].Indent, blocks[2].Indent)
	}
	if blocks[3].Indent != 1 {
		t.Fatalf("second top: %d", blocks[3].Indent)
	}
	if !h.doc.Undo() {
		t.Fatalf("undo failed")
	}
	blocks = h.doc.Blocks()
	if blocks[1].Indent != 0 || blocks[3].Indent != 0 {
		t.Fatalf("a multi-block indent is one undo step")
	}
}

func TestResolve_DuplicateBlockCopiesSubtree(t *testing.T) {
	h := newHarness(task("a", 0, "todo", false), para("b", 1, "note"), para("c", 0, "end"))
	h.doc.SetCaret(block.Caret{Index: 0})

	if !h.res.Resolve(intent(IntentDuplicateBlock)) {
		t.Fatalf("duplicate failed")
	}
	blocks := h.doc.Blocks()
	if len(blocks) != 5 {
		t.Fatalf("len: got %d, want 5", len(blocks))
	}
	if blocks[2].Text != "todo" || blocks[3].Text != "note" {
		t.Fatalf("copy order: %v", ids(blocks))
	}
	if blocks[2].ID == "a" || blocks[3].ID == "b" {
		t.Fatalf("copies must get fresh ids: %v", ids(blocks))
	}
}

func TestResolve_CaretMovesSkipHiddenBlocks(t *testing.T) {
	h := newHarness(
		para("a", 0, "top"),
		task("b", 0, "parent", true),
		para("c", 1, "hidden"),
		para("d", 0, "bottom"),
	)
	h.doc.SetCaret(block.Caret{Index: 1})

	if !h.res.Resolve(intent(IntentCaretDown)) {
		t.Fatalf("caret down failed")
	}
	if c := h.doc.Caret(); c.Index != 3 {
		t.Fatalf("caret must skip the hidden block: %+v", c)
	}
	if !h.res.Resolve(intent(IntentCaretUp)) {
		t.Fatalf("caret up failed")
	}
	if c := h.doc.Caret(); c.Index != 1 {
		t.Fatalf("caret: %+v", c)
	}
}

func TestResolve_CaretRightCrossesBlockBoundary(t *testing.T) {
	h := newHarness(para("a", 0, "x"), para("b", 0, "y"))
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 1})

	if !h.res.Resolve(intent(IntentCaretRight)) {
		t.Fatalf("caret right failed")
	}
	if c := h.doc.Caret(); c.Index != 1 || c.Offset != 0 {
		t.Fatalf("caret: %+v", c)
	}
	h.res.Resolve(intent(IntentCaretLeft))
	if c := h.doc.Caret(); c.Index != 0 || c.Offset != 1 {
		t.Fatalf("caret: %+v", c)
	}
}

func TestResolve_ExtendSelectionGrowsBlockwise(t *testing.T) {
	h := newHarness(para("a", 0, "1"), para("b", 0, "2"), para("c", 0, "3"))
	h.doc.SetCaret(block.Caret{Index: 1})

	h.res.Resolve(intent(IntentExtendSelectionDown))
	bs, ok := h.doc.BlockSelection()
	if !ok || bs.From != 1 || bs.To != 1 {
		t.Fatalf("first extend selects the caret block: %+v", bs)
	}
	h.res.Resolve(intent(IntentExtendSelectionDown))
	bs, _ = h.doc.BlockSelection()
	if bs.From != 1 || bs.To != 2 {
		t.Fatalf("selection: %+v", bs)
	}
	h.res.Resolve(intent(IntentExtendSelectionUp))
	bs, _ = h.doc.BlockSelection()
	if bs.From != 0 || bs.To != 2 {
		t.Fatalf("selection: %+v", bs)
	}
}

func TestResolve_ToggleCheckedOverSelection(t *testing.T) {
	h := newHarness(
		task("a", 0, "one", false),
		task("b", 0, "two", false),
		para("c", 0, "not a task"),
	)
	h.doc.SelectBlocks(0, 2)

	if !h.res.Resolve(intent(IntentToggleChecked)) {
		t.Fatalf("toggle failed")
	}
	blocks := h.doc.Blocks()
	if !blocks[0].Attrs.Checked || !blocks[1].Attrs.Checked {
		t.Fatalf("tasks must toggle: %+v %+v", blocks[0].Attrs, blocks[1].Attrs)
	}
	if blocks[2].Attrs.Checked {
		t.Fatalf("non-tasks stay untouched")
	}
}
