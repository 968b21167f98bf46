package editor

import (
	"testing"

	"github.com/iw2rmb/lattice/block"
)

func TestCopy_StructuralSelectionTakesSubtreeAndStripsState(t *testing.T) {
	h := newHarness(
		task("a", 0, "parent", true),
		para("b", 1, "one"),
		para("c", 1, "two"),
		para("d", 0, "outside"),
	)
	h.doc.SelectBlocks(0, 0)

	if !h.clip.Copy() {
		t.Fatalf("copy failed")
	}
	payload := h.clip.Payload()
	if len(payload) != 3 {
		t.Fatalf("payload: got %d blocks, want 3", len(payload))
	}
	for i, b := range payload {
		if b.ID != "" {
			t.Fatalf("block %d: id must be stripped, got %q", i, b.ID)
		}
		if b.Collapsed {
			t.Fatalf("block %d: collapse state must be stripped", i)
		}
	}
	if payload[0].Attrs.List != block.ListTask {
		t.Fatalf("content attributes must survive: %+v", payload[0].Attrs)
	}
	if h.doc.Len() != 4 {
		t.Fatalf("copy must not touch the document")
	}
}

func TestCopy_VersionTagAdvances(t *testing.T) {
	h := newHarness(para("a", 0, "x"))
	h.clip.Copy()
	v1 := h.clip.Version()
	h.clip.Copy()
	if h.clip.Version() <= v1 {
		t.Fatalf("version must advance per copy")
	}
}

func TestCut_DeletesWholeBlocks(t *testing.T) {
	h := newHarness(para("a", 0, "x"), para("b", 1, "y"), para("c", 0, "z"))
	h.doc.SelectBlocks(0, 0)

	if !h.clip.Cut() {
		t.Fatalf("cut failed")
	}
	got := ids(h.doc.Blocks())
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("blocks: %v", got)
	}
	if len(h.clip.Payload()) != 2 {
		t.Fatalf("payload must hold the cut subtree")
	}
}

func TestCut_LastBlocksLeaveEmptyParagraph(t *testing.T) {
	h := newHarness(para("a", 0, "x"), para("b", 0, "y"))
	h.doc.SelectBlocks(0, 1)

	if !h.clip.Cut() {
		t.Fatalf("cut failed")
	}
	if h.doc.Len() != 1 {
		t.Fatalf("len: got %d, want 1", h.doc.Len())
	}
	b, _ := h.doc.BlockAt(0)
	if b.Kind != block.KindParagraph || b.Text != "" {
		t.Fatalf("document must fall back to one empty paragraph: %+v", b)
	}
}

func TestClassify_ExactChecks(t *testing.T) {
	h := newHarness(para("a", 0, "hello"), para("b", 0, ""))
	h.clip.payload = []block.Block{{Kind: block.KindParagraph, Text: "p"}}

	h.doc.SelectBlocks(0, 0)
	if got := h.clip.Classify(); got != PasteReplaceBlock {
		t.Fatalf("structural selection: got %v", got)
	}
	h.doc.ClearSelections()

	h.doc.SetCaret(block.Caret{Index: 0, Offset: 2})
	if got := h.clip.Classify(); got != PasteSplitBlock {
		t.Fatalf("mid content: got %v", got)
	}

	h.doc.SetCaret(block.Caret{Index: 0, Offset: 5})
	if got := h.clip.Classify(); got != PasteAppendToBlock {
		t.Fatalf("end of non-empty block, single paragraph payload: got %v", got)
	}

	// Multi-block payload at end falls back to insert-after.
	h.clip.payload = append(h.clip.payload, block.Block{Kind: block.KindParagraph, Text: "q"})
	if got := h.clip.Classify(); got != PasteInsertAfter {
		t.Fatalf("multi-block payload: got %v", got)
	}

	// End of an empty block too.
	h.clip.payload = h.clip.payload[:1]
	h.doc.SetCaret(block.Caret{Index: 1, Offset: 0})
	if got := h.clip.Classify(); got != PasteInsertAfter {
		t.Fatalf("empty block: got %v", got)
	}

	// Start of a non-empty block too.
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 0})
	if got := h.clip.Classify(); got != PasteInsertAfter {
		t.Fatalf("start of block: got %v", got)
	}
}

func TestPaste_RebasesIndentsAndMintsFreshIDs(t *testing.T) {
	h := newHarness(
		task("a", 2, "parent", false),
		para("b", 3, "one"),
		para("c", 3, "two"),
		para("d", 0, "end"),
	)
	h.doc.SelectBlocks(0, 0)
	if !h.clip.Copy() {
		t.Fatalf("copy failed")
	}
	h.doc.ClearSelections()
	h.doc.SetCaret(block.Caret{Index: 3, Offset: 3})

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	blocks := h.doc.Blocks()
	if len(blocks) != 7 {
		t.Fatalf("len: got %d, want 7", len(blocks))
	}
	pasted := blocks[4:]
	wantIndents := []int{0, 1, 1}
	seen := map[block.ID]bool{}
	for _, b := range blocks {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
	for i, b := range pasted {
		if b.Indent != wantIndents[i] {
			t.Fatalf("pasted block %d: indent %d, want %d", i, b.Indent, wantIndents[i])
		}
		if b.ID == "a" || b.ID == "b" || b.ID == "c" {
			t.Fatalf("pasted block %d reuses source id %q", i, b.ID)
		}
	}
}

func TestPaste_ReplaceBlockSwapsSelection(t *testing.T) {
	h := newHarness(para("a", 0, "old"), para("b", 1, "child"), para("c", 0, "keep"))
	h.doc.SelectBlocks(0, 0)
	h.clip.payload = []block.Block{{Kind: block.KindHeading, Text: "new", Attrs: block.Attrs{Level: 1}}}

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	blocks := h.doc.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("selection subtree must be replaced whole: %v", ids(blocks))
	}
	if blocks[0].Kind != block.KindHeading || blocks[0].Text != "new" {
		t.Fatalf("replacement: %+v", blocks[0])
	}
	if blocks[1].ID != "c" {
		t.Fatalf("trailing block must survive: %v", ids(blocks))
	}
}

func TestPaste_SplitBlockInsertsBetweenHalves(t *testing.T) {
	h := newHarness(para("a", 0, "hello"))
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 2})
	h.clip.payload = []block.Block{{Kind: block.KindParagraph, Text: "mid"}}

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	blocks := h.doc.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("len: got %d", len(blocks))
	}
	if blocks[0].Text != "he" || blocks[1].Text != "mid" || blocks[2].Text != "llo" {
		t.Fatalf("texts: %q %q %q", blocks[0].Text, blocks[1].Text, blocks[2].Text)
	}
	if !h.doc.Undo() || h.doc.Len() != 1 {
		t.Fatalf("a split paste is one undo step")
	}
}

func TestPaste_AppendSplicesInline(t *testing.T) {
	h := newHarness(para("a", 0, "hello"))
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 5})
	h.clip.payload = []block.Block{{Kind: block.KindParagraph, Text: " world"}}

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	if h.doc.Len() != 1 {
		t.Fatalf("append must not create a block")
	}
	b, _ := h.doc.BlockAt(0)
	if b.Text != "hello world" {
		t.Fatalf("text: %q", b.Text)
	}
}

func TestPaste_CollapsedContainerIsOpaque(t *testing.T) {
	h := newHarness(
		task("a", 0, "parent", true),
		para("b", 1, "hidden"),
		para("c", 0, "after"),
	)
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 0})
	h.clip.payload = []block.Block{{Kind: block.KindParagraph, Text: "pasted"}}

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	got := ids(h.doc.Blocks())
	if got[0] != "a" || got[1] != "b" {
		t.Fatalf("paste must never land inside the hidden subtree: %v", got)
	}
	b, _ := h.doc.BlockAt(2)
	if b.Text != "pasted" {
		t.Fatalf("insertion point: %v", got)
	}
}

func TestPaste_ListContinuity(t *testing.T) {
	h := newHarness(bullet("a", 0, "item"))
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 0})
	h.clip.payload = []block.Block{
		{Kind: block.KindList, Text: "first", Attrs: block.Attrs{List: block.ListNumbered}},
		{Kind: block.KindList, Indent: 1, Text: "second", Attrs: block.Attrs{List: block.ListNumbered}},
	}

	if !h.clip.Paste() {
		t.Fatalf("paste failed")
	}
	blocks := h.doc.Blocks()
	if blocks[1].Attrs.List != block.ListBullet {
		t.Fatalf("first pasted item must continue the destination list: %+v", blocks[1].Attrs)
	}
	if blocks[2].Attrs.List != block.ListNumbered {
		t.Fatalf("later items keep their own kind: %+v", blocks[2].Attrs)
	}
}

func TestPastePlainText_SplitsOnBlankLines(t *testing.T) {
	h := newHarness(para("a", 0, "start"))
	h.doc.SetCaret(block.Caret{Index: 0, Offset: 0})

	if !h.clip.PastePlainText("one\ntwo\n\nthree\r\n\r\nfour") {
		t.Fatalf("paste failed")
	}
	blocks := h.doc.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("len: got %d, want 4", len(blocks))
	}
	if blocks[1].Text != "one\ntwo" || blocks[2].Text != "three" || blocks[3].Text != "four" {
		t.Fatalf("chunks: %q %q %q", blocks[1].Text, blocks[2].Text, blocks[3].Text)
	}
	for _, b := range blocks[1:] {
		if b.Kind != block.KindParagraph {
			t.Fatalf("plain text pastes as paragraphs: %+v", b)
		}
	}
}

func TestPaste_EmptyClipboardIsNoop(t *testing.T) {
	h := newHarness(para("a", 0, "x"))
	if h.clip.Paste() {
		t.Fatalf("nothing to paste")
	}
}
