package block

import "testing"

func TestUndo_OneMutatorOneStep(t *testing.T) {
	d := newTestDoc(para("a", 0, "hello"))
	d.SetCaret(Caret{Index: 0, Offset: 5})

	if !d.InsertText("!") {
		t.Fatalf("insert failed")
	}
	if !d.SplitBlock(0, 3) {
		t.Fatalf("split failed")
	}

	if !d.Undo() {
		t.Fatalf("undo split failed")
	}
	if d.Len() != 1 {
		t.Fatalf("after undo: len %d, want 1", d.Len())
	}
	b, _ := d.BlockAt(0)
	if b.Text != "hello!" {
		t.Fatalf("after undo: text %q, want %q", b.Text, "hello!")
	}

	if !d.Undo() {
		t.Fatalf("undo insert failed")
	}
	b, _ = d.BlockAt(0)
	if b.Text != "hello" {
		t.Fatalf("after second undo: text %q, want %q", b.Text, "hello")
	}

	if d.Undo() {
		t.Fatalf("nothing left to undo")
	}
}

func TestRedo_RestoresUndoneStep(t *testing.T) {
	d := newTestDoc(para("a", 0, "x"))
	d.SetCaret(Caret{Index: 0, Offset: 1})
	d.InsertText("y")
	d.Undo()

	if !d.Redo() {
		t.Fatalf("redo failed")
	}
	b, _ := d.BlockAt(0)
	if b.Text != "xy" {
		t.Fatalf("after redo: text %q, want %q", b.Text, "xy")
	}

	if !d.Undo() {
		t.Fatalf("undo after redo failed")
	}
	d.InsertText("z")
	if d.Redo() {
		t.Fatalf("a new edit must clear the redo stack")
	}
}

func TestTransact_CompositeIsOneUndoStep(t *testing.T) {
	d := newTestDoc(para("a", 0, "ab"))
	d.SetCaret(Caret{Index: 0, Offset: 1})

	ok := d.Transact(func(d *Document) bool {
		if !d.SplitBlock(0, 1) {
			return false
		}
		return d.InsertBlocksAt(1, []Block{para("", 0, "mid")})
	})
	if !ok {
		t.Fatalf("transact failed")
	}
	if d.Len() != 3 {
		t.Fatalf("len: got %d, want 3", d.Len())
	}

	if !d.Undo() {
		t.Fatalf("undo failed")
	}
	if d.Len() != 1 {
		t.Fatalf("one undo must revert the whole transaction: len %d", d.Len())
	}
	b, _ := d.BlockAt(0)
	if b.Text != "ab" {
		t.Fatalf("after undo: text %q, want %q", b.Text, "ab")
	}
}

func TestCaretMoves_AreNotUndoSteps(t *testing.T) {
	d := newTestDoc(para("a", 0, "abc"))
	d.SetCaret(Caret{Index: 0, Offset: 2})
	if d.CanUndo() {
		t.Fatalf("caret movement must not record history")
	}
}

func TestLastChange_ReportsTransaction(t *testing.T) {
	d := newTestDoc(para("a", 0, ""))
	if _, ok := d.LastChange(); ok {
		t.Fatalf("no change yet")
	}

	d.InsertText("hi")
	ch, ok := d.LastChange()
	if !ok {
		t.Fatalf("change missing")
	}
	if ch.Source != ChangeSourceLocal || ch.BlocksBefore != 1 || ch.BlocksAfter != 1 {
		t.Fatalf("change: got %+v", ch)
	}
	if ch.VersionAfter <= ch.VersionBefore {
		t.Fatalf("version must advance: %+v", ch)
	}
}
