package block

type docSnapshot struct {
	blocks []Block
	caret  Caret
	sel    textSelection
	bsel   blockSelection
}

type historyState struct {
	undo []docSnapshot
	redo []docSnapshot
}

func (d *Document) snapshot() docSnapshot {
	return docSnapshot{
		blocks: CloneBlocks(d.blocks),
		caret:  d.caret,
		sel:    d.sel,
		bsel:   d.bsel,
	}
}

func (d *Document) restore(s docSnapshot) {
	d.blocks = CloneBlocks(s.blocks)
	if len(d.blocks) == 0 {
		d.blocks = []Block{{ID: d.opt.NewID(), Kind: KindParagraph}}
	}
	d.caret = d.clampCaret(s.caret)

	d.sel = textSelection{}
	if s.sel.active {
		anchor := d.clampCaret(s.sel.anchor)
		end := d.clampCaret(s.sel.end)
		if !NormalizeCaretRange(CaretRange{Start: anchor, End: end}).IsEmpty() {
			d.sel = textSelection{active: true, anchor: anchor, end: end}
		}
	}

	d.bsel = blockSelection{}
	if s.bsel.active {
		from := clampInt(s.bsel.from, 0, len(d.blocks)-1)
		to := clampInt(s.bsel.to, 0, len(d.blocks)-1)
		d.bsel = blockSelection{active: true, from: from, to: to}
	}
}

func (d *Document) recordUndo(prev docSnapshot) {
	limit := d.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	d.hist.undo = append(d.hist.undo, prev)
	if len(d.hist.undo) > limit {
		d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
	}
	d.hist.redo = nil
}

func (d *Document) CanUndo() bool { return len(d.hist.undo) > 0 }

func (d *Document) CanRedo() bool { return len(d.hist.redo) > 0 }

// Undo restores the document state before the most recent transaction.
func (d *Document) Undo() bool {
	if len(d.hist.undo) == 0 {
		return false
	}

	cur := d.snapshot()
	before := d.version

	i := len(d.hist.undo) - 1
	prev := d.hist.undo[i]
	d.hist.undo = d.hist.undo[:i]
	d.hist.redo = append(d.hist.redo, cur)

	d.restore(prev)
	d.version++
	d.commitChange(ChangeSourceHistory, cur, before)
	return true
}

// Redo re-applies the most recently undone transaction.
func (d *Document) Redo() bool {
	if len(d.hist.redo) == 0 {
		return false
	}

	cur := d.snapshot()
	before := d.version

	i := len(d.hist.redo) - 1
	next := d.hist.redo[i]
	d.hist.redo = d.hist.redo[:i]

	limit := d.opt.HistoryLimit
	if limit > 0 {
		d.hist.undo = append(d.hist.undo, cur)
		if len(d.hist.undo) > limit {
			d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
		}
	}

	d.restore(next)
	d.version++
	d.commitChange(ChangeSourceHistory, cur, before)
	return true
}
