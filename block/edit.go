package block

import "github.com/iw2rmb/lattice/internal/grapheme"

// InsertText inserts text at the caret, replacing the active text selection
// first. Typing into a divider is rejected; every other kind carries text.
func (d *Document) InsertText(s string) bool {
	if s == "" {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.deleteTextSelectionLocked()
		b := d.caretBlock()
		if b == nil || b.Kind == KindDivider {
			return false
		}
		left, right := grapheme.CutAt(b.Text, d.caret.Offset)
		b.Text = left + s + right
		d.caret.Offset = grapheme.Count(left) + grapheme.Count(s)
		d.version++
		return true
	})
}

// DeleteBackward removes the grapheme before the caret, or the active text
// selection. At offset 0 it is a no-op: block merging is an explicit command.
func (d *Document) DeleteBackward() bool {
	return d.mutate(ChangeSourceLocal, func() bool {
		if d.sel.active {
			d.deleteTextSelectionLocked()
			return true
		}
		b := d.caretBlock()
		if b == nil || d.caret.Offset == 0 {
			return false
		}
		off := d.caret.Offset
		b.Text = grapheme.Slice(b.Text, 0, off-1) + grapheme.Slice(b.Text, off, grapheme.Count(b.Text))
		d.caret.Offset = off - 1
		d.version++
		return true
	})
}

// DeleteForward removes the grapheme at the caret, or the active text
// selection. At the end of the block it is a no-op.
func (d *Document) DeleteForward() bool {
	return d.mutate(ChangeSourceLocal, func() bool {
		if d.sel.active {
			d.deleteTextSelectionLocked()
			return true
		}
		b := d.caretBlock()
		if b == nil {
			return false
		}
		n := grapheme.Count(b.Text)
		if d.caret.Offset >= n {
			return false
		}
		off := d.caret.Offset
		b.Text = grapheme.Slice(b.Text, 0, off) + grapheme.Slice(b.Text, off+1, n)
		d.version++
		return true
	})
}

// AppendTextToBlock splices text onto the end of blocks[i] without creating a
// block. Used by the clipboard's append paste.
func (d *Document) AppendTextToBlock(i int, s string) bool {
	if s == "" || i < 0 || i >= len(d.blocks) || d.blocks[i].Kind == KindDivider {
		return false
	}
	return d.mutate(ChangeSourceClipboard, func() bool {
		d.blocks[i].Text += s
		d.caret = Caret{Index: i, Offset: grapheme.Count(d.blocks[i].Text)}
		d.sel = textSelection{}
		d.bsel = blockSelection{}
		d.version++
		return true
	})
}

// InsertBlockAt inserts one block at slice position idx and moves the caret
// to its start. Blocks without an ID, or with an ID already live in the
// document, get a fresh one.
func (d *Document) InsertBlockAt(idx int, nb Block) bool {
	if idx < 0 || idx > len(d.blocks) {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		adopted := d.adoptBlocks([]Block{cloneBlock(nb)})
		d.blocks = append(d.blocks[:idx], append(adopted, d.blocks[idx:]...)...)
		d.caret = Caret{Index: idx, Offset: 0}
		d.sel = textSelection{}
		d.bsel = blockSelection{}
		d.version++
		return true
	})
}

// InsertBlocksAt inserts a run of blocks at slice position idx. Every
// inserted block gets a fresh ID when its ID is empty or collides with a
// live block. The caret lands at the end of the last inserted block.
func (d *Document) InsertBlocksAt(idx int, nbs []Block) bool {
	if idx < 0 || idx > len(d.blocks) || len(nbs) == 0 {
		return false
	}
	return d.mutate(ChangeSourceClipboard, func() bool {
		adopted := d.adoptBlocks(CloneBlocks(nbs))
		d.blocks = append(d.blocks[:idx], append(adopted, d.blocks[idx:]...)...)
		last := idx + len(adopted) - 1
		d.caret = Caret{Index: last, Offset: grapheme.Count(d.blocks[last].Text)}
		d.sel = textSelection{}
		d.bsel = blockSelection{}
		d.version++
		return true
	})
}

// SplitBlock splits blocks[i] at a grapheme offset. The left part keeps the
// block's identity; the right part becomes a new block of the same kind at
// the same indent, and the caret moves to its start.
func (d *Document) SplitBlock(i, offset int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		b := &d.blocks[i]
		left, right := grapheme.CutAt(b.Text, offset)
		b.Text = left

		nb := Block{
			ID:     d.opt.NewID(),
			Kind:   b.Kind,
			Indent: b.Indent,
			Text:   right,
			Attrs:  cloneAttrs(b.Attrs),
		}
		// A split never carries completion state to the new item.
		nb.Attrs.Checked = false
		nb.Attrs.Priority = 0

		d.blocks = append(d.blocks[:i+1], append([]Block{nb}, d.blocks[i+1:]...)...)
		d.caret = Caret{Index: i + 1, Offset: 0}
		d.sel = textSelection{}
		d.bsel = blockSelection{}
		d.version++
		return true
	})
}

// DeleteBlock removes blocks[i], promoting its descendants to the deleted
// block's own level so the subtree reattaches to the deleted block's parent.
// Deleting the last remaining block is rejected.
func (d *Document) DeleteBlock(i int) bool {
	if i < 0 || i >= len(d.blocks) || len(d.blocks) == 1 {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.removeRangeLocked(i, i)
		d.version++
		return true
	})
}

// DeleteBlockRange removes whole blocks [from, to]. Removing every block
// leaves a single empty paragraph: the document is never empty.
func (d *Document) DeleteBlockRange(from, to int) bool {
	r := NormalizeBlockRange(BlockRange{From: from, To: to})
	if r.From < 0 || r.To >= len(d.blocks) {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		if r.From == 0 && r.To == len(d.blocks)-1 {
			d.blocks = []Block{{ID: d.opt.NewID(), Kind: KindParagraph}}
			d.caret = Caret{}
			d.sel = textSelection{}
			d.bsel = blockSelection{}
			d.version++
			return true
		}
		d.removeRangeLocked(r.From, r.To)
		d.version++
		return true
	})
}

// ReplaceBlockRange replaces whole blocks [from, to] with a new run.
func (d *Document) ReplaceBlockRange(from, to int, nbs []Block) bool {
	r := NormalizeBlockRange(BlockRange{From: from, To: to})
	if r.From < 0 || r.To >= len(d.blocks) || len(nbs) == 0 {
		return false
	}
	return d.mutate(ChangeSourceClipboard, func() bool {
		adopted := d.adoptBlocksExcluding(CloneBlocks(nbs), r)
		rest := append([]Block(nil), d.blocks[r.To+1:]...)
		d.blocks = append(d.blocks[:r.From], append(adopted, rest...)...)
		last := r.From + len(adopted) - 1
		d.caret = Caret{Index: last, Offset: grapheme.Count(d.blocks[last].Text)}
		d.sel = textSelection{}
		d.bsel = blockSelection{}
		d.version++
		return true
	})
}

// MergeBlocks splices the text of blocks[src] onto the end of blocks[dst]
// and removes src, promoting its descendants. Structural kinds never merge.
func (d *Document) MergeBlocks(dst, src int) bool {
	if dst < 0 || src <= dst || src >= len(d.blocks) {
		return false
	}
	if !d.blocks[dst].Kind.IsTextual() || !d.blocks[src].Kind.IsTextual() {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		join := grapheme.Count(d.blocks[dst].Text)
		d.blocks[dst].Text += d.blocks[src].Text
		d.removeRangeLocked(src, src)
		d.caret = Caret{Index: dst, Offset: join}
		d.version++
		return true
	})
}

// ConvertBlock swaps blocks[i] to another kind in place, preserving identity,
// indent, and text. Collapse state is dropped when the new kind cannot own
// it; a divider drops its text.
func (d *Document) ConvertBlock(i int, kind Kind, attrs Attrs) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		b := &d.blocks[i]
		next := *b
		next.Kind = kind
		next.Attrs = cloneAttrs(attrs)
		if kind == KindDivider {
			next.Text = ""
		}
		if !next.CanCollapse() {
			next.Collapsed = false
		}
		if blocksEqual(*b, next) {
			return false
		}
		*b = next
		d.caret = d.clampCaret(d.caret)
		d.version++
		return true
	})
}

// IndentBlock indents blocks[i] under the nearest preceding block at its
// level or above. The whole subtree shifts with it; descendants that would
// exceed the indent cap reattach one level up instead.
func (d *Document) IndentBlock(i int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	candidate := -1
	for j := i - 1; j >= 0; j-- {
		if d.blocks[j].Indent <= d.blocks[i].Indent {
			candidate = j
			break
		}
	}
	if candidate < 0 {
		return false
	}
	newIndent := d.blocks[candidate].Indent + 1
	if newIndent > d.opt.MaxIndent || newIndent <= d.blocks[i].Indent {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		delta := newIndent - d.blocks[i].Indent
		end := SubtreeEnd(d.blocks, i)
		d.blocks[i].Indent = newIndent
		for j := i + 1; j < end; j++ {
			next := d.blocks[j].Indent + delta
			if next > d.opt.MaxIndent {
				next = d.opt.MaxIndent
			}
			d.blocks[j].Indent = next
		}
		d.version++
		return true
	})
}

// OutdentBlock shifts blocks[i] one level shallower. Following blocks that
// were its trailing siblings keep their stored indent and therefore read as
// its children afterwards, which is the intended no-orphan outcome.
func (d *Document) OutdentBlock(i int) bool {
	if i < 0 || i >= len(d.blocks) || d.blocks[i].Indent == 0 {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.blocks[i].Indent--
		d.version++
		return true
	})
}

// SetCollapsed folds or unfolds a parent-capable block.
func (d *Document) SetCollapsed(i int, collapsed bool) bool {
	if i < 0 || i >= len(d.blocks) || !d.blocks[i].CanCollapse() {
		return false
	}
	if d.blocks[i].Collapsed == collapsed {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.blocks[i].Collapsed = collapsed
		d.version++
		return true
	})
}

// ToggleCollapsed flips the collapse state of a parent-capable block.
func (d *Document) ToggleCollapsed(i int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	return d.SetCollapsed(i, !d.blocks[i].Collapsed)
}

// ToggleChecked flips completion on a task list item.
func (d *Document) ToggleChecked(i int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	b := d.blocks[i]
	if b.Kind != KindList || b.Attrs.List != ListTask {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.blocks[i].Attrs.Checked = !d.blocks[i].Attrs.Checked
		d.version++
		return true
	})
}

// CyclePriority steps a task's urgency through 0..3.
func (d *Document) CyclePriority(i int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	b := d.blocks[i]
	if b.Kind != KindList || b.Attrs.List != ListTask {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		d.blocks[i].Attrs.Priority = (d.blocks[i].Attrs.Priority + 1) % 4
		d.version++
		return true
	})
}

// MoveBlockUp moves blocks[i] with its whole subtree above its previous
// sibling's subtree. A first child or the first block does not move.
func (d *Document) MoveBlockUp(i int) bool {
	if i <= 0 || i >= len(d.blocks) {
		return false
	}
	prev := i - 1
	for prev >= 0 && d.blocks[prev].Indent > d.blocks[i].Indent {
		prev--
	}
	if prev < 0 || d.blocks[prev].Indent < d.blocks[i].Indent {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		end := SubtreeEnd(d.blocks, i)
		out := make([]Block, 0, len(d.blocks))
		out = append(out, d.blocks[:prev]...)
		out = append(out, d.blocks[i:end]...)
		out = append(out, d.blocks[prev:i]...)
		out = append(out, d.blocks[end:]...)
		d.blocks = out
		d.caret = Caret{Index: prev, Offset: d.clampOffsetAt(prev, d.caret.Offset)}
		d.version++
		return true
	})
}

// MoveBlockDown moves blocks[i] with its whole subtree below the next
// sibling's subtree. The last sibling in its parent does not move.
func (d *Document) MoveBlockDown(i int) bool {
	if i < 0 || i >= len(d.blocks) {
		return false
	}
	end := SubtreeEnd(d.blocks, i)
	if end >= len(d.blocks) || d.blocks[end].Indent < d.blocks[i].Indent {
		return false
	}
	return d.mutate(ChangeSourceLocal, func() bool {
		nextEnd := SubtreeEnd(d.blocks, end)
		out := make([]Block, 0, len(d.blocks))
		out = append(out, d.blocks[:i]...)
		out = append(out, d.blocks[end:nextEnd]...)
		out = append(out, d.blocks[i:end]...)
		out = append(out, d.blocks[nextEnd:]...)
		d.blocks = out
		at := i + (nextEnd - end)
		d.caret = Caret{Index: at, Offset: d.clampOffsetAt(at, d.caret.Offset)}
		d.version++
		return true
	})
}

// deleteTextSelectionLocked removes the active text selection. A same-block
// selection splices text. Across blocks the unselected head of the first
// block and tail of the last merge into the first block; the blocks between
// go whole. A structural endpoint cannot carry merged text, so a selection
// touching one removes the spanned blocks whole instead.
func (d *Document) deleteTextSelectionLocked() {
	r, ok := d.TextSelection()
	if !ok {
		d.sel = textSelection{}
		return
	}
	d.sel = textSelection{}
	if r.Start.Index == r.End.Index {
		b := &d.blocks[r.Start.Index]
		b.Text = grapheme.Slice(b.Text, 0, r.Start.Offset) +
			grapheme.Slice(b.Text, r.End.Offset, grapheme.Count(b.Text))
		d.caret = Caret{Index: r.Start.Index, Offset: r.Start.Offset}
		d.version++
		return
	}

	first := d.blocks[r.Start.Index]
	last := d.blocks[r.End.Index]
	if first.Kind.IsTextual() && last.Kind.IsTextual() {
		head := grapheme.Slice(first.Text, 0, r.Start.Offset)
		tail := grapheme.Slice(last.Text, r.End.Offset, grapheme.Count(last.Text))
		d.blocks[r.Start.Index].Text = head + tail
		d.removeRangeLocked(r.Start.Index+1, r.End.Index)
		d.caret = Caret{Index: r.Start.Index, Offset: grapheme.Count(head)}
		d.version++
		return
	}

	if r.Start.Index == 0 && r.End.Index == len(d.blocks)-1 {
		d.blocks = []Block{{ID: d.opt.NewID(), Kind: KindParagraph}}
		d.caret = Caret{}
		d.bsel = blockSelection{}
		d.version++
		return
	}
	d.removeRangeLocked(r.Start.Index, r.End.Index)
	d.version++
}

// removeRangeLocked deletes whole blocks [from, to] and promotes the
// following orphaned run (former descendants of removed blocks) so its
// shallowest member lands at the removed run's base indent.
func (d *Document) removeRangeLocked(from, to int) {
	base := d.blocks[from].Indent
	d.blocks = append(d.blocks[:from], d.blocks[to+1:]...)

	run := from
	for run < len(d.blocks) && d.blocks[run].Indent > base {
		run++
	}
	if run > from {
		min := d.blocks[from].Indent
		for j := from + 1; j < run; j++ {
			if d.blocks[j].Indent < min {
				min = d.blocks[j].Indent
			}
		}
		if delta := min - base; delta > 0 {
			for j := from; j < run; j++ {
				d.blocks[j].Indent -= delta
			}
		}
	}

	if from > 0 {
		d.caret = Caret{Index: from - 1, Offset: grapheme.Count(d.blocks[from-1].Text)}
	} else {
		d.caret = Caret{Index: 0, Offset: 0}
	}
	d.sel = textSelection{}
	d.bsel = blockSelection{}
}

// adoptBlocksExcluding is adoptBlocks, but IDs inside the to-be-replaced
// range do not count as live. Replacement may keep the replaced IDs.
func (d *Document) adoptBlocksExcluding(blocks []Block, r BlockRange) []Block {
	seen := make(map[ID]bool, len(blocks)+len(d.blocks))
	for i, b := range d.blocks {
		if i >= r.From && i <= r.To {
			continue
		}
		seen[b.ID] = true
	}
	for i := range blocks {
		if blocks[i].ID == "" || seen[blocks[i].ID] {
			blocks[i].ID = d.opt.NewID()
		}
		seen[blocks[i].ID] = true
		blocks[i].Indent = clampInt(blocks[i].Indent, 0, d.opt.MaxIndent)
		if blocks[i].Collapsed && !blocks[i].CanCollapse() {
			blocks[i].Collapsed = false
		}
	}
	return blocks
}

func (d *Document) clampOffsetAt(i, offset int) int {
	if i < 0 || i >= len(d.blocks) {
		return 0
	}
	return grapheme.Clamp(d.blocks[i].Text, offset)
}

func blocksEqual(a, b Block) bool {
	if a.ID != b.ID || a.Kind != b.Kind || a.Indent != b.Indent ||
		a.Collapsed != b.Collapsed || a.Text != b.Text {
		return false
	}
	if a.Attrs.List != b.Attrs.List || a.Attrs.Checked != b.Attrs.Checked ||
		a.Attrs.Priority != b.Attrs.Priority || a.Attrs.Level != b.Attrs.Level ||
		a.Attrs.Callout != b.Attrs.Callout || a.Attrs.Language != b.Attrs.Language {
		return false
	}
	if len(a.Attrs.Tags) != len(b.Attrs.Tags) {
		return false
	}
	for i := range a.Attrs.Tags {
		if a.Attrs.Tags[i] != b.Attrs.Tags[i] {
			return false
		}
	}
	return true
}
