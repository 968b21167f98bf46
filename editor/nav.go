package editor

import (
	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/internal/grapheme"
)

// caretVertical moves the caret one visible block up or down, keeping the
// offset where the shorter text allows.
func (r *Resolver) caretVertical(dir int) bool {
	d := r.doc
	blocks := d.Blocks()
	vis := block.VisibleIndexes(blocks)
	if len(vis) == 0 {
		return false
	}
	c := d.Caret()
	pos := 0
	for k, i := range vis {
		if i <= c.Index {
			pos = k
		}
	}
	next := pos + dir
	if next < 0 || next >= len(vis) {
		return false
	}
	d.SetCaret(block.Caret{Index: vis[next], Offset: c.Offset})
	return true
}

// caretHorizontal moves one grapheme left or right, crossing into the
// adjacent visible block at the boundary.
func (r *Resolver) caretHorizontal(dir int) bool {
	d := r.doc
	c := d.Caret()
	b, ok := d.BlockAt(c.Index)
	if !ok {
		return false
	}
	if dir < 0 {
		if c.Offset > 0 {
			d.SetCaret(block.Caret{Index: c.Index, Offset: c.Offset - 1})
			return true
		}
		blocks := d.Blocks()
		j := c.Index - 1
		for j >= 0 && block.IsHidden(blocks, j) {
			j--
		}
		if j < 0 {
			return false
		}
		d.SetCaret(block.Caret{Index: j, Offset: grapheme.Count(blocks[j].Text)})
		return true
	}
	if c.Offset < grapheme.Count(b.Text) {
		d.SetCaret(block.Caret{Index: c.Index, Offset: c.Offset + 1})
		return true
	}
	blocks := d.Blocks()
	j := c.Index + 1
	for j < len(blocks) && block.IsHidden(blocks, j) {
		j++
	}
	if j >= len(blocks) {
		return false
	}
	d.SetCaret(block.Caret{Index: j, Offset: 0})
	return true
}

// extendSelection grows a structural selection by one visible block. Without
// an active selection it starts one on the caret block.
func (r *Resolver) extendSelection(dir int) bool {
	d := r.doc
	blocks := d.Blocks()
	bs, ok := d.BlockSelection()
	if !ok {
		i := d.Caret().Index
		d.SelectBlocks(i, i)
		return true
	}
	if dir < 0 {
		j := bs.From - 1
		for j >= 0 && block.IsHidden(blocks, j) {
			j--
		}
		if j < 0 {
			return false
		}
		d.SelectBlocks(j, bs.To)
		return true
	}
	j := bs.To + 1
	for j < len(blocks) && block.IsHidden(blocks, j) {
		j++
	}
	if j >= len(blocks) {
		return false
	}
	d.SelectBlocks(bs.From, j)
	return true
}
