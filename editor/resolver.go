package editor

import (
	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/internal/grapheme"
)

// Resolver fulfills intents against a document. Every composite resolution
// runs inside one transaction, so a keystroke is one undo step regardless of
// how many primitive mutations it takes.
type Resolver struct {
	doc   *block.Document
	modes *ModeManager
	clip  *ClipboardManager
	log   zerolog.Logger
}

func NewResolver(doc *block.Document, modes *ModeManager, clip *ClipboardManager, log zerolog.Logger) *Resolver {
	return &Resolver{doc: doc, modes: modes, clip: clip, log: log}
}

// Resolve applies one intent. Failures are local: the document is left
// unchanged and false is returned, never a panic.
func (r *Resolver) Resolve(it Intent) bool {
	if r.modes != nil && !r.modes.IsIntentAllowed(it.Kind) {
		r.log.Debug().Stringer("intent", it.Kind).Stringer("mode", r.modes.Current()).
			Msg("intent not allowed in mode")
		return false
	}

	d := r.doc
	switch it.Kind {
	case IntentInsertText:
		p, ok := it.Payload.(InsertTextPayload)
		if !ok {
			return false
		}
		return d.InsertText(p.Text)

	case IntentDeleteBackward:
		return d.DeleteBackward()
	case IntentDeleteForward:
		return d.DeleteForward()

	case IntentInsertSiblingAfter:
		return r.insertSiblingAfter()
	case IntentInsertSiblingBefore:
		return r.insertSiblingBefore()
	case IntentInsertChild:
		return r.insertChild()
	case IntentInsertAfterSubtree:
		return r.insertAfterSubtree()
	case IntentSplitBlock:
		c := d.Caret()
		return d.SplitBlock(c.Index, c.Offset)
	case IntentDuplicateBlock:
		return r.duplicateBlock()

	case IntentDeleteBlock:
		return d.DeleteBlock(d.Caret().Index)
	case IntentDeleteSelection:
		return r.deleteSelection()
	case IntentMergeBackward:
		return r.mergeBackward()
	case IntentMergeForward:
		return r.mergeForward()

	case IntentConvertBlock:
		p, ok := it.Payload.(ConvertPayload)
		if !ok {
			return false
		}
		return d.ConvertBlock(d.Caret().Index, p.Kind, p.Attrs)
	case IntentConvertToParagraph:
		return d.ConvertBlock(d.Caret().Index, block.KindParagraph, block.Attrs{})
	case IntentExitWrapper:
		return r.exitWrapper()

	case IntentIndent:
		return r.indentSelection()
	case IntentOutdent:
		return r.outdentSelection()
	case IntentCollapse:
		return d.SetCollapsed(d.Caret().Index, true)
	case IntentExpand:
		return d.SetCollapsed(d.Caret().Index, false)
	case IntentToggleCollapse:
		return d.ToggleCollapsed(d.Caret().Index)
	case IntentMoveBlockUp:
		return d.MoveBlockUp(d.Caret().Index)
	case IntentMoveBlockDown:
		return d.MoveBlockDown(d.Caret().Index)

	case IntentToggleChecked:
		return r.eachSelected(d.ToggleChecked)
	case IntentCyclePriority:
		return r.eachSelected(d.CyclePriority)

	case IntentSelectBlock:
		i := d.Caret().Index
		d.SelectBlocks(i, i)
		return true
	case IntentSelectAll:
		d.SelectAll()
		return true
	case IntentExtendSelectionUp:
		return r.extendSelection(-1)
	case IntentExtendSelectionDown:
		return r.extendSelection(1)
	case IntentClearSelection:
		d.ClearSelections()
		return true

	case IntentCaretUp:
		return r.caretVertical(-1)
	case IntentCaretDown:
		return r.caretVertical(1)
	case IntentCaretLeft:
		return r.caretHorizontal(-1)
	case IntentCaretRight:
		return r.caretHorizontal(1)
	case IntentCaretLineStart:
		c := d.Caret()
		d.SetCaret(block.Caret{Index: c.Index})
		return true
	case IntentCaretLineEnd:
		c := d.Caret()
		b, _ := d.BlockAt(c.Index)
		d.SetCaret(block.Caret{Index: c.Index, Offset: grapheme.Count(b.Text)})
		return true
	case IntentCaretDocStart:
		d.SetCaret(block.Caret{})
		return true
	case IntentCaretDocEnd:
		last := d.Len() - 1
		b, _ := d.BlockAt(last)
		d.SetCaret(block.Caret{Index: last, Offset: grapheme.Count(b.Text)})
		return true

	case IntentCopy:
		return r.clip != nil && r.clip.Copy()
	case IntentCut:
		return r.clip != nil && r.clip.Cut()
	case IntentPaste:
		return r.clip != nil && r.clip.Paste()
	case IntentPastePlainText:
		p, ok := it.Payload.(PastePlainTextPayload)
		if !ok || r.clip == nil {
			return false
		}
		return r.clip.PastePlainText(p.Text)

	case IntentUndo:
		return d.Undo()
	case IntentRedo:
		return d.Redo()
	}

	r.log.Warn().Stringer("intent", it.Kind).Msg("unresolvable intent")
	return false
}

// insertSiblingAfter puts a fresh empty paragraph after the current block, or
// after the last block of a structural selection, at the same indent.
func (r *Resolver) insertSiblingAfter() bool {
	d := r.doc
	at := d.Caret().Index
	if bs, ok := d.BlockSelection(); ok {
		at = bs.To
	}
	b, ok := d.BlockAt(at)
	if !ok {
		return false
	}
	return d.InsertBlockAt(at+1, block.Block{Kind: block.KindParagraph, Indent: b.Indent})
}

// insertSiblingBefore pushes the current block down by one empty block of the
// same kind and indent. The caret stays in the original block.
func (r *Resolver) insertSiblingBefore() bool {
	d := r.doc
	c := d.Caret()
	b, ok := d.BlockAt(c.Index)
	if !ok {
		return false
	}
	attrs := b.Attrs
	attrs.Checked = false
	attrs.Priority = 0
	attrs.Tags = nil
	return d.Transact(func(d *block.Document) bool {
		if !d.InsertBlockAt(c.Index, block.Block{Kind: b.Kind, Indent: b.Indent, Attrs: attrs}) {
			return false
		}
		d.SetCaret(block.Caret{Index: c.Index + 1, Offset: c.Offset})
		return true
	})
}

// insertChild creates an empty child directly under the current block, before
// any existing children. A collapsed parent expands first so the new child is
// visible. List parents beget list children of the same list kind; everything
// else begets a paragraph.
func (r *Resolver) insertChild() bool {
	d := r.doc
	i := d.Caret().Index
	b, ok := d.BlockAt(i)
	if !ok {
		return false
	}
	nb := block.Block{Kind: block.KindParagraph, Indent: b.Indent + 1}
	if b.Kind == block.KindList {
		nb.Kind = block.KindList
		nb.Attrs = block.Attrs{List: b.Attrs.List}
	}
	return d.Transact(func(d *block.Document) bool {
		if b.Collapsed {
			d.SetCollapsed(i, false)
		}
		return d.InsertBlockAt(i+1, nb)
	})
}

// insertAfterSubtree appends an empty sibling of the same kind after the
// current block's entire subtree, skipping collapsed descendants.
func (r *Resolver) insertAfterSubtree() bool {
	d := r.doc
	i := d.Caret().Index
	blocks := d.Blocks()
	if i < 0 || i >= len(blocks) {
		return false
	}
	b := blocks[i]
	attrs := b.Attrs
	attrs.Checked = false
	attrs.Priority = 0
	attrs.Tags = nil
	end := block.SubtreeEnd(blocks, i)
	return d.InsertBlockAt(end, block.Block{Kind: b.Kind, Indent: b.Indent, Attrs: attrs})
}

// duplicateBlock copies the current block's subtree, or the structurally
// selected range, directly after itself. Copies get fresh ids.
func (r *Resolver) duplicateBlock() bool {
	d := r.doc
	blocks := d.Blocks()
	from := d.Caret().Index
	to := from
	if bs, ok := d.BlockSelection(); ok {
		from, to = bs.From, bs.To
	}
	if from < 0 || to >= len(blocks) {
		return false
	}
	end := block.SubtreeEnd(blocks, to)
	dup := block.CloneBlocks(blocks[from:end])
	for i := range dup {
		dup[i].ID = ""
	}
	return d.InsertBlocksAt(end, dup)
}

func (r *Resolver) deleteSelection() bool {
	d := r.doc
	if bs, ok := d.BlockSelection(); ok {
		return d.DeleteBlockRange(bs.From, bs.To)
	}
	if d.HasTextSelection() {
		return d.DeleteBackward()
	}
	return false
}

// mergeBackward splices the current block into the nearest preceding visible
// textual block.
func (r *Resolver) mergeBackward() bool {
	d := r.doc
	blocks := d.Blocks()
	i := d.Caret().Index
	j := i - 1
	for j >= 0 && block.IsHidden(blocks, j) {
		j--
	}
	if j < 0 {
		return false
	}
	return d.MergeBlocks(j, i)
}

// mergeForward splices the next visible block into the current one.
func (r *Resolver) mergeForward() bool {
	d := r.doc
	blocks := d.Blocks()
	i := d.Caret().Index
	j := i + 1
	for j < len(blocks) && block.IsHidden(blocks, j) {
		j++
	}
	if j >= len(blocks) {
		return false
	}
	return d.MergeBlocks(i, j)
}

// exitWrapper moves the current empty paragraph out of its nearest wrapper
// ancestor, placing it right after the wrapper's subtree.
func (r *Resolver) exitWrapper() bool {
	d := r.doc
	blocks := d.Blocks()
	i := d.Caret().Index
	w := -1
	for p, ok := block.ParentIndex(blocks, i); ok; p, ok = block.ParentIndex(blocks, p) {
		if blocks[p].Kind.IsWrapper() {
			w = p
			break
		}
	}
	if w < 0 {
		return false
	}
	end := block.SubtreeEnd(blocks, w)
	return d.Transact(func(d *block.Document) bool {
		if !d.InsertBlockAt(end, block.Block{Kind: block.KindParagraph, Indent: blocks[w].Indent}) {
			return false
		}
		if !d.DeleteBlock(i) {
			return false
		}
		d.SetCaret(block.Caret{Index: end - 1})
		return true
	})
}

// indentSelection indents the caret block, or every top-level block of a
// structural selection.
func (r *Resolver) indentSelection() bool {
	d := r.doc
	bs, ok := d.BlockSelection()
	if !ok {
		return d.IndentBlock(d.Caret().Index)
	}
	tops := r.selectionTops(bs)
	return d.Transact(func(d *block.Document) bool {
		any := false
		for _, i := range tops {
			if d.IndentBlock(i) {
				any = true
			}
		}
		return any
	})
}

// outdentSelection outdents the caret block, or every top-level block of a
// structural selection.
func (r *Resolver) outdentSelection() bool {
	d := r.doc
	bs, ok := d.BlockSelection()
	if !ok {
		return d.OutdentBlock(d.Caret().Index)
	}
	tops := r.selectionTops(bs)
	return d.Transact(func(d *block.Document) bool {
		any := false
		for _, i := range tops {
			if d.OutdentBlock(i) {
				any = true
			}
		}
		return any
	})
}

// selectionTops returns the indexes in a structural selection that are not
// descendants of an earlier selected block.
func (r *Resolver) selectionTops(bs block.BlockRange) []int {
	blocks := r.doc.Blocks()
	var tops []int
	next := bs.From
	for next <= bs.To && next < len(blocks) {
		tops = append(tops, next)
		next = block.SubtreeEnd(blocks, next)
	}
	return tops
}

// eachSelected applies fn to every structurally selected block, or to the
// caret block without a selection.
func (r *Resolver) eachSelected(fn func(int) bool) bool {
	d := r.doc
	bs, ok := d.BlockSelection()
	if !ok {
		return fn(d.Caret().Index)
	}
	return d.Transact(func(d *block.Document) bool {
		any := false
		for i := bs.From; i <= bs.To; i++ {
			if fn(i) {
				any = true
			}
		}
		return any
	})
}
