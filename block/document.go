package block

import (
	"github.com/google/uuid"

	"github.com/iw2rmb/lattice/internal/grapheme"
)

// Options configures a Document.
type Options struct {
	MaxIndent    int // default: 4
	HistoryLimit int // default: 1000
	NewID        func() ID // default: UUID v4; injectable for deterministic tests
}

type textSelection struct {
	active bool
	anchor Caret
	end    Caret
}

type blockSelection struct {
	active bool
	from   int
	to     int
}

// Document is the authoritative flat block sequence plus caret and selection
// state. Structural attributes (ID, Indent, Collapsed) are written only
// through Document mutators; everything else observes.
//
// Every public mutator is one transaction: at most one version step is
// recorded in undo history per call. Composite commands run inside Transact
// to keep the one-keystroke-one-undo-step rule.
type Document struct {
	blocks  []Block
	version uint64

	caret Caret
	sel   textSelection
	bsel  blockSelection

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool

	inTx bool

	tree        *Tree
	treeVersion uint64
}

// New builds a Document from an initial block sequence. A nil or empty
// sequence yields a single empty paragraph: the document is never empty.
// Blocks without IDs get fresh ones; indents are clamped into range.
func New(blocks []Block, opt Options) *Document {
	if opt.MaxIndent == 0 {
		opt.MaxIndent = 4
	}
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if opt.NewID == nil {
		opt.NewID = func() ID { return ID(uuid.NewString()) }
	}

	d := &Document{opt: opt}
	d.blocks = d.adoptBlocks(CloneBlocks(blocks))
	if len(d.blocks) == 0 {
		d.blocks = []Block{{ID: opt.NewID(), Kind: KindParagraph}}
	}
	return d
}

// adoptBlocks normalizes externally supplied blocks: fresh IDs where missing
// or duplicated, indents clamped into [0, MaxIndent], collapse state dropped
// from kinds that cannot own it.
func (d *Document) adoptBlocks(blocks []Block) []Block {
	seen := make(map[ID]bool, len(blocks)+len(d.blocks))
	for _, b := range d.blocks {
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

func (d *Document) Version() uint64 { return d.version }

func (d *Document) Len() int { return len(d.blocks) }

// MaxIndent returns the configured indent cap.
func (d *Document) MaxIndent() int { return d.opt.MaxIndent }

// Blocks returns a deep copy of the block sequence.
func (d *Document) Blocks() []Block { return CloneBlocks(d.blocks) }

// BlockAt returns a copy of the block at index i.
func (d *Document) BlockAt(i int) (Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, false
	}
	return cloneBlock(d.blocks[i]), true
}

// IndexOf returns the index of the block with the given id.
func (d *Document) IndexOf(id ID) (int, bool) {
	for i, b := range d.blocks {
		if b.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (d *Document) Caret() Caret { return d.caret }

// SetCaret moves the caret, clamped into document bounds.
func (d *Document) SetCaret(c Caret) {
	next := d.clampCaret(c)
	if next == d.caret {
		return
	}
	d.caret = next
	if !d.inTx {
		d.version++
	}
}

// TextSelection returns the normalized active text selection.
func (d *Document) TextSelection() (CaretRange, bool) {
	if !d.sel.active {
		return CaretRange{}, false
	}
	r := NormalizeCaretRange(CaretRange{Start: d.sel.anchor, End: d.sel.end})
	if r.IsEmpty() {
		return CaretRange{}, false
	}
	return r, true
}

// HasTextSelection reports whether a non-empty text selection is active.
func (d *Document) HasTextSelection() bool {
	_, ok := d.TextSelection()
	return ok
}

// SetTextSelection activates a text selection. An empty range clears it.
func (d *Document) SetTextSelection(r CaretRange) {
	r.Start = d.clampCaret(r.Start)
	r.End = d.clampCaret(r.End)
	next := textSelection{active: true, anchor: r.Start, end: r.End}
	if NormalizeCaretRange(r).IsEmpty() {
		next = textSelection{}
	}
	if d.sel == next {
		return
	}
	d.sel = next
	if !d.inTx {
		d.version++
	}
}

// BlockSelection returns the active structural (halo) selection.
func (d *Document) BlockSelection() (BlockRange, bool) {
	if !d.bsel.active {
		return BlockRange{}, false
	}
	return NormalizeBlockRange(BlockRange{From: d.bsel.from, To: d.bsel.to}), true
}

// SelectBlocks activates a structural selection over [from, to].
func (d *Document) SelectBlocks(from, to int) {
	r := NormalizeBlockRange(BlockRange{From: from, To: to})
	r.From = clampInt(r.From, 0, len(d.blocks)-1)
	r.To = clampInt(r.To, 0, len(d.blocks)-1)
	next := blockSelection{active: true, from: r.From, to: r.To}
	if d.bsel == next {
		return
	}
	d.bsel = next
	if !d.inTx {
		d.version++
	}
}

// SelectAll selects every block structurally.
func (d *Document) SelectAll() { d.SelectBlocks(0, len(d.blocks)-1) }

// ClearSelections drops both text and structural selections.
func (d *Document) ClearSelections() {
	if !d.sel.active && !d.bsel.active {
		return
	}
	d.sel = textSelection{}
	d.bsel = blockSelection{}
	if !d.inTx {
		d.version++
	}
}

// Transact runs fn as a single undo step. Nested calls join the enclosing
// transaction. Returns false when fn reports failure or nothing changed;
// partial work inside a failed transaction is not rolled back, so fn must
// validate before mutating.
func (d *Document) Transact(fn func(*Document) bool) bool {
	if d.inTx {
		return fn(d)
	}
	prev := d.snapshot()
	before := d.version
	d.inTx = true
	ok := fn(d)
	d.inTx = false
	if d.version == before {
		return false
	}
	d.recordUndo(prev)
	d.commitChange(ChangeSourceLocal, prev, before)
	return ok
}

// mutate wraps a single primitive mutation with snapshot/undo/change
// bookkeeping. Inside a transaction it applies fn directly.
func (d *Document) mutate(source ChangeSource, fn func() bool) bool {
	if d.inTx {
		return fn()
	}
	prev := d.snapshot()
	before := d.version
	if !fn() || d.version == before {
		return false
	}
	d.recordUndo(prev)
	d.commitChange(source, prev, before)
	return true
}

func (d *Document) caretBlock() *Block {
	if d.caret.Index < 0 || d.caret.Index >= len(d.blocks) {
		return nil
	}
	return &d.blocks[d.caret.Index]
}

func (d *Document) clampCaret(c Caret) Caret {
	c.Index = clampInt(c.Index, 0, len(d.blocks)-1)
	c.Offset = grapheme.Clamp(d.blocks[c.Index].Text, c.Offset)
	return c
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
