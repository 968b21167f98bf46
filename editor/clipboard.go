package editor

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/lattice/block"
	"github.com/iw2rmb/lattice/internal/grapheme"
)

// Clipboard bridges to the OS clipboard. Failures must not crash the UI;
// they degrade to the in-process payload.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// PasteIntent classifies where pasted blocks land. The classification is
// deterministic: it depends only on the selection, caret position, and the
// payload shape.
type PasteIntent uint8

const (
	PasteReplaceBlock PasteIntent = iota
	PasteSplitBlock
	PasteAppendToBlock
	PasteInsertAfter
)

func (p PasteIntent) String() string {
	switch p {
	case PasteReplaceBlock:
		return "replace-block"
	case PasteSplitBlock:
		return "split-block"
	case PasteAppendToBlock:
		return "append-to-block"
	case PasteInsertAfter:
		return "insert-after"
	default:
		return "unknown"
	}
}

// ClipboardManager owns the process-local block payload. One slot,
// last-write-wins; the payload never references live document blocks.
type ClipboardManager struct {
	doc *block.Document

	payload []block.Block
	version uint64

	external Clipboard
	log      zerolog.Logger
}

func NewClipboardManager(doc *block.Document, external Clipboard, log zerolog.Logger) *ClipboardManager {
	return &ClipboardManager{doc: doc, external: external, log: log}
}

func (c *ClipboardManager) HasPayload() bool { return len(c.payload) > 0 }

// Version tags the stored payload; it advances on every copy.
func (c *ClipboardManager) Version() uint64 { return c.version }

// Payload returns a copy of the stored blocks.
func (c *ClipboardManager) Payload() []block.Block { return block.CloneBlocks(c.payload) }

// Copy resolves the active selection to whole blocks and stores them.
// Identity and view state (id, collapsed) are stripped; structural and
// content attributes stay. A structural selection carries its subtrees; with
// no selection at all the caret block's subtree is copied.
func (c *ClipboardManager) Copy() bool {
	lo, hi, ok := c.resolveRange()
	if !ok {
		return false
	}
	blocks := c.doc.Blocks()
	payload := block.CloneBlocks(blocks[lo : hi+1])
	for i := range payload {
		payload[i].ID = ""
		payload[i].Collapsed = false
	}
	c.payload = payload
	c.version++
	c.log.Debug().Int("blocks", len(payload)).Uint64("version", c.version).Msg("copied")

	if c.external != nil {
		if err := c.external.WriteText(plainText(payload)); err != nil {
			c.log.Warn().Err(err).Msg("external clipboard write failed")
		}
	}
	return true
}

// Cut copies, then deletes the resolved range as whole blocks. The document
// mutators leave the caret at a safe boundary.
func (c *ClipboardManager) Cut() bool {
	lo, hi, ok := c.resolveRange()
	if !ok {
		return false
	}
	if !c.Copy() {
		return false
	}
	return c.doc.DeleteBlockRange(lo, hi)
}

// Paste applies the stored payload at the current selection or caret.
func (c *ClipboardManager) Paste() bool {
	if len(c.payload) > 0 {
		return c.paste(block.CloneBlocks(c.payload))
	}
	if c.external == nil {
		return false
	}
	s, err := c.external.ReadText()
	if err != nil || s == "" {
		return false
	}
	return c.PastePlainText(s)
}

// PastePlainText splits external text at blank-line boundaries into one
// paragraph per chunk. No markdown interpretation.
func (c *ClipboardManager) PastePlainText(s string) bool {
	chunks := splitPlainText(s)
	if len(chunks) == 0 {
		return false
	}
	payload := make([]block.Block, 0, len(chunks))
	for _, text := range chunks {
		payload = append(payload, block.Block{Kind: block.KindParagraph, Text: text})
	}
	return c.paste(payload)
}

// Classify exposes the paste intent the next Paste would take. Handy for
// callers that surface it; Paste recomputes it itself.
func (c *ClipboardManager) Classify() PasteIntent {
	return c.classify(c.payload)
}

func (c *ClipboardManager) classify(payload []block.Block) PasteIntent {
	d := c.doc
	if _, ok := d.BlockSelection(); ok {
		return PasteReplaceBlock
	}
	caret := d.Caret()
	b, ok := d.BlockAt(caret.Index)
	if !ok {
		return PasteInsertAfter
	}
	n := grapheme.Count(b.Text)
	if caret.Offset > 0 && caret.Offset < n {
		return PasteSplitBlock
	}
	if caret.Offset == n && n > 0 &&
		len(payload) == 1 && payload[0].Kind == block.KindParagraph {
		return PasteAppendToBlock
	}
	return PasteInsertAfter
}

func (c *ClipboardManager) paste(payload []block.Block) bool {
	if len(payload) == 0 {
		return false
	}
	d := c.doc
	intent := c.classify(payload)
	c.log.Debug().Stringer("intent", intent).Int("blocks", len(payload)).Msg("paste")

	switch intent {
	case PasteReplaceBlock:
		bs, ok := d.BlockSelection()
		if !ok {
			return false
		}
		blocks := d.Blocks()
		hi := block.SubtreeEnd(blocks, bs.To) - 1
		rebased := rebaseIndents(payload, blocks[bs.From].Indent)
		return d.ReplaceBlockRange(bs.From, hi, rebased)

	case PasteSplitBlock:
		caret := d.Caret()
		b, _ := d.BlockAt(caret.Index)
		rebased := rebaseIndents(payload, b.Indent)
		return d.Transact(func(d *block.Document) bool {
			if !d.SplitBlock(caret.Index, caret.Offset) {
				return false
			}
			return d.InsertBlocksAt(caret.Index+1, rebased)
		})

	case PasteAppendToBlock:
		caret := d.Caret()
		return d.AppendTextToBlock(caret.Index, payload[0].Text)

	default: // PasteInsertAfter
		caret := d.Caret()
		blocks := d.Blocks()
		if caret.Index < 0 || caret.Index >= len(blocks) {
			return false
		}
		dest := blocks[caret.Index]
		rebased := rebaseIndents(payload, dest.Indent)
		applyListContinuity(rebased, dest)
		// Collapsed containers are opaque: the insertion point is always
		// past the whole hidden subtree.
		at := block.SubtreeEnd(blocks, caret.Index)
		return d.InsertBlocksAt(at, rebased)
	}
}

// resolveRange reduces the active selection to whole top-level blocks. Text
// selections claim exactly the blocks they touch; a structural selection
// claims whole subtrees.
func (c *ClipboardManager) resolveRange() (lo, hi int, ok bool) {
	d := c.doc
	blocks := d.Blocks()
	if bs, active := d.BlockSelection(); active {
		return bs.From, block.SubtreeEnd(blocks, bs.To) - 1, true
	}
	if ts, active := d.TextSelection(); active {
		return ts.Start.Index, ts.End.Index, true
	}
	i := d.Caret().Index
	if i < 0 || i >= len(blocks) {
		return 0, 0, false
	}
	return i, block.SubtreeEnd(blocks, i) - 1, true
}

// rebaseIndents shifts pasted indents so the first block lands at the
// destination indent, preserving relative depth and flooring at zero.
func rebaseIndents(payload []block.Block, destIndent int) []block.Block {
	first := payload[0].Indent
	delta := destIndent - first
	for i := range payload {
		next := payload[i].Indent + delta
		if next < 0 {
			next = 0
		}
		payload[i].Indent = next
	}
	return payload
}

// applyListContinuity makes a pasted list item continue the destination list:
// when the first pasted block is a list at the destination's own indent and
// the destination is a list of a different list kind, the first block adopts
// the destination's list kind. Later blocks keep theirs.
func applyListContinuity(payload []block.Block, dest block.Block) {
	if dest.Kind != block.KindList || payload[0].Kind != block.KindList {
		return
	}
	if payload[0].Indent != dest.Indent || payload[0].Attrs.List == dest.Attrs.List {
		return
	}
	payload[0].Attrs.List = dest.Attrs.List
}

func plainText(blocks []block.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}

// splitPlainText breaks text into chunks at blank-line boundaries.
func splitPlainText(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var chunks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur = cur[:0]
		}
	}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return chunks
}
